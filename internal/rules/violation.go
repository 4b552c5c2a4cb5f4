package rules

import "strings"

// Violation represents a single linting violation.
type Violation struct {
	// Location specifies where the violation occurred.
	Location Location `json:"location"`

	// RuleCode is the rule identifier ("DL3006", "SC2086").
	RuleCode string `json:"code"`

	// Message is a human-readable description of the issue.
	Message string `json:"message"`

	// Detail provides additional context (optional).
	Detail string `json:"detail,omitempty"`

	// Severity indicates how critical this violation is.
	Severity Severity `json:"level"`

	// DocURL links to documentation about this rule (optional).
	DocURL string `json:"docUrl,omitempty"`

	// SourceCode is the source snippet where the violation occurred (optional).
	// Populated by post-processing; rules don't need to set this.
	SourceCode string `json:"sourceCode,omitempty"`
}

// NewViolation creates a new violation with the minimum required fields.
func NewViolation(loc Location, ruleCode, message string, severity Severity) Violation {
	return Violation{
		Location: loc,
		RuleCode: ruleCode,
		Message:  message,
		Severity: severity,
	}
}

// HadolintDocURL returns the wiki page of a DL rule.
func HadolintDocURL(code string) string {
	return "https://github.com/hadolint/hadolint/wiki/" + code
}

// ShellcheckDocURL returns the wiki page of an SC finding.
func ShellcheckDocURL(code string) string {
	return "https://www.shellcheck.net/wiki/" + code
}

// DocURLFor picks the documentation page from the code prefix.
func DocURLFor(code string) string {
	switch {
	case strings.HasPrefix(code, "DL"):
		return HadolintDocURL(code)
	case strings.HasPrefix(code, "SC"):
		return ShellcheckDocURL(code)
	}
	return ""
}

// WithDetail adds a detail message to the violation.
func (v Violation) WithDetail(detail string) Violation {
	v.Detail = detail
	return v
}

// WithDocURL adds a documentation URL to the violation.
func (v Violation) WithDocURL(url string) Violation {
	v.DocURL = url
	return v
}

// WithSourceCode adds source code snippet to the violation.
func (v Violation) WithSourceCode(code string) Violation {
	v.SourceCode = code
	return v
}

// File returns the file path from the location.
func (v Violation) File() string {
	return v.Location.File
}

// Line returns the 1-based line.
func (v Violation) Line() int {
	return v.Location.Line
}

// Column returns the 1-based column, or 0.
func (v Violation) Column() int {
	return v.Location.Column
}
