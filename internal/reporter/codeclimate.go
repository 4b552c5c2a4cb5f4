package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/opencontainers/go-digest"

	"github.com/wharflab/stagelint/internal/rules"
)

// CodeClimateIssue is one entry of a Code Climate report, the format GitLab
// reads for its code quality widget.
//
// See: https://github.com/codeclimate/platform/blob/master/spec/analyzers/SPEC.md
type CodeClimateIssue struct {
	Type        string              `json:"type"`
	CheckName   string              `json:"check_name"`
	Description string              `json:"description"`
	Content     *CodeClimateContent `json:"content,omitempty"`
	Categories  []string            `json:"categories"`
	Location    CodeClimateLocation `json:"location"`
	Severity    string              `json:"severity"`
	Fingerprint string              `json:"fingerprint"`
}

// CodeClimateContent carries the longer explanation of an issue.
type CodeClimateContent struct {
	Body string `json:"body"`
}

// CodeClimateLocation pins an issue to a line range of a file.
type CodeClimateLocation struct {
	Path  string           `json:"path"`
	Lines CodeClimateLines `json:"lines"`
}

// CodeClimateLines is an inclusive line range.
type CodeClimateLines struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
}

// CodeClimateReporter formats violations as a Code Climate issue array.
type CodeClimateReporter struct {
	writer io.Writer
}

// NewCodeClimateReporter creates a new Code Climate reporter.
func NewCodeClimateReporter(w io.Writer) *CodeClimateReporter {
	return &CodeClimateReporter{writer: w}
}

// Report implements Reporter.
func (r *CodeClimateReporter) Report(violations []rules.Violation, _ map[string][]byte, _ ReportMetadata) error {
	issues := make([]CodeClimateIssue, 0, len(violations))
	for _, v := range SortViolations(violations) {
		path := filepath.ToSlash(v.File())
		line := max(v.Line(), 1)

		issue := CodeClimateIssue{
			Type:        "issue",
			CheckName:   v.RuleCode,
			Description: v.Message,
			Categories:  []string{codeClimateCategory(v.Severity)},
			Location: CodeClimateLocation{
				Path:  path,
				Lines: CodeClimateLines{Begin: line, End: line},
			},
			Severity:    severityToCodeClimate(v.Severity),
			Fingerprint: fingerprint(path, line, v.RuleCode, v.Message),
		}
		if v.Detail != "" {
			issue.Content = &CodeClimateContent{Body: v.Detail}
		}
		issues = append(issues, issue)
	}

	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(issues)
}

// fingerprint identifies an issue across runs so GitLab can tell new
// findings from resolved ones.
func fingerprint(path string, line int, code, message string) string {
	return digest.FromString(fmt.Sprintf("%s:%d:%s:%s", path, line, code, message)).Encoded()
}

func severityToCodeClimate(s rules.Severity) string {
	switch s {
	case rules.SeverityError:
		return "critical"
	case rules.SeverityWarning:
		return "major"
	case rules.SeverityInfo:
		return "minor"
	default:
		return "info"
	}
}

func codeClimateCategory(s rules.Severity) string {
	if s == rules.SeverityStyle {
		return "Style"
	}
	return "Bug Risk"
}
