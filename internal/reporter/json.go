package reporter

import (
	"encoding/json"
	"io"
	"path/filepath"
	"sort"

	"github.com/wharflab/stagelint/internal/rules"
)

// JSONOutput is the document written by the json format: one LintResult per
// scanned file followed by run totals.
type JSONOutput struct {
	Results []LintResult `json:"results"`
	Summary Summary      `json:"summary"`
}

// LintResult is the outcome of linting one file.
type LintResult struct {
	File        string         `json:"file"`
	ParseErrors []string       `json:"parse_errors"`
	Failures    []CheckFailure `json:"failures"`
}

// CheckFailure is one reported violation. Column is omitted when the rule
// reports whole lines; Line is 0 for findings about the file as a whole.
type CheckFailure struct {
	Code     string         `json:"code"`
	Severity rules.Severity `json:"severity"`
	Message  string         `json:"message"`
	Line     int            `json:"line"`
	Column   *int           `json:"column,omitempty"`
	DocURL   string         `json:"doc_url,omitempty"`
}

// Summary holds run totals. Failures are counted per severity.
type Summary struct {
	FilesScanned int `json:"files_scanned"`
	RulesEnabled int `json:"rules_enabled"`
	Failures     int `json:"failures"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	Info         int `json:"info"`
	Style        int `json:"style"`
}

// JSONReporter writes a JSONOutput document.
type JSONReporter struct {
	writer io.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{writer: w}
}

// Report implements Reporter.
func (r *JSONReporter) Report(violations []rules.Violation, _ map[string][]byte, metadata ReportMetadata) error {
	output := JSONOutput{
		Results: lintResults(violations, metadata),
		Summary: Summary{
			FilesScanned: metadata.FilesScanned,
			RulesEnabled: metadata.RulesEnabled,
		},
	}
	for _, res := range output.Results {
		for _, f := range res.Failures {
			output.Summary.add(f.Severity)
		}
	}

	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// lintResults groups violations into per-file results. Files listed in
// metadata get a result even when they are clean; results are sorted by
// path with forward slashes.
func lintResults(violations []rules.Violation, metadata ReportMetadata) []LintResult {
	byFile := make(map[string]*LintResult)
	result := func(file string) *LintResult {
		file = filepath.ToSlash(file)
		if res, ok := byFile[file]; ok {
			return res
		}
		res := &LintResult{File: file, ParseErrors: []string{}, Failures: []CheckFailure{}}
		byFile[file] = res
		return res
	}

	for _, file := range metadata.Files {
		result(file)
	}
	for file, errs := range metadata.ParseErrors {
		res := result(file)
		res.ParseErrors = append(res.ParseErrors, errs...)
	}
	for _, v := range SortViolations(violations) {
		res := result(v.File())
		res.Failures = append(res.Failures, checkFailure(v))
	}

	out := make([]LintResult, 0, len(byFile))
	for _, res := range byFile {
		out = append(out, *res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].File < out[j].File })
	return out
}

func checkFailure(v rules.Violation) CheckFailure {
	f := CheckFailure{
		Code:     v.RuleCode,
		Severity: v.Severity,
		Message:  v.Message,
		Line:     max(v.Line(), 0),
		DocURL:   v.DocURL,
	}
	if v.Location.HasColumn() {
		col := v.Column()
		f.Column = &col
	}
	return f
}

func (s *Summary) add(sev rules.Severity) {
	s.Failures++
	switch sev {
	case rules.SeverityError:
		s.Errors++
	case rules.SeverityWarning:
		s.Warnings++
	case rules.SeverityInfo:
		s.Info++
	case rules.SeverityStyle:
		s.Style++
	case rules.SeverityIgnore:
	}
}
