package reporter

import (
	"io"
	"path/filepath"
	"sort"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/wharflab/stagelint/internal/rules"
)

// Default SARIF tool information.
const (
	defaultToolName = "stagelint"
	defaultToolURI  = "https://github.com/wharflab/stagelint"
)

// SARIFReporter formats violations as SARIF 2.1.0, the format read by
// GitHub Code Scanning and Azure DevOps.
//
// See: https://docs.oasis-open.org/sarif/sarif/v2.1.0/
type SARIFReporter struct {
	writer      io.Writer
	toolName    string
	toolVersion string
	toolURI     string
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(w io.Writer, toolName, toolVersion, toolURI string) *SARIFReporter {
	if toolName == "" {
		toolName = defaultToolName
	}
	if toolURI == "" {
		toolURI = defaultToolURI
	}
	return &SARIFReporter{
		writer:      w,
		toolName:    toolName,
		toolVersion: toolVersion,
		toolURI:     toolURI,
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(violations []rules.Violation, _ map[string][]byte, _ ReportMetadata) error {
	report := sarif.NewReport()

	run := sarif.NewRunWithInformationURI(r.toolName, r.toolURI)
	if r.toolVersion != "" {
		run.Tool.Driver.WithVersion(r.toolVersion)
	}

	sorted := SortViolations(violations)

	firstByCode := make(map[string]rules.Violation)
	fileSet := make(map[string]struct{})
	for _, v := range sorted {
		if _, ok := firstByCode[v.RuleCode]; !ok {
			firstByCode[v.RuleCode] = v
		}
		fileSet[filepath.ToSlash(v.File())] = struct{}{}
	}

	codes := make([]string, 0, len(firstByCode))
	for code := range firstByCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		addSARIFRule(run, code, firstByCode[code])
	}

	files := make([]string, 0, len(fileSet))
	for file := range fileSet {
		files = append(files, file)
	}
	sort.Strings(files)
	for _, file := range files {
		run.AddDistinctArtifact(file)
	}

	for _, v := range sorted {
		run.AddResult(sarifResult(v))
	}

	report.AddRun(run)
	return report.PrettyWrite(r.writer)
}

// addSARIFRule declares a rule on the run. Registered rules contribute their
// name and description; shellcheck codes fall back to the first finding.
func addSARIFRule(run *sarif.Run, code string, first rules.Violation) {
	rule := run.AddRule(code)

	short, full, helpURI := first.Message, "", first.DocURL
	if registered := rules.Get(code); registered != nil {
		meta := registered.Metadata()
		short, full = meta.Name, meta.Description
		if meta.DocURL != "" {
			helpURI = meta.DocURL
		}
	}
	if helpURI == "" {
		helpURI = rules.DocURLFor(code)
	}

	if short != "" {
		rule.WithShortDescription(sarif.NewMultiformatMessageString().WithText(short))
	}
	if full != "" {
		rule.WithFullDescription(sarif.NewMultiformatMessageString().WithText(full))
	}
	if helpURI != "" {
		rule.WithHelpURI(helpURI)
	}
}

func sarifResult(v rules.Violation) *sarif.Result {
	result := sarif.NewRuleResult(v.RuleCode).
		WithMessage(sarif.NewTextMessage(v.Message)).
		WithLevel(severityToSARIFLevel(v.Severity))

	physicalLocation := sarif.NewPhysicalLocation().
		WithArtifactLocation(sarif.NewSimpleArtifactLocation(filepath.ToSlash(v.File())))

	if !v.Location.IsFileLevel() {
		region := sarif.NewRegion().WithStartLine(v.Line())
		if v.Location.HasColumn() {
			region.WithStartColumn(v.Column())
		}
		if v.SourceCode != "" {
			region.WithSnippet(sarif.NewArtifactContent().WithText(v.SourceCode))
		}
		physicalLocation.WithRegion(region)
	}

	result.WithLocations([]*sarif.Location{
		sarif.NewLocationWithPhysicalLocation(physicalLocation),
	})
	return result
}

// SARIF severity levels.
const (
	sarifLevelError   = "error"
	sarifLevelWarning = "warning"
	sarifLevelNote    = "note"
	sarifLevelNone    = "none"
)

// severityToSARIFLevel maps our Severity to SARIF levels.
func severityToSARIFLevel(s rules.Severity) string {
	switch s {
	case rules.SeverityError:
		return sarifLevelError
	case rules.SeverityWarning:
		return sarifLevelWarning
	case rules.SeverityInfo, rules.SeverityStyle:
		return sarifLevelNote
	case rules.SeverityIgnore:
		return sarifLevelNone
	default:
		return sarifLevelWarning
	}
}
