package reporter

import (
	"encoding/xml"
	"io"
	"path/filepath"

	"github.com/wharflab/stagelint/internal/rules"
)

type checkstyleReport struct {
	XMLName xml.Name         `xml:"checkstyle"`
	Version string           `xml:"version,attr"`
	Files   []checkstyleFile `xml:"file"`
}

type checkstyleFile struct {
	Name   string            `xml:"name,attr"`
	Errors []checkstyleError `xml:"error"`
}

type checkstyleError struct {
	Line     int    `xml:"line,attr"`
	Column   int    `xml:"column,attr,omitempty"`
	Severity string `xml:"severity,attr"`
	Message  string `xml:"message,attr"`
	Source   string `xml:"source,attr"`
}

// CheckstyleReporter formats violations as Checkstyle XML, grouped by file.
type CheckstyleReporter struct {
	writer io.Writer
}

// NewCheckstyleReporter creates a new Checkstyle reporter.
func NewCheckstyleReporter(w io.Writer) *CheckstyleReporter {
	return &CheckstyleReporter{writer: w}
}

// Report implements Reporter.
func (r *CheckstyleReporter) Report(violations []rules.Violation, _ map[string][]byte, _ ReportMetadata) error {
	report := checkstyleReport{Version: "4.3"}
	index := make(map[string]int)

	for _, v := range SortViolations(violations) {
		name := filepath.ToSlash(v.File())
		i, ok := index[name]
		if !ok {
			i = len(report.Files)
			index[name] = i
			report.Files = append(report.Files, checkstyleFile{Name: name})
		}
		report.Files[i].Errors = append(report.Files[i].Errors, checkstyleError{
			Line:     v.Line(),
			Column:   v.Column(),
			Severity: severityToCheckstyle(v.Severity),
			Message:  v.Message,
			Source:   v.RuleCode,
		})
	}

	if _, err := io.WriteString(r.writer, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(r.writer)
	enc.Indent("", "  ")
	if err := enc.Encode(report); err != nil {
		return err
	}
	_, err := io.WriteString(r.writer, "\n")
	return err
}

func severityToCheckstyle(s rules.Severity) string {
	switch s {
	case rules.SeverityError:
		return "error"
	case rules.SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}
