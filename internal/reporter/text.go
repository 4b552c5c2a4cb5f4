package reporter

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/sourcemap"
)

var (
	ruleCodeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")) // Red

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // Blue
			Underline(true)

	fileLocStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")) // Light gray

	lineNumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // Dark gray

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")) // Darker gray

	markerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	severityStyles = map[rules.Severity]lipgloss.Style{
		rules.SeverityError: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		rules.SeverityWarning: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")), // Orange
		rules.SeverityInfo: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		rules.SeverityStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("245")), // Gray
	}
)

// Lines of context shown around the offending line.
const snippetContext = 2

// TextOptions configures the text reporter output.
type TextOptions struct {
	// Color enables ANSI styling.
	Color bool

	// ShowSource shows source code snippets.
	ShowSource bool
}

// TextReporter formats violations as styled text output.
//
// The layout follows BuildKit's linter output: a severity header with the
// rule code and documentation link, the message, then the offending line
// with surrounding context.
type TextReporter struct {
	writer io.Writer
	opts   TextOptions
}

// NewTextReporter creates a new text reporter with the given options.
func NewTextReporter(w io.Writer, opts TextOptions) *TextReporter {
	return &TextReporter{writer: w, opts: opts}
}

// Report implements Reporter.
func (r *TextReporter) Report(violations []rules.Violation, sources map[string][]byte, _ ReportMetadata) error {
	maps := make(map[string]*sourcemap.SourceMap)
	for _, v := range SortViolations(violations) {
		sm, ok := maps[v.File()]
		if !ok {
			if src, found := sources[v.File()]; found {
				sm = sourcemap.New(src)
			}
			maps[v.File()] = sm
		}
		if err := r.printViolation(v, sm); err != nil {
			return err
		}
	}
	if len(violations) > 0 {
		_, err := fmt.Fprintf(r.writer, "\n%s\n", summaryLine(violations))
		return err
	}
	return nil
}

func (r *TextReporter) style(s lipgloss.Style, text string) string {
	if !r.opts.Color {
		return text
	}
	return s.Render(text)
}

func (r *TextReporter) printViolation(v rules.Violation, sm *sourcemap.SourceMap) error {
	sevStyle, ok := severityStyles[v.Severity]
	if !ok {
		sevStyle = severityStyles[rules.SeverityWarning]
	}

	header := fmt.Sprintf("\n%s %s",
		r.style(sevStyle, strings.ToUpper(v.Severity.String())+":"),
		r.style(ruleCodeStyle, v.RuleCode))
	if v.DocURL != "" {
		header += " - " + r.style(urlStyle, v.DocURL)
	}
	if _, err := fmt.Fprintln(r.writer, header); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(r.writer, v.Message); err != nil {
		return err
	}
	if v.Detail != "" {
		if _, err := fmt.Fprintln(r.writer, v.Detail); err != nil {
			return err
		}
	}

	if !r.opts.ShowSource || v.Location.IsFileLevel() {
		if v.Location.IsFileLevel() {
			_, err := fmt.Fprintln(r.writer, r.style(fileLocStyle, v.File()))
			return err
		}
		_, err := fmt.Fprintln(r.writer, r.style(fileLocStyle, locationString(v.Location)))
		return err
	}
	return r.printSource(v, sm)
}

func (r *TextReporter) printSource(v rules.Violation, sm *sourcemap.SourceMap) error {
	separator := r.style(separatorStyle, "--------------------")
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(r.style(fileLocStyle, locationString(v.Location)))
	b.WriteString("\n")
	b.WriteString(separator)
	b.WriteString("\n")

	line := v.Line()
	switch {
	case sm != nil && line <= sm.LineCount():
		start := max(line-snippetContext, 1)
		end := min(line+snippetContext, sm.LineCount())
		for i := start; i <= end; i++ {
			marker := "   "
			if i == line {
				marker = r.style(markerStyle, ">>>")
			}
			fmt.Fprintf(&b, "%s %s %s\n", r.style(lineNumStyle, fmt.Sprintf(" %3d |", i)), marker, sm.Line(i))
		}
	case v.SourceCode != "":
		fmt.Fprintf(&b, "%s %s %s\n",
			r.style(lineNumStyle, fmt.Sprintf(" %3d |", line)), r.style(markerStyle, ">>>"), v.SourceCode)
	}

	b.WriteString(separator)
	b.WriteString("\n")
	_, err := io.WriteString(r.writer, b.String())
	return err
}

func locationString(loc rules.Location) string {
	if loc.HasColumn() {
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Column)
	}
	return fmt.Sprintf("%s:%d", loc.File, loc.Line)
}

func summaryLine(violations []rules.Violation) string {
	var s Summary
	for _, v := range violations {
		s.add(v.Severity)
	}
	n := countFiles(violations)
	files := "files"
	if n == 1 {
		files = "file"
	}
	return fmt.Sprintf("%d problems in %d %s (%d errors, %d warnings, %d info, %d style)",
		s.Failures, n, files, s.Errors, s.Warnings, s.Info, s.Style)
}

func countFiles(violations []rules.Violation) int {
	seen := make(map[string]struct{})
	for _, v := range violations {
		seen[v.File()] = struct{}{}
	}
	return len(seen)
}
