package reporter

import (
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wharflab/stagelint/internal/rules"
)

// GitHubActionsReporter writes workflow commands that GitHub turns into
// pull request annotations. The annotations of each file are wrapped in a
// collapsible log group named after the file.
//
// See: https://docs.github.com/actions/reference/workflow-commands-for-github-actions
type GitHubActionsReporter struct {
	writer io.Writer
}

// NewGitHubActionsReporter creates a new GitHub Actions reporter.
func NewGitHubActionsReporter(w io.Writer) *GitHubActionsReporter {
	return &GitHubActionsReporter{writer: w}
}

// Report implements Reporter.
func (r *GitHubActionsReporter) Report(violations []rules.Violation, _ map[string][]byte, _ ReportMetadata) error {
	var b strings.Builder
	group := ""
	for _, v := range SortViolations(violations) {
		file := filepath.ToSlash(v.File())
		if file != group {
			if group != "" {
				b.WriteString(workflowCommand{name: "endgroup"}.String())
			}
			b.WriteString(workflowCommand{name: "group", message: file}.String())
			group = file
		}
		b.WriteString(annotation(file, v).String())
	}
	if group != "" {
		b.WriteString(workflowCommand{name: "endgroup"}.String())
	}
	_, err := io.WriteString(r.writer, b.String())
	return err
}

// workflowCommand is one "::name key=value,...::message" line.
type workflowCommand struct {
	name    string
	props   [][2]string
	message string
}

func (c workflowCommand) String() string {
	var b strings.Builder
	b.WriteString("::")
	b.WriteString(c.name)
	for i, p := range c.props {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteByte(',')
		}
		b.WriteString(p[0])
		b.WriteByte('=')
		b.WriteString(propertyEscaper.Replace(p[1]))
	}
	b.WriteString("::")
	b.WriteString(dataEscaper.Replace(c.message))
	b.WriteByte('\n')
	return b.String()
}

func annotation(file string, v rules.Violation) workflowCommand {
	cmd := workflowCommand{name: annotationLevel(v.Severity)}
	cmd.props = append(cmd.props, [2]string{"file", file})
	if !v.Location.IsFileLevel() {
		cmd.props = append(cmd.props, [2]string{"line", strconv.Itoa(v.Line())})
		if v.Location.HasColumn() {
			cmd.props = append(cmd.props, [2]string{"col", strconv.Itoa(v.Column())})
		}
	}
	cmd.props = append(cmd.props, [2]string{"title", v.RuleCode})

	lines := []string{v.Message}
	if v.Detail != "" {
		lines = append(lines, v.Detail)
	}
	if v.DocURL != "" {
		lines = append(lines, "See "+v.DocURL)
	}
	cmd.message = strings.Join(lines, "\n")
	return cmd
}

// annotationLevel maps a severity onto the annotation commands GitHub knows:
// error, warning and notice.
func annotationLevel(s rules.Severity) string {
	switch s {
	case rules.SeverityError:
		return "error"
	case rules.SeverityWarning:
		return "warning"
	default:
		return "notice"
	}
}

// Escaping follows escapeData and escapeProperty of @actions/core.
var (
	dataEscaper     = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	propertyEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)
