// Package shellcheck runs the external shellcheck binary over RUN scripts
// and turns its findings into SC violations.
//
// The hook is advisory: a missing binary, a crash or unreadable output all
// yield no findings and never fail the lint.
package shellcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/wharflab/stagelint/internal/rules"
)

// DefaultExcludes are checks that do not make sense for RUN scripts:
// sourced files cannot be followed from a Dockerfile.
var DefaultExcludes = []string{"SC1090", "SC1091"}

// Request is one script to analyze.
type Request struct {
	// Script is the shell text of a RUN instruction.
	Script string
	// Shell is the dialect passed to --shell (bash, sh, dash, ksh).
	Shell string
	// Vars names the ARG and ENV variables defined before the RUN. They are
	// exported ahead of the script so shellcheck does not report them as
	// unassigned.
	Vars []string
}

// Finding is one shellcheck comment, positioned relative to the script.
type Finding struct {
	Line      int    `json:"line"`
	EndLine   int    `json:"endLine"`
	Column    int    `json:"column"`
	EndColumn int    `json:"endColumn"`
	Level     string `json:"level"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
}

// Analyzer checks shell scripts.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) []Finding
}

// Runner is an Analyzer backed by the shellcheck binary.
type Runner struct {
	// Path is the shellcheck executable; "shellcheck" when empty.
	Path string
	// Excludes lists codes passed to --exclude.
	Excludes []string
}

// NewRunner returns a Runner for the binary at path.
func NewRunner(path string) *Runner {
	return &Runner{Path: path, Excludes: DefaultExcludes}
}

// Analyze feeds the script to shellcheck over stdin and parses its JSON
// output. Every failure is logged at debug level and yields no findings.
func (r *Runner) Analyze(ctx context.Context, req Request) []Finding {
	path := r.Path
	if path == "" {
		path = "shellcheck"
	}
	shell := req.Shell
	if shell == "" {
		shell = "bash"
	}

	args := []string{"--format=json", "--shell=" + shell}
	if len(r.Excludes) > 0 {
		args = append(args, "--exclude="+strings.Join(r.Excludes, ","))
	}
	args = append(args, "-")

	prelude := exportPrelude(req.Vars)
	stderr := newTailBuffer(stderrLimit)
	var stdout bytes.Buffer

	cmd := exec.CommandContext(ctx, path, args...) //nolint:gosec // Path is explicit user configuration.
	cmd.Stdin = strings.NewReader(prelude + req.Script)
	cmd.Stdout = &stdout
	cmd.Stderr = stderr

	log := logrus.WithField("shellcheck", path)
	// shellcheck exits 1 when it has findings, so the exit status alone says
	// nothing; only output that does not parse is a failure.
	runErr := cmd.Run()
	findings, err := ParseOutput(stdout.Bytes())
	if err != nil {
		log.WithError(err).WithField("stderr", stderr.String()).Debug("shellcheck produced no usable output")
		return nil
	}
	if runErr != nil && len(findings) == 0 {
		log.WithError(runErr).WithField("stderr", stderr.String()).Debug("shellcheck failed")
		return nil
	}
	return shiftFindings(findings, len(req.Vars))
}

// ParseOutput decodes shellcheck's --format=json output.
func ParseOutput(data []byte) ([]Finding, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty output")
	}
	var findings []Finding
	if err := json.Unmarshal(data, &findings); err != nil {
		return nil, fmt.Errorf("decode shellcheck output: %w", err)
	}
	return findings, nil
}

// exportPrelude declares vars one per line ahead of the script.
func exportPrelude(vars []string) string {
	var b strings.Builder
	for _, v := range vars {
		b.WriteString("export ")
		b.WriteString(v)
		b.WriteString("=1\n")
	}
	return b.String()
}

// shiftFindings moves findings back over the prelude and drops any that
// point into it.
func shiftFindings(findings []Finding, offset int) []Finding {
	out := findings[:0]
	for _, f := range findings {
		f.Line -= offset
		f.EndLine -= offset
		if f.Line < 1 {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Severity maps a shellcheck level to a severity.
func Severity(level string) rules.Severity {
	switch strings.ToLower(level) {
	case "error":
		return rules.SeverityError
	case "warning":
		return rules.SeverityWarning
	case "info":
		return rules.SeverityInfo
	}
	return rules.SeverityStyle
}

// ToViolations converts findings of the RUN instruction starting at runLine
// into violations. A finding on script line n lands on runLine+n-1.
func ToViolations(file string, runLine int, findings []Finding) []rules.Violation {
	out := make([]rules.Violation, 0, len(findings))
	for _, f := range findings {
		code := fmt.Sprintf("SC%d", f.Code)
		out = append(out, rules.NewViolation(
			rules.NewLineLocation(file, runLine+f.Line-1),
			code,
			f.Message,
			Severity(f.Level),
		).WithDocURL(rules.ShellcheckDocURL(code)))
	}
	return out
}
