package linter

import (
	"context"
	"slices"
	"strings"

	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/shellcheck"
)

// shellcheckViolations runs analyzer over every shell-form RUN whose dialect
// is POSIX-like. ARG and ENV names declared earlier in the stage are passed
// along so they are not reported as unassigned.
func shellcheckViolations(ctx context.Context, analyzer shellcheck.Analyzer, inputs []rules.Input) []rules.Violation {
	var (
		out  []rules.Violation
		vars []string
	)
	for _, in := range inputs {
		switch inst := in.Instruction.(type) {
		case dockerfile.From:
			vars = nil
		case dockerfile.Arg:
			vars = append(vars, inst.Name)
		case dockerfile.Env:
			for _, kv := range inst.Pairs {
				vars = append(vars, kv.Key)
			}
		case dockerfile.Run:
			if inst.Exec || in.Shell == nil || strings.TrimSpace(inst.Text) == "" {
				continue
			}
			findings := analyzer.Analyze(ctx, shellcheck.Request{
				Script: inst.Text,
				Shell:  in.Shell.Variant.String(),
				Vars:   slices.Clone(vars),
			})
			out = append(out, shellcheck.ToViolations(in.File, scriptLine(in.Line, inst), findings)...)
		}
	}
	return out
}

// scriptLine returns the file line of the first script line. A bare
// "RUN <<EOF" runs the heredoc body, which starts on the next line.
func scriptLine(runLine int, run dockerfile.Run) int {
	if len(run.Heredocs) == 0 {
		return runLine
	}
	var body strings.Builder
	for i, doc := range run.Heredocs {
		if i > 0 {
			body.WriteString("\n")
		}
		body.WriteString(doc.Content)
	}
	if run.Text == body.String() {
		return runLine + 1
	}
	return runLine
}
