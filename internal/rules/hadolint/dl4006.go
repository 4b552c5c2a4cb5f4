package hadolint

import (
	"slices"
	"strings"

	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/shell"
)

// DL4006Rule implements the DL4006 linting rule.
//
// pipefail counts as set by a SHELL instruction of the stage or by
// "set -o pipefail" inside the RUN itself. RUNs without a shell view
// (PowerShell stages, exec form) are skipped.
type DL4006Rule struct{}

// NewDL4006Rule creates a new DL4006 rule instance.
func NewDL4006Rule() *DL4006Rule {
	return &DL4006Rule{}
}

// Metadata returns the rule metadata.
func (r *DL4006Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL4006",
		"Set the SHELL option -o pipefail before RUN with a pipe in it. "+
			"If you are using /bin/sh in an alpine image or if your shell is symlinked to busybox "+
			"then consider explicitly setting your SHELL to /bin/ash, or disable this check",
		"Without pipefail a failing command before a pipe does not fail the build",
		"reliability", rules.SeverityWarning)
}

// NewRun returns the per-file state of the rule.
func (r *DL4006Rule) NewRun() rules.Run {
	meta := r.Metadata()
	return rules.NewStatefulRun(meta, rules.ScopeStage,
		func() bool { return false },
		func(st *rules.State[bool], in rules.Input) {
			if sh, ok := in.Instruction.(dockerfile.Shell); ok {
				st.Data = slices.ContainsFunc(sh.Args, func(a string) bool {
					return strings.Contains(a, "pipefail")
				})
				return
			}
			run, ok := in.RunInstruction()
			if !ok || run.Exec || in.Shell == nil || st.Data || !in.Shell.HasPipes {
				return
			}
			if slices.ContainsFunc(in.Shell.Commands, setsPipefail) {
				return
			}
			st.Fail(in.Line, meta.Name)
		},
	)
}

func setsPipefail(c shell.Command) bool {
	return c.Name == "set" && c.HasArg("pipefail")
}

func init() {
	rules.Register(NewDL4006Rule())
}
