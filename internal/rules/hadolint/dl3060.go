package hadolint

import (
	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/shell"
)

// DL3060Rule implements the DL3060 linting rule.
type DL3060Rule struct{}

// NewDL3060Rule creates a new DL3060 rule instance.
func NewDL3060Rule() *DL3060Rule {
	return &DL3060Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3060Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3060",
		"`yarn cache clean` missing after `yarn install` was run.",
		"The yarn cache stays in the layer unless it is cleaned in the same RUN",
		"performance", rules.SeverityInfo)
}

// NewRun returns the per-file state of the rule.
func (r *DL3060Rule) NewRun() rules.Run {
	return rules.NewSimpleRun(r.Metadata(), func(in rules.Input) bool {
		run, ok := in.RunInstruction()
		if !ok || hasCacheMount(run.Flags.Mounts, "/usr/local/share/.cache/yarn") {
			return false
		}
		if !anyCommand(in, func(c shell.Command) bool { return c.IsSubcommand("yarn", "install") }) {
			return false
		}
		return !anyCommand(in, func(c shell.Command) bool {
			return c.IsSubcommand("yarn", "cache") && c.HasArg("clean")
		})
	})
}

func init() {
	rules.Register(NewDL3060Rule())
}
