package hadolint

import (
	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/shell"
)

// DL3003Rule implements the DL3003 linting rule.
type DL3003Rule struct{}

// NewDL3003Rule creates a new DL3003 rule instance.
func NewDL3003Rule() *DL3003Rule {
	return &DL3003Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3003Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3003",
		"Use WORKDIR to switch to a directory",
		"cd inside RUN only affects that instruction; WORKDIR persists and is easier to follow",
		"style", rules.SeverityWarning)
}

// NewRun returns the per-file state of the rule.
func (r *DL3003Rule) NewRun() rules.Run {
	return rules.NewSimpleRun(r.Metadata(), func(in rules.Input) bool {
		return anyCommand(in, func(c shell.Command) bool { return c.Name == "cd" })
	})
}

func init() {
	rules.Register(NewDL3003Rule())
}
