package hadolint

import (
	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/shell"
)

// DL3004Rule implements the DL3004 linting rule.
type DL3004Rule struct{}

// NewDL3004Rule creates a new DL3004 rule instance.
func NewDL3004Rule() *DL3004Rule {
	return &DL3004Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3004Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3004",
		"Do not use sudo as it leads to unpredictable behavior. Use a tool like gosu to enforce root",
		"sudo has unpredictable TTY and signal-forwarding behavior inside containers",
		"security", rules.SeverityError)
}

// NewRun returns the per-file state of the rule.
func (r *DL3004Rule) NewRun() rules.Run {
	return rules.NewSimpleRun(r.Metadata(), func(in rules.Input) bool {
		return anyCommand(in, func(c shell.Command) bool { return c.Name == "sudo" })
	})
}

func init() {
	rules.Register(NewDL3004Rule())
}
