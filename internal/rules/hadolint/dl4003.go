package hadolint

import (
	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
)

// DL4003Rule implements the DL4003 linting rule.
type DL4003Rule struct{}

// NewDL4003Rule creates a new DL4003 rule instance.
func NewDL4003Rule() *DL4003Rule {
	return &DL4003Rule{}
}

// Metadata returns the rule metadata.
func (r *DL4003Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL4003",
		"Multiple `CMD` instructions found. If you list more than one `CMD` then only the last `CMD` will take effect",
		"Only the last CMD of a stage takes effect",
		"correctness", rules.SeverityWarning)
}

// NewRun returns the per-file state of the rule.
func (r *DL4003Rule) NewRun() rules.Run {
	return repeatedInStage(r.Metadata(), func(in rules.Input) bool {
		_, ok := in.Instruction.(dockerfile.Cmd)
		return ok
	})
}

func init() {
	rules.Register(NewDL4003Rule())
}
