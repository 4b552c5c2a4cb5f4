package hadolint

import (
	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
)

// DL4004Rule implements the DL4004 linting rule.
type DL4004Rule struct{}

// NewDL4004Rule creates a new DL4004 rule instance.
func NewDL4004Rule() *DL4004Rule {
	return &DL4004Rule{}
}

// Metadata returns the rule metadata.
func (r *DL4004Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL4004",
		"Multiple `ENTRYPOINT` instructions found. If you list more than one `ENTRYPOINT` then only the last "+
			"`ENTRYPOINT` will take effect",
		"Only the last ENTRYPOINT of a stage takes effect",
		"correctness", rules.SeverityError)
}

// NewRun returns the per-file state of the rule.
func (r *DL4004Rule) NewRun() rules.Run {
	return repeatedInStage(r.Metadata(), func(in rules.Input) bool {
		_, ok := in.Instruction.(dockerfile.Entrypoint)
		return ok
	})
}

func init() {
	rules.Register(NewDL4004Rule())
}
