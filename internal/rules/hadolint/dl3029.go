package hadolint

import (
	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
)

// DL3029Rule implements the DL3029 linting rule.
// Build-arg platforms such as $BUILDPLATFORM are allowed.
type DL3029Rule struct{}

// NewDL3029Rule creates a new DL3029 rule instance.
func NewDL3029Rule() *DL3029Rule {
	return &DL3029Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3029Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3029",
		"Do not use --platform flag with FROM",
		"A hard-coded platform breaks multi-platform builds",
		"portability", rules.SeverityWarning)
}

// NewRun returns the per-file state of the rule.
func (r *DL3029Rule) NewRun() rules.Run {
	return rules.NewSimpleRun(r.Metadata(), func(in rules.Input) bool {
		from, ok := in.Instruction.(dockerfile.From)
		return ok && from.Platform != "" && !hasVariable(from.Platform)
	})
}

func init() {
	rules.Register(NewDL3029Rule())
}
