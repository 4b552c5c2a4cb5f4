package hadolint

import (
	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
)

// DL3061Rule implements the DL3061 linting rule.
type DL3061Rule struct{}

// NewDL3061Rule creates a new DL3061 rule instance.
func NewDL3061Rule() *DL3061Rule {
	return &DL3061Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3061Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3061",
		"Invalid instruction order. Dockerfile must begin with `FROM`, `ARG` or comment.",
		"Only ARG may precede the first FROM",
		"correctness", rules.SeverityError)
}

// NewRun returns the per-file state of the rule.
func (r *DL3061Rule) NewRun() rules.Run {
	return rules.NewSimpleRun(r.Metadata(), func(in rules.Input) bool {
		if in.Stage.Index >= 0 {
			return false
		}
		switch in.Instruction.(type) {
		case dockerfile.From, dockerfile.Arg, dockerfile.Comment:
			return false
		}
		return true
	})
}

func init() {
	rules.Register(NewDL3061Rule())
}
