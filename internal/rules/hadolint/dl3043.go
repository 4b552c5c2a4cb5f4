package hadolint

import (
	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
)

// DL3043Rule implements the DL3043 linting rule.
type DL3043Rule struct{}

// NewDL3043Rule creates a new DL3043 rule instance.
func NewDL3043Rule() *DL3043Rule {
	return &DL3043Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3043Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3043",
		"`ONBUILD`, `FROM` or `MAINTAINER` triggered from within `ONBUILD` instruction.",
		"The builder rejects these instructions as ONBUILD triggers",
		"correctness", rules.SeverityError)
}

// NewRun returns the per-file state of the rule.
func (r *DL3043Rule) NewRun() rules.Run {
	return rules.NewSimpleRun(r.Metadata(), func(in rules.Input) bool {
		ob, ok := in.Instruction.(dockerfile.OnBuild)
		if !ok {
			return false
		}
		switch ob.Inner.(type) {
		case dockerfile.OnBuild, dockerfile.From, dockerfile.Maintainer:
			return true
		}
		return false
	})
}

func init() {
	rules.Register(NewDL3043Rule())
}
