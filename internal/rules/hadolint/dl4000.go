package hadolint

import (
	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
)

// DL4000Rule implements the DL4000 linting rule.
type DL4000Rule struct{}

// NewDL4000Rule creates a new DL4000 rule instance.
func NewDL4000Rule() *DL4000Rule {
	return &DL4000Rule{}
}

// Metadata returns the rule metadata.
func (r *DL4000Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL4000",
		"MAINTAINER is deprecated",
		"Use LABEL org.opencontainers.image.authors instead",
		"deprecation", rules.SeverityError)
}

// NewRun returns the per-file state of the rule.
func (r *DL4000Rule) NewRun() rules.Run {
	return rules.NewSimpleRun(r.Metadata(), func(in rules.Input) bool {
		_, ok := in.Instruction.(dockerfile.Maintainer)
		return ok
	})
}

func init() {
	rules.Register(NewDL4000Rule())
}
