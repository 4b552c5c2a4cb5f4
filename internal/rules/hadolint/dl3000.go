package hadolint

import (
	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
)

// DL3000Rule implements the DL3000 linting rule.
// It checks that WORKDIR paths are absolute.
type DL3000Rule struct{}

// NewDL3000Rule creates a new DL3000 rule instance.
func NewDL3000Rule() *DL3000Rule {
	return &DL3000Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3000Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3000",
		"Use absolute WORKDIR",
		"WORKDIR should be an absolute path; relative paths depend on the previous WORKDIR",
		"correctness", rules.SeverityError)
}

// NewRun returns the per-file state of the rule.
func (r *DL3000Rule) NewRun() rules.Run {
	return rules.NewSimpleRun(r.Metadata(), func(in rules.Input) bool {
		wd, ok := in.Instruction.(dockerfile.Workdir)
		return ok && !isAbsolutePath(wd.Path)
	})
}

func init() {
	rules.Register(NewDL3000Rule())
}
