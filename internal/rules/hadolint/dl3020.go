package hadolint

import (
	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
)

// DL3020Rule implements the DL3020 linting rule.
// ADD is only justified for URLs and local archives it unpacks.
type DL3020Rule struct{}

// NewDL3020Rule creates a new DL3020 rule instance.
func NewDL3020Rule() *DL3020Rule {
	return &DL3020Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3020Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3020",
		"Use COPY instead of ADD for files and folders",
		"ADD fetches URLs and unpacks archives implicitly; COPY is explicit about copying local files",
		"best-practice", rules.SeverityError)
}

// NewRun returns the per-file state of the rule.
func (r *DL3020Rule) NewRun() rules.Run {
	return rules.NewSimpleRun(r.Metadata(), func(in rules.Input) bool {
		add, ok := in.Instruction.(dockerfile.Add)
		if !ok || len(add.Heredocs) > 0 {
			return false
		}
		for _, src := range add.Sources {
			if !isURL(src) && !isArchive(src) && !hasVariable(src) {
				return true
			}
		}
		return false
	})
}

func init() {
	rules.Register(NewDL3020Rule())
}
