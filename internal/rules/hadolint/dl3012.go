package hadolint

import (
	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
)

// DL3012Rule implements the DL3012 linting rule.
// Each HEALTHCHECK after the first in a stage is reported.
type DL3012Rule struct{}

// NewDL3012Rule creates a new DL3012 rule instance.
func NewDL3012Rule() *DL3012Rule {
	return &DL3012Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3012Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3012",
		"Multiple `HEALTHCHECK` instructions",
		"Only the last HEALTHCHECK of a stage takes effect",
		"correctness", rules.SeverityError)
}

// NewRun returns the per-file state of the rule.
func (r *DL3012Rule) NewRun() rules.Run {
	meta := r.Metadata()
	return rules.NewStatefulRun(meta, rules.ScopeStage,
		func() int { return 0 },
		func(st *rules.State[int], in rules.Input) {
			if _, ok := in.Instruction.(dockerfile.Healthcheck); !ok {
				return
			}
			st.Data++
			if st.Data > 1 {
				st.Fail(in.Line, meta.Name)
			}
		},
	)
}

func init() {
	rules.Register(NewDL3012Rule())
}
