package hadolint

import (
	"strings"

	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
)

// DL3024Rule implements the DL3024 linting rule.
type DL3024Rule struct{}

// NewDL3024Rule creates a new DL3024 rule instance.
func NewDL3024Rule() *DL3024Rule {
	return &DL3024Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3024Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3024",
		"`FROM` aliases (stage names) must be unique",
		"A repeated stage name makes --from and --target ambiguous",
		"correctness", rules.SeverityError)
}

// NewRun returns the per-file state of the rule.
func (r *DL3024Rule) NewRun() rules.Run {
	meta := r.Metadata()
	return rules.NewStatefulRun(meta, rules.ScopeFile,
		func() rules.Store { return rules.Store{} },
		func(st *rules.State[rules.Store], in rules.Input) {
			from, ok := in.Instruction.(dockerfile.From)
			if !ok || from.Alias == "" {
				return
			}
			alias := strings.ToLower(from.Alias)
			if st.Data.Has("aliases", alias) {
				st.Fail(in.Line, meta.Name)
				return
			}
			st.Data.Add("aliases", alias)
		},
	)
}

func init() {
	rules.Register(NewDL3024Rule())
}
