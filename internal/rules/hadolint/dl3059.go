package hadolint

import (
	"slices"

	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
)

// DL3059Rule implements the DL3059 linting rule.
//
// Two RUNs only count as consecutive when their flags match, since mounts
// and network settings cannot be merged. Comments in between do not break
// the sequence.
type DL3059Rule struct{}

// NewDL3059Rule creates a new DL3059 rule instance.
func NewDL3059Rule() *DL3059Rule {
	return &DL3059Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3059Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3059",
		"Multiple consecutive `RUN` instructions. Consider consolidation.",
		"Each RUN creates a layer; consecutive ones can usually be chained with &&",
		"performance", rules.SeverityInfo)
}

type previousRun struct {
	ok    bool
	flags dockerfile.RunFlags
}

// NewRun returns the per-file state of the rule.
func (r *DL3059Rule) NewRun() rules.Run {
	meta := r.Metadata()
	return rules.NewStatefulRun(meta, rules.ScopeFile,
		func() previousRun { return previousRun{} },
		func(st *rules.State[previousRun], in rules.Input) {
			switch inst := in.Instruction.(type) {
			case dockerfile.Comment:
			case dockerfile.Run:
				if st.Data.ok && sameRunFlags(st.Data.flags, inst.Flags) {
					st.Fail(in.Line, meta.Name)
				}
				st.Data = previousRun{ok: true, flags: inst.Flags}
			default:
				st.Data = previousRun{}
			}
		},
	)
}

func sameRunFlags(a, b dockerfile.RunFlags) bool {
	return a.Network == b.Network && a.Security == b.Security && slices.Equal(a.Mounts, b.Mounts)
}

func init() {
	rules.Register(NewDL3059Rule())
}
