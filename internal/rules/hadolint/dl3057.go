package hadolint

import (
	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
)

// DL3057Rule implements the DL3057 linting rule. It is opt-in: a base image
// may define the HEALTHCHECK the Dockerfile inherits.
type DL3057Rule struct{}

// NewDL3057Rule creates a new DL3057 rule instance.
func NewDL3057Rule() *DL3057Rule {
	return &DL3057Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3057Rule) Metadata() rules.RuleMetadata {
	meta := hadolintRule("DL3057",
		"`HEALTHCHECK` instruction missing.",
		"Without HEALTHCHECK the runtime cannot tell a hung container from a healthy one",
		"best-practice", rules.SeverityInfo)
	meta.EnabledByDefault = false
	return meta
}

type healthcheckSeen struct {
	stages      int
	healthcheck bool
}

// NewRun returns the per-file state of the rule.
func (r *DL3057Rule) NewRun() rules.Run {
	meta := r.Metadata()
	return rules.NewFinalizingRun(meta, rules.ScopeFile,
		func() healthcheckSeen { return healthcheckSeen{} },
		func(st *rules.State[healthcheckSeen], in rules.Input) {
			switch in.Instruction.(type) {
			case dockerfile.From:
				st.Data.stages++
			case dockerfile.Healthcheck:
				st.Data.healthcheck = true
			}
		},
		func(st *rules.State[healthcheckSeen]) {
			if st.Data.stages > 0 && !st.Data.healthcheck {
				st.Fail(0, meta.Name)
			}
		},
	)
}

func init() {
	rules.Register(NewDL3057Rule())
}
