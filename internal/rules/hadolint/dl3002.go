package hadolint

import (
	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
)

// DL3002Rule implements the DL3002 linting rule.
// It reports the final stage's last USER when it switches to root. Only the
// last stage matters: earlier stages do not ship as the image.
type DL3002Rule struct{}

// NewDL3002Rule creates a new DL3002 rule instance.
func NewDL3002Rule() *DL3002Rule {
	return &DL3002Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3002Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3002",
		"Last USER should not be root",
		"Running the container as root gives processes more privileges than they need",
		"security", rules.SeverityWarning)
}

type lastUser struct {
	line int
	root bool
}

// NewRun returns the per-file state of the rule.
func (r *DL3002Rule) NewRun() rules.Run {
	meta := r.Metadata()
	return rules.NewFinalizingRun(meta, rules.ScopeStage,
		func() lastUser { return lastUser{} },
		func(st *rules.State[lastUser], in rules.Input) {
			if u, ok := in.Instruction.(dockerfile.User); ok {
				st.Data = lastUser{line: in.Line, root: isRootUser(u.Name)}
			}
		},
		func(st *rules.State[lastUser]) {
			if st.Data.root {
				st.Fail(st.Data.line, meta.Name)
			}
		},
	)
}

func init() {
	rules.Register(NewDL3002Rule())
}
