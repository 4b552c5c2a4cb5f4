package hadolint

import (
	"github.com/wharflab/stagelint/internal/rules"
)

// DL4001Rule implements the DL4001 linting rule.
// A stage is reported once, on the RUN where the second tool first shows up.
type DL4001Rule struct{}

// NewDL4001Rule creates a new DL4001 rule instance.
func NewDL4001Rule() *DL4001Rule {
	return &DL4001Rule{}
}

// Metadata returns the rule metadata.
func (r *DL4001Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL4001",
		"Either use Wget or Curl but not both",
		"Installing both download tools wastes space",
		"maintainability", rules.SeverityWarning)
}

// NewRun returns the per-file state of the rule.
func (r *DL4001Rule) NewRun() rules.Run {
	meta := r.Metadata()
	return rules.NewStatefulRun(meta, rules.ScopeStage,
		func() rules.Store { return rules.Store{} },
		func(st *rules.State[rules.Store], in rules.Input) {
			if st.Data.Bool("reported") {
				return
			}
			for _, c := range runCommands(in) {
				if c.Name == "wget" || c.Name == "curl" {
					st.Data.Add("tools", c.Name)
				}
			}
			if st.Data.Len("tools") == 2 {
				st.Data.SetBool("reported", true)
				st.Fail(in.Line, meta.Name)
			}
		},
	)
}

func init() {
	rules.Register(NewDL4001Rule())
}
