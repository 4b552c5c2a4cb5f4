package hadolint

import (
	"regexp"

	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
)

// varRefRegex captures the names of $NAME and ${NAME...} references.
var varRefRegex = regexp.MustCompile(`\$\{?([A-Za-z_][A-Za-z0-9_]*)`)

// DL3044Rule implements the DL3044 linting rule.
//
// ENV a=1 b=$a expands $a to its value from before the statement, not to
// "1". A reference is only reported when no ENV or ARG earlier in the stage
// defined the name.
type DL3044Rule struct{}

// NewDL3044Rule creates a new DL3044 rule instance.
func NewDL3044Rule() *DL3044Rule {
	return &DL3044Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3044Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3044",
		"Do not refer to an environment variable within the same `ENV` statement where it is defined.",
		"Variables defined in an ENV statement are not visible to the rest of that statement",
		"correctness", rules.SeverityError)
}

// NewRun returns the per-file state of the rule.
func (r *DL3044Rule) NewRun() rules.Run {
	meta := r.Metadata()
	return rules.NewStatefulRun(meta, rules.ScopeStage,
		func() rules.Store { return rules.Store{} },
		func(st *rules.State[rules.Store], in rules.Input) {
			switch inst := in.Instruction.(type) {
			case dockerfile.Arg:
				st.Data.Add("vars", inst.Name)
			case dockerfile.Env:
				if selfReferencing(inst.Pairs, &st.Data) {
					st.Fail(in.Line, meta.Name)
				}
				for _, kv := range inst.Pairs {
					st.Data.Add("vars", kv.Key)
				}
			}
		},
	)
}

func selfReferencing(pairs []dockerfile.KeyValue, defined *rules.Store) bool {
	inStatement := make(map[string]bool, len(pairs))
	for _, kv := range pairs {
		for _, m := range varRefRegex.FindAllStringSubmatch(kv.Value, -1) {
			name := m[1]
			if inStatement[name] && !defined.Has("vars", name) {
				return true
			}
		}
		inStatement[kv.Key] = true
	}
	return false
}

func init() {
	rules.Register(NewDL3044Rule())
}
