package hadolint

import (
	"strconv"
	"strings"

	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
)

// DL3022Rule implements the DL3022 linting rule.
//
// COPY --from accepts an alias declared on an earlier FROM, the index of an
// earlier stage, or an image reference, recognised by a '/', '.' or ':' in the
// name. The current stage is not visible to its own COPY, so a self reference
// is reported here and by DL3023.
type DL3022Rule struct{}

// NewDL3022Rule creates a new DL3022 rule instance.
func NewDL3022Rule() *DL3022Rule {
	return &DL3022Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3022Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3022",
		"`COPY --from` should reference a previously defined `FROM` alias",
		"A --from value that is neither an earlier stage nor an image reference is probably a typo",
		"correctness", rules.SeverityWarning)
}

// NewRun returns the per-file state of the rule.
func (r *DL3022Rule) NewRun() rules.Run {
	meta := r.Metadata()
	return rules.NewStatefulRun(meta, rules.ScopeFile,
		func() rules.Store { return rules.Store{} },
		func(st *rules.State[rules.Store], in rules.Input) {
			switch inst := in.Instruction.(type) {
			case dockerfile.From:
				// An alias becomes visible when the next stage starts.
				if pending, ok := st.Data.String("pending"); ok && pending != "" {
					st.Data.Add("aliases", pending)
				}
				st.Data.SetString("pending", strings.ToLower(inst.Alias))
			case dockerfile.Copy:
				from := inst.Flags.From
				if from == "" || validStageReference(from, in.Stage.Index, &st.Data) {
					return
				}
				st.Fail(in.Line, meta.Name)
			}
		},
	)
}

func validStageReference(from string, stage int, seen *rules.Store) bool {
	if strings.ContainsAny(from, "/.:$") {
		return true
	}
	if idx, err := strconv.Atoi(from); err == nil {
		return idx >= 0 && idx < stage
	}
	return seen.Has("aliases", strings.ToLower(from))
}

func init() {
	rules.Register(NewDL3022Rule())
}
