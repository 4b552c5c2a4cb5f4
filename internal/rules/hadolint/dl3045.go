package hadolint

import (
	"strings"

	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
)

// DL3045Rule implements the DL3045 linting rule.
//
// A stage built FROM an earlier stage inherits that stage's WORKDIR, so the
// "WORKDIR set" flag is remembered per alias.
type DL3045Rule struct{}

// NewDL3045Rule creates a new DL3045 rule instance.
func NewDL3045Rule() *DL3045Rule {
	return &DL3045Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3045Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3045",
		"`COPY` to a relative destination without `WORKDIR` set.",
		"Without WORKDIR the destination is resolved against the implicit / of the base image",
		"best-practice", rules.SeverityWarning)
}

type workdirTracker struct {
	current bool
	// aliases maps a lower-cased stage alias to its final WORKDIR status.
	aliases map[string]bool
	alias   string
}

// NewRun returns the per-file state of the rule.
func (r *DL3045Rule) NewRun() rules.Run {
	meta := r.Metadata()
	return rules.NewStatefulRun(meta, rules.ScopeFile,
		func() workdirTracker { return workdirTracker{aliases: map[string]bool{}} },
		func(st *rules.State[workdirTracker], in rules.Input) {
			w := &st.Data
			switch inst := in.Instruction.(type) {
			case dockerfile.From:
				w.alias = strings.ToLower(inst.Alias)
				w.current = false
				if inst.Image.Tag == "" && inst.Image.Digest == "" {
					w.current = w.aliases[strings.ToLower(inst.Image.Name)]
				}
				if w.alias != "" {
					w.aliases[w.alias] = w.current
				}
			case dockerfile.Workdir:
				w.current = true
				if w.alias != "" {
					w.aliases[w.alias] = true
				}
			case dockerfile.Copy:
				if w.current || len(inst.Heredocs) > 0 || isAbsolutePath(inst.Dest) {
					return
				}
				st.Fail(in.Line, meta.Name)
			}
		},
	)
}

func init() {
	rules.Register(NewDL3045Rule())
}
