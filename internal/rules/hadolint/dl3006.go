package hadolint

import (
	"strings"

	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
)

// DL3006Rule implements the DL3006 linting rule.
// It checks that external base images carry an explicit tag or digest.
// scratch, build-arg references and earlier stage aliases are exempt.
type DL3006Rule struct{}

// NewDL3006Rule creates a new DL3006 rule instance.
func NewDL3006Rule() *DL3006Rule {
	return &DL3006Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3006Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3006",
		"Always tag the version of an image explicitly",
		"Untagged images default to :latest, which can change unexpectedly and break builds",
		"reproducibility", rules.SeverityWarning)
}

// NewRun returns the per-file state of the rule.
func (r *DL3006Rule) NewRun() rules.Run {
	meta := r.Metadata()
	return rules.NewStatefulRun(meta, rules.ScopeFile,
		func() rules.Store { return rules.Store{} },
		func(st *rules.State[rules.Store], in rules.Input) {
			from, ok := in.Instruction.(dockerfile.From)
			if !ok {
				return
			}
			if !imageIsPinnedOrLocal(from.Image, &st.Data) {
				st.Fail(in.Line, meta.Name)
			}
			if from.Alias != "" {
				st.Data.Add("aliases", strings.ToLower(from.Alias))
			}
		},
	)
}

func imageIsPinnedOrLocal(img dockerfile.BaseImage, seen *rules.Store) bool {
	switch {
	case img.IsScratch(), img.IsVariable():
		return true
	case img.Tag != "", img.Digest != "":
		return true
	}
	return seen.Has("aliases", strings.ToLower(img.Name))
}

func init() {
	rules.Register(NewDL3006Rule())
}
