package hadolint

import (
	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
)

// DL3007Rule implements the DL3007 linting rule.
// A digest pins the image even when the tag says latest.
type DL3007Rule struct{}

// NewDL3007Rule creates a new DL3007 rule instance.
func NewDL3007Rule() *DL3007Rule {
	return &DL3007Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3007Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3007",
		"Using latest is prone to errors if the image will ever update. Pin the version explicitly to a release tag",
		"The latest tag moves; pin a release tag or a digest",
		"reproducibility", rules.SeverityWarning)
}

// NewRun returns the per-file state of the rule.
func (r *DL3007Rule) NewRun() rules.Run {
	return rules.NewSimpleRun(r.Metadata(), func(in rules.Input) bool {
		from, ok := in.Instruction.(dockerfile.From)
		return ok && from.Image.Tag == "latest" && from.Image.Digest == ""
	})
}

func init() {
	rules.Register(NewDL3007Rule())
}
