package hadolint

import (
	"strings"

	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
)

// DL3021Rule implements the DL3021 linting rule.
type DL3021Rule struct{}

// NewDL3021Rule creates a new DL3021 rule instance.
func NewDL3021Rule() *DL3021Rule {
	return &DL3021Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3021Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3021",
		"COPY with more than 2 arguments requires the last argument to end with /",
		"Copying several sources needs a directory destination",
		"correctness", rules.SeverityError)
}

// NewRun returns the per-file state of the rule.
func (r *DL3021Rule) NewRun() rules.Run {
	return rules.NewSimpleRun(r.Metadata(), func(in rules.Input) bool {
		cp, ok := in.Instruction.(dockerfile.Copy)
		if !ok || len(cp.Sources) < 2 {
			return false
		}
		dest := strings.Trim(cp.Dest, `"'`)
		return !strings.HasSuffix(dest, "/") && !strings.HasSuffix(dest, `\`)
	})
}

func init() {
	rules.Register(NewDL3021Rule())
}
