package hadolint

import (
	"strconv"
	"strings"

	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
)

// DL3023Rule implements the DL3023 linting rule.
// It reads the stage view of the input: COPY --from naming the stage it is
// in, by alias or index, is always an error.
type DL3023Rule struct{}

// NewDL3023Rule creates a new DL3023 rule instance.
func NewDL3023Rule() *DL3023Rule {
	return &DL3023Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3023Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3023",
		"`COPY --from` cannot reference its own `FROM` alias",
		"A stage cannot copy from itself",
		"correctness", rules.SeverityError)
}

// NewRun returns the per-file state of the rule.
func (r *DL3023Rule) NewRun() rules.Run {
	return rules.NewSimpleRun(r.Metadata(), func(in rules.Input) bool {
		cp, ok := in.Instruction.(dockerfile.Copy)
		if !ok || cp.Flags.From == "" || in.Stage.Index < 0 {
			return false
		}
		from := cp.Flags.From
		if in.Stage.Alias != "" && strings.EqualFold(from, in.Stage.Alias) {
			return true
		}
		return from == strconv.Itoa(in.Stage.Index)
	})
}

func init() {
	rules.Register(NewDL3023Rule())
}
