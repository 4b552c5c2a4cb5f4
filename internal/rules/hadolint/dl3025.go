package hadolint

import (
	"strings"

	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
)

// DL3025Rule implements the DL3025 linting rule.
type DL3025Rule struct{}

// NewDL3025Rule creates a new DL3025 rule instance.
func NewDL3025Rule() *DL3025Rule {
	return &DL3025Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3025Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3025",
		"Use arguments JSON notation for CMD and ENTRYPOINT arguments",
		"Shell form runs the process under /bin/sh -c, which does not forward signals",
		"best-practice", rules.SeverityWarning)
}

// NewRun returns the per-file state of the rule.
func (r *DL3025Rule) NewRun() rules.Run {
	return rules.NewSimpleRun(r.Metadata(), func(in rules.Input) bool {
		var args dockerfile.Arguments
		switch inst := in.Instruction.(type) {
		case dockerfile.Cmd:
			args = inst.Arguments
		case dockerfile.Entrypoint:
			args = inst.Arguments
		default:
			return false
		}
		return !args.Exec && strings.TrimSpace(args.Text) != ""
	})
}

func init() {
	rules.Register(NewDL3025Rule())
}
