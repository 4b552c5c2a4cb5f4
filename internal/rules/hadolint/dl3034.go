package hadolint

import "github.com/wharflab/stagelint/internal/rules"

// DL3034Rule implements the DL3034 linting rule.
type DL3034Rule struct{}

// NewDL3034Rule creates a new DL3034 rule instance.
func NewDL3034Rule() *DL3034Rule {
	return &DL3034Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3034Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3034",
		"Non-interactive switch missing from `zypper` command: `zypper install -y`",
		"zypper asks for confirmation unless -n or -y is given",
		"best-practice", rules.SeverityWarning)
}

// NewRun returns the per-file state of the rule.
func (r *DL3034Rule) NewRun() rules.Run {
	return rules.NewSimpleRun(r.Metadata(), missingYes(
		[]string{"zypper"},
		[]string{"install", "in", "remove", "rm", "source-install", "si", "patch"},
		"n", "non-interactive", "y", "no-confirm"))
}

func init() {
	rules.Register(NewDL3034Rule())
}
