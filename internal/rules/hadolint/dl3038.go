package hadolint

import "github.com/wharflab/stagelint/internal/rules"

// DL3038Rule implements the DL3038 linting rule. microdnf is held to the
// same standard as dnf.
type DL3038Rule struct{}

// NewDL3038Rule creates a new DL3038 rule instance.
func NewDL3038Rule() *DL3038Rule {
	return &DL3038Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3038Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3038",
		"Use the -y switch to avoid manual input `dnf install -y <package>`",
		"dnf asks for confirmation unless -y is given",
		"best-practice", rules.SeverityWarning)
}

// NewRun returns the per-file state of the rule.
func (r *DL3038Rule) NewRun() rules.Run {
	return rules.NewSimpleRun(r.Metadata(), missingYes(
		[]string{"dnf", "microdnf"},
		[]string{"install", "groupinstall", "localinstall", "reinstall"},
		"y", "assumeyes"))
}

func init() {
	rules.Register(NewDL3038Rule())
}
