package hadolint

import "github.com/wharflab/stagelint/internal/rules"

// DL3030Rule implements the DL3030 linting rule.
type DL3030Rule struct{}

// NewDL3030Rule creates a new DL3030 rule instance.
func NewDL3030Rule() *DL3030Rule {
	return &DL3030Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3030Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3030",
		"Use the -y switch to avoid manual input `yum install -y <package>`",
		"yum install prompts for confirmation without -y, which hangs non-interactive builds",
		"best-practice", rules.SeverityWarning)
}

// NewRun returns the per-file state of the rule.
func (r *DL3030Rule) NewRun() rules.Run {
	return rules.NewSimpleRun(r.Metadata(),
		missingYes([]string{"yum"}, []string{"install", "groupinstall", "localinstall", "reinstall"}, "y", "assumeyes"))
}

func init() {
	rules.Register(NewDL3030Rule())
}
