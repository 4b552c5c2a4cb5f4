package hadolint

import (
	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/shell"
)

// DL3027Rule implements the DL3027 linting rule.
type DL3027Rule struct{}

// NewDL3027Rule creates a new DL3027 rule instance.
func NewDL3027Rule() *DL3027Rule {
	return &DL3027Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3027Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3027",
		"Do not use apt as it is meant to be a end-user tool, use apt-get or apt-cache instead",
		"apt has no stable command-line interface for scripts",
		"best-practice", rules.SeverityWarning)
}

// NewRun returns the per-file state of the rule.
func (r *DL3027Rule) NewRun() rules.Run {
	return rules.NewSimpleRun(r.Metadata(), func(in rules.Input) bool {
		return anyCommand(in, func(c shell.Command) bool { return c.Name == "apt" })
	})
}

func init() {
	rules.Register(NewDL3027Rule())
}
