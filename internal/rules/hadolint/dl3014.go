package hadolint

import (
	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/shell"
)

// DL3014Rule implements the DL3014 linting rule.
type DL3014Rule struct{}

// NewDL3014Rule creates a new DL3014 rule instance.
func NewDL3014Rule() *DL3014Rule {
	return &DL3014Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3014Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3014",
		"Use the `-y` switch to avoid manual input `apt-get -y install <package>`",
		"apt-get install prompts for confirmation without -y, which hangs non-interactive builds",
		"best-practice", rules.SeverityWarning)
}

// NewRun returns the per-file state of the rule.
func (r *DL3014Rule) NewRun() rules.Run {
	return rules.NewSimpleRun(r.Metadata(), func(in rules.Input) bool {
		return anyCommand(in, func(c shell.Command) bool {
			return isAptGetInstall(c) && !aptAssumesYes(c)
		})
	})
}

// aptAssumesYes accepts -y, --yes, --assume-yes and quiet level 2, which
// implies yes.
func aptAssumesYes(c shell.Command) bool {
	return c.HasAnyFlag("y", "yes", "assume-yes") || c.HasAnyArg("-qq", "-q=2", "--quiet=2")
}

func init() {
	rules.Register(NewDL3014Rule())
}
