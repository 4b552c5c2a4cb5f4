package hadolint

import (
	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/shell"
)

// DL3046Rule implements the DL3046 linting rule.
// UIDs above 99999 make useradd write large sparse lastlog and faillog
// files unless -l is given.
type DL3046Rule struct{}

// NewDL3046Rule creates a new DL3046 rule instance.
func NewDL3046Rule() *DL3046Rule {
	return &DL3046Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3046Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3046",
		"`useradd` without flag `-l` and high UID will result in excessively large Image.",
		"useradd with a high UID writes sparse log files into the layer",
		"performance", rules.SeverityWarning)
}

// NewRun returns the per-file state of the rule.
func (r *DL3046Rule) NewRun() rules.Run {
	return rules.NewSimpleRun(r.Metadata(), func(in rules.Input) bool {
		return anyCommand(in, isHighUIDWithoutNoLogInit)
	})
}

func isHighUIDWithoutNoLogInit(c shell.Command) bool {
	if c.Name != "useradd" || c.HasAnyFlag("l", "no-log-init") {
		return false
	}
	uid, ok := c.FlagValue("-u", "--uid")
	return ok && len(uid) > 5
}

func init() {
	rules.Register(NewDL3046Rule())
}
