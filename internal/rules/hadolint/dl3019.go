package hadolint

import (
	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/shell"
)

// DL3019Rule implements the DL3019 linting rule.
// A cache mount on /var/cache/apk makes --no-cache unnecessary.
type DL3019Rule struct{}

// NewDL3019Rule creates a new DL3019 rule instance.
func NewDL3019Rule() *DL3019Rule {
	return &DL3019Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3019Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3019",
		"Use the `--no-cache` switch to avoid the need to use `--update` and remove `/var/cache/apk/*` "+
			"when done installing packages",
		"apk keeps its index cache in the layer unless --no-cache is given",
		"performance", rules.SeverityInfo)
}

// NewRun returns the per-file state of the rule.
func (r *DL3019Rule) NewRun() rules.Run {
	return rules.NewSimpleRun(r.Metadata(), func(in rules.Input) bool {
		run, ok := in.RunInstruction()
		if !ok || hasCacheMount(run.Flags.Mounts, "/var/cache/apk") {
			return false
		}
		return anyCommand(in, func(c shell.Command) bool {
			return c.IsSubcommand("apk", "add") && !c.HasFlag("no-cache")
		})
	})
}

func init() {
	rules.Register(NewDL3019Rule())
}
