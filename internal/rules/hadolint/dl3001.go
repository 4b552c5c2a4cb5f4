package hadolint

import (
	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/shell"
)

// interactiveCommands make no sense inside a container build.
var interactiveCommands = map[string]bool{
	"free":     true,
	"ifconfig": true,
	"kill":     true,
	"mount":    true,
	"ps":       true,
	"service":  true,
	"shutdown": true,
	"ssh":      true,
	"top":      true,
	"vim":      true,
}

// DL3001Rule implements the DL3001 linting rule.
type DL3001Rule struct{}

// NewDL3001Rule creates a new DL3001 rule instance.
func NewDL3001Rule() *DL3001Rule {
	return &DL3001Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3001Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3001",
		"For some bash commands it makes no sense running them in a Docker container "+
			"like ssh, vim, shutdown, service, ps, free, top, kill, mount, ifconfig",
		"Interactive and system management commands do not belong in a RUN instruction",
		"style", rules.SeverityInfo)
}

// NewRun returns the per-file state of the rule.
func (r *DL3001Rule) NewRun() rules.Run {
	return rules.NewSimpleRun(r.Metadata(), func(in rules.Input) bool {
		return anyCommand(in, func(c shell.Command) bool {
			return interactiveCommands[c.Name]
		})
	})
}

func init() {
	rules.Register(NewDL3001Rule())
}
