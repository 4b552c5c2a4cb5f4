package hadolint

import (
	"strings"

	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/shell"
)

// DL3032Rule implements the DL3032 linting rule.
// Removing /var/cache/yum counts as cleaning.
type DL3032Rule struct{}

// NewDL3032Rule creates a new DL3032 rule instance.
func NewDL3032Rule() *DL3032Rule {
	return &DL3032Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3032Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3032",
		"`yum clean all` missing after yum command.",
		"The yum metadata cache stays in the layer unless it is cleaned in the same RUN",
		"performance", rules.SeverityWarning)
}

// NewRun returns the per-file state of the rule.
func (r *DL3032Rule) NewRun() rules.Run {
	return rules.NewSimpleRun(r.Metadata(), func(in rules.Input) bool {
		if len(installs(in, shell.PackageManagerYum)) == 0 {
			return false
		}
		return !anyCommand(in, func(c shell.Command) bool {
			if c.IsSubcommand("yum", "clean") {
				return c.HasArg("all")
			}
			if c.Name == "rm" {
				for _, arg := range c.ArgsNoFlags() {
					if strings.HasPrefix(arg, "/var/cache/yum") {
						return true
					}
				}
			}
			return false
		})
	})
}

func init() {
	rules.Register(NewDL3032Rule())
}
