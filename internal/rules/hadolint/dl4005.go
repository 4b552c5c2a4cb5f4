package hadolint

import (
	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/shell"
)

// DL4005Rule implements the DL4005 linting rule.
type DL4005Rule struct{}

// NewDL4005Rule creates a new DL4005 rule instance.
func NewDL4005Rule() *DL4005Rule {
	return &DL4005Rule{}
}

// Metadata returns the rule metadata.
func (r *DL4005Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL4005",
		"Use SHELL to change the default shell",
		"Relinking /bin/sh changes the shell for every later tool, not only for RUN",
		"best-practice", rules.SeverityWarning)
}

// NewRun returns the per-file state of the rule.
func (r *DL4005Rule) NewRun() rules.Run {
	return rules.NewSimpleRun(r.Metadata(), func(in rules.Input) bool {
		return anyCommand(in, func(c shell.Command) bool {
			args := c.ArgsNoFlags()
			return c.Name == "ln" && len(args) > 0 && args[len(args)-1] == "/bin/sh"
		})
	})
}

func init() {
	rules.Register(NewDL4005Rule())
}
