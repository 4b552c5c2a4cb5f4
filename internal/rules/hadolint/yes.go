package hadolint

import (
	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/shell"
)

// missingYes builds the predicate shared by the "use -y" rules: program
// runs install without any of the assume-yes flags.
func missingYes(programs []string, installSubs []string, yesFlags ...string) func(rules.Input) bool {
	return func(in rules.Input) bool {
		return anyCommand(in, func(c shell.Command) bool {
			for _, p := range programs {
				if c.IsSubcommand(p, installSubs...) && !c.HasAnyFlag(yesFlags...) {
					return true
				}
			}
			return false
		})
	}
}
