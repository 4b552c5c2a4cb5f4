package hadolint

import (
	"fmt"
	"strings"

	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/shell"
)

// DL3028Rule implements the DL3028 linting rule.
// "gem install name -v 1.0" pins every gem of the command.
type DL3028Rule struct{}

// NewDL3028Rule creates a new DL3028 rule instance.
func NewDL3028Rule() *DL3028Rule {
	return &DL3028Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3028Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3028",
		"Pin versions in gem install",
		"Instead of `gem install <gem>` use `gem install <gem>:<version>`",
		"reproducibility", rules.SeverityWarning)
}

// NewRun returns the per-file state of the rule.
func (r *DL3028Rule) NewRun() rules.Run {
	return rules.NewMultiRun(r.Metadata(), func(in rules.Input) []string {
		var msgs []string
		for _, pi := range installs(in, shell.PackageManagerGem) {
			if pi.Command.HasAnyFlag("v", "version") {
				continue
			}
			for _, pkg := range pi.Packages {
				if strings.Contains(pkg, ":") || isLocalPackage(pkg) || hasVariable(pkg) {
					continue
				}
				msgs = append(msgs, fmt.Sprintf(
					"Pin versions in gem install. Instead of `gem install %s` use `gem install %s:<version>`", pkg, pkg))
			}
		}
		return msgs
	})
}

func init() {
	rules.Register(NewDL3028Rule())
}
