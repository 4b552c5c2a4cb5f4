package hadolint

import (
	"fmt"
	"strings"

	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/shell"
)

// DL3008Rule implements the DL3008 linting rule.
// Every unpinned package of an apt-get install is reported separately.
type DL3008Rule struct{}

// NewDL3008Rule creates a new DL3008 rule instance.
func NewDL3008Rule() *DL3008Rule {
	return &DL3008Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3008Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3008",
		"Pin versions in apt get install",
		"Instead of `apt-get install <package>` use `apt-get install <package>=<version>`",
		"reproducibility", rules.SeverityWarning)
}

// NewRun returns the per-file state of the rule.
func (r *DL3008Rule) NewRun() rules.Run {
	return rules.NewMultiRun(r.Metadata(), func(in rules.Input) []string {
		var msgs []string
		for _, pi := range installs(in, shell.PackageManagerApt) {
			if pi.Command.Name != "apt-get" {
				continue
			}
			for _, pkg := range pi.Packages {
				if aptPinned(pkg) {
					continue
				}
				msgs = append(msgs, fmt.Sprintf(
					"Pin versions in apt get install. Instead of `apt-get install %s` use `apt-get install %s=<version>`",
					pkg, pkg))
			}
		}
		return msgs
	})
}

func aptPinned(pkg string) bool {
	return strings.Contains(pkg, "=") || isLocalPackage(pkg) || hasVariable(pkg)
}

func init() {
	rules.Register(NewDL3008Rule())
}
