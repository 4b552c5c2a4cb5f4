package hadolint

import (
	"fmt"
	"regexp"

	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/shell"
)

// yumVersionRegex matches the "-<version>" suffix of a yum package spec.
var yumVersionRegex = regexp.MustCompile(`-[0-9]`)

// DL3033Rule implements the DL3033 linting rule.
type DL3033Rule struct{}

// NewDL3033Rule creates a new DL3033 rule instance.
func NewDL3033Rule() *DL3033Rule {
	return &DL3033Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3033Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3033",
		"Specify version with `yum install -y <package>-<version>`.",
		"Unpinned yum packages make builds unreproducible",
		"reproducibility", rules.SeverityWarning)
}

// NewRun returns the per-file state of the rule.
func (r *DL3033Rule) NewRun() rules.Run {
	return rules.NewMultiRun(r.Metadata(), func(in rules.Input) []string {
		return unpinned(in, shell.PackageManagerYum, yumPinned, func(pkg string) string {
			return fmt.Sprintf("Specify version with `yum install -y %s-<version>`.", pkg)
		})
	})
}

func yumPinned(pkg string) bool {
	return yumVersionRegex.MatchString(pkg) || isLocalPackage(pkg) || hasVariable(pkg)
}

func init() {
	rules.Register(NewDL3033Rule())
}
