package hadolint

import (
	"fmt"
	"strings"

	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/shell"
)

// pipVersionOperators are the PEP 440 comparison operators and the PEP 508
// direct reference marker.
var pipVersionOperators = []string{"==", ">=", "<=", "~=", "!=", "<", ">", "@"}

// DL3013Rule implements the DL3013 linting rule.
type DL3013Rule struct{}

// NewDL3013Rule creates a new DL3013 rule instance.
func NewDL3013Rule() *DL3013Rule {
	return &DL3013Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3013Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3013",
		"Pin versions in pip",
		"Instead of `pip install <package>` use `pip install <package>==<version>` "+
			"or `pip install --requirement <requirements file>`",
		"reproducibility", rules.SeverityWarning)
}

// NewRun returns the per-file state of the rule.
func (r *DL3013Rule) NewRun() rules.Run {
	return rules.NewMultiRun(r.Metadata(), func(in rules.Input) []string {
		return unpinned(in, shell.PackageManagerPip, pipPinned, func(pkg string) string {
			return fmt.Sprintf("Pin versions in pip. Instead of `pip install %s` use `pip install %s==<version>`", pkg, pkg)
		})
	})
}

func pipPinned(pkg string) bool {
	if isLocalPackage(pkg) || hasVariable(pkg) {
		return true
	}
	for _, op := range pipVersionOperators {
		if strings.Contains(pkg, op) {
			return true
		}
	}
	return false
}

func init() {
	rules.Register(NewDL3013Rule())
}
