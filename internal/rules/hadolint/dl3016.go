package hadolint

import (
	"fmt"
	"strings"

	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/shell"
)

// DL3016Rule implements the DL3016 linting rule.
// "npm install" without package arguments installs from package.json and is
// not reported.
type DL3016Rule struct{}

// NewDL3016Rule creates a new DL3016 rule instance.
func NewDL3016Rule() *DL3016Rule {
	return &DL3016Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3016Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3016",
		"Pin versions in npm",
		"Instead of `npm install <package>` use `npm install <package>@<version>`",
		"reproducibility", rules.SeverityWarning)
}

// NewRun returns the per-file state of the rule.
func (r *DL3016Rule) NewRun() rules.Run {
	return rules.NewMultiRun(r.Metadata(), func(in rules.Input) []string {
		return unpinned(in, shell.PackageManagerNpm, npmPinned, func(pkg string) string {
			return fmt.Sprintf("Pin versions in npm. Instead of `npm install %s` use `npm install %s@<version>`", pkg, pkg)
		})
	})
}

func npmPinned(pkg string) bool {
	if isLocalPackage(pkg) || hasVariable(pkg) {
		return true
	}
	for _, prefix := range []string{"git", "github:", "file:", "npm:"} {
		if strings.HasPrefix(pkg, prefix) {
			return true
		}
	}
	// "@scope/name@1.0": the leading @ is part of the name.
	name := strings.TrimPrefix(pkg, "@")
	return strings.Contains(name, "@")
}

func init() {
	rules.Register(NewDL3016Rule())
}
