package hadolint

import (
	"fmt"
	"strings"

	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/shell"
)

// DL3018Rule implements the DL3018 linting rule.
type DL3018Rule struct{}

// NewDL3018Rule creates a new DL3018 rule instance.
func NewDL3018Rule() *DL3018Rule {
	return &DL3018Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3018Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3018",
		"Pin versions in apk add",
		"Instead of `apk add <package>` use `apk add <package>=<version>`",
		"reproducibility", rules.SeverityWarning)
}

// NewRun returns the per-file state of the rule.
func (r *DL3018Rule) NewRun() rules.Run {
	return rules.NewMultiRun(r.Metadata(), func(in rules.Input) []string {
		return unpinned(in, shell.PackageManagerApk, apkPinned, func(pkg string) string {
			return fmt.Sprintf("Pin versions in apk add. Instead of `apk add %s` use `apk add %s=<version>`", pkg, pkg)
		})
	})
}

// apkPinned accepts "=", "~=" and the "<"/">" constraints of apk-tools.
func apkPinned(pkg string) bool {
	return strings.ContainsAny(pkg, "=<>~") || strings.HasSuffix(pkg, ".apk") ||
		isLocalPackage(pkg) || hasVariable(pkg)
}

func init() {
	rules.Register(NewDL3018Rule())
}
