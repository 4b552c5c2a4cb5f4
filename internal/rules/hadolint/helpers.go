package hadolint

import (
	"path"
	"strings"

	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/shell"
)

// hadolintRule is the shared metadata builder of this package: every rule
// is enabled by default unless it says otherwise.
func hadolintRule(code, name, description, category string, severity rules.Severity) rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             code,
		Name:             name,
		Description:      description,
		DocURL:           rules.HadolintDocURL(code),
		DefaultSeverity:  severity,
		Category:         category,
		EnabledByDefault: true,
	}
}

// runCommands returns the commands of a RUN input, or nil when the input is
// not a RUN or its shell view is unavailable.
func runCommands(in rules.Input) []shell.Command {
	if in.Shell == nil {
		return nil
	}
	if _, ok := in.RunInstruction(); !ok {
		return nil
	}
	return in.Shell.Commands
}

// anyCommand reports whether pred holds for some command of a RUN input.
func anyCommand(in rules.Input, pred func(shell.Command) bool) bool {
	for _, c := range runCommands(in) {
		if pred(c) {
			return true
		}
	}
	return false
}

// installs returns the package installations of manager in a RUN input.
func installs(in rules.Input, manager shell.PackageManager) []shell.PackageInstall {
	if len(runCommands(in)) == 0 {
		return nil
	}
	var out []shell.PackageInstall
	for _, pi := range in.Shell.ExtractPackageInstalls() {
		if pi.Manager == manager {
			out = append(out, pi)
		}
	}
	return out
}

// unpinned returns the packages for which pinned is false, one message each.
func unpinned(in rules.Input, manager shell.PackageManager, pinned func(string) bool, format func(string) string) []string {
	var msgs []string
	for _, pi := range installs(in, manager) {
		for _, pkg := range pi.Packages {
			if !pinned(pkg) {
				msgs = append(msgs, format(pkg))
			}
		}
	}
	return msgs
}

// isRootUser reports whether a USER value (user[:group]) names root.
func isRootUser(user string) bool {
	name, _, _ := strings.Cut(strings.TrimSpace(user), ":")
	return name == "root" || name == "0"
}

// isLocalPackage reports whether a package argument is a path, archive or
// URL rather than a registry name.
func isLocalPackage(pkg string) bool {
	if strings.Contains(pkg, "://") || strings.HasPrefix(pkg, "git+") {
		return true
	}
	if strings.HasPrefix(pkg, ".") || strings.HasPrefix(pkg, "/") || strings.HasPrefix(pkg, "~") {
		return true
	}
	switch path.Ext(pkg) {
	case ".whl", ".tgz", ".gz", ".zip", ".rpm", ".deb", ".gem":
		return true
	}
	return false
}

// hasVariable reports whether s references a build variable.
func hasVariable(s string) bool {
	return strings.Contains(s, "$")
}
