package hadolint

import (
	"slices"
	"strings"

	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/shell"
)

const aptListsDir = "/var/lib/apt/lists"

// DL3009Rule implements the DL3009 linting rule.
// A RUN that installs with apt-get must also remove the apt lists, unless
// they live on a cache mount.
type DL3009Rule struct{}

// NewDL3009Rule creates a new DL3009 rule instance.
func NewDL3009Rule() *DL3009Rule {
	return &DL3009Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3009Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3009",
		"Delete the apt-get lists after installing something",
		"Package lists left in /var/lib/apt/lists bloat the image layer",
		"performance", rules.SeverityInfo)
}

// NewRun returns the per-file state of the rule.
func (r *DL3009Rule) NewRun() rules.Run {
	return rules.NewSimpleRun(r.Metadata(), func(in rules.Input) bool {
		run, ok := in.RunInstruction()
		if !ok || !anyCommand(in, isAptGetInstall) {
			return false
		}
		if hasCacheMount(run.Flags.Mounts, aptListsDir) {
			return false
		}
		return !anyCommand(in, removesAptLists)
	})
}

func isAptGetInstall(c shell.Command) bool {
	_, ok := shell.InstallPackages(c)
	return ok && c.Name == "apt-get"
}

func removesAptLists(c shell.Command) bool {
	if c.Name != "rm" {
		return false
	}
	return slices.ContainsFunc(c.ArgsNoFlags(), func(arg string) bool {
		return strings.HasPrefix(strings.Trim(arg, `"'`), aptListsDir)
	})
}

// hasCacheMount reports whether a RUN --mount=type=cache targets dir.
func hasCacheMount(mounts []string, dir string) bool {
	for _, m := range mounts {
		if !strings.Contains(m, "type=cache") {
			continue
		}
		for _, field := range strings.Split(m, ",") {
			key, value, _ := strings.Cut(field, "=")
			if (key == "target" || key == "dst" || key == "destination") && strings.HasPrefix(value, dir) {
				return true
			}
		}
	}
	return false
}

func init() {
	rules.Register(NewDL3009Rule())
}
