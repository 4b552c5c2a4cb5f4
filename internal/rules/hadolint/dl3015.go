package hadolint

import (
	"strings"

	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/shell"
)

// DL3015Rule implements the DL3015 linting rule.
type DL3015Rule struct{}

// NewDL3015Rule creates a new DL3015 rule instance.
func NewDL3015Rule() *DL3015Rule {
	return &DL3015Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3015Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3015",
		"Avoid additional packages by specifying `--no-install-recommends`",
		"Recommended packages are rarely needed in an image and increase its size",
		"performance", rules.SeverityInfo)
}

// NewRun returns the per-file state of the rule.
func (r *DL3015Rule) NewRun() rules.Run {
	return rules.NewSimpleRun(r.Metadata(), func(in rules.Input) bool {
		return anyCommand(in, func(c shell.Command) bool {
			return isAptGetInstall(c) && !skipsRecommends(c)
		})
	})
}

func skipsRecommends(c shell.Command) bool {
	if c.HasFlag("no-install-recommends") {
		return true
	}
	for _, arg := range c.Args {
		if strings.Contains(arg, "APT::Install-Recommends=false") || strings.Contains(arg, "APT::Install-Recommends=0") {
			return true
		}
	}
	return false
}

func init() {
	rules.Register(NewDL3015Rule())
}
