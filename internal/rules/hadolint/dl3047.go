package hadolint

import (
	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/shell"
)

// DL3047Rule implements the DL3047 linting rule.
type DL3047Rule struct{}

// NewDL3047Rule creates a new DL3047 rule instance.
func NewDL3047Rule() *DL3047Rule {
	return &DL3047Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3047Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3047",
		"Avoid use of wget without progress bar. Use `wget --progress=dot:giga <url>`. "+
			"Or consider using `-q` or `-nv` (shorthands for `--quiet` or `--no-verbose`).",
		"wget's default progress output floods build logs",
		"best-practice", rules.SeverityInfo)
}

// NewRun returns the per-file state of the rule.
func (r *DL3047Rule) NewRun() rules.Run {
	return rules.NewSimpleRun(r.Metadata(), func(in rules.Input) bool {
		return anyCommand(in, func(c shell.Command) bool {
			return c.Name == "wget" && !wgetHasProgressSuppression(c)
		})
	})
}

func wgetHasProgressSuppression(c shell.Command) bool {
	if c.HasAnyFlag("progress", "q", "quiet", "no-verbose") {
		return true
	}
	// -nv is a two-letter short option, not the combination of -n and -v.
	if c.HasArg("-nv") {
		return true
	}
	return c.HasAnyFlag("o", "output-file", "a", "append-output")
}

func init() {
	rules.Register(NewDL3047Rule())
}
