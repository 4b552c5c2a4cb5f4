package hadolint

import (
	"strings"

	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/shell"
)

const pipCacheDir = "/root/.cache/pip"

// DL3042Rule implements the DL3042 linting rule.
//
// PIP_NO_CACHE_DIR set by ENV or ARG earlier in the stage disables the cache
// as well as the flag does, and so does a cache mount on pip's cache dir.
type DL3042Rule struct{}

// NewDL3042Rule creates a new DL3042 rule instance.
func NewDL3042Rule() *DL3042Rule {
	return &DL3042Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3042Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3042",
		"Avoid use of cache directory with pip. Use `pip install --no-cache-dir <package>`",
		"pip keeps downloaded wheels in the layer unless the cache is disabled",
		"performance", rules.SeverityWarning)
}

// NewRun returns the per-file state of the rule.
func (r *DL3042Rule) NewRun() rules.Run {
	meta := r.Metadata()
	return rules.NewStatefulRun(meta, rules.ScopeStage,
		func() bool { return false },
		func(st *rules.State[bool], in rules.Input) {
			switch inst := in.Instruction.(type) {
			case dockerfile.Env:
				for _, kv := range inst.Pairs {
					if kv.Key == "PIP_NO_CACHE_DIR" {
						st.Data = pipCacheDisabled(kv.Value)
					}
				}
				return
			case dockerfile.Arg:
				if inst.Name == "PIP_NO_CACHE_DIR" && inst.HasDefault {
					st.Data = pipCacheDisabled(inst.Default)
				}
				return
			}
			if st.Data {
				return
			}
			run, ok := in.RunInstruction()
			if !ok || hasCacheMount(run.Flags.Mounts, pipCacheDir) {
				return
			}
			for _, pi := range installs(in, shell.PackageManagerPip) {
				if !pi.Command.HasFlag("no-cache-dir") {
					st.Fail(in.Line, meta.Name)
					return
				}
			}
		},
	)
}

// pipCacheDisabled reports whether a PIP_NO_CACHE_DIR value turns the cache
// off. pip reads any value but an explicit false as true.
func pipCacheDisabled(value string) bool {
	switch strings.ToLower(strings.Trim(value, `"'`)) {
	case "", "0", "false", "no", "off":
		return false
	}
	return true
}

func init() {
	rules.Register(NewDL3042Rule())
}
