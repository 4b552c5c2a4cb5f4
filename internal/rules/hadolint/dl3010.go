package hadolint

import (
	"path"
	"strings"

	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/shell"
)

var extractionCommands = []string{
	"unzip", "gunzip", "bunzip2", "unlzma", "unxz", "zgz", "uncompress", "zcat", "gzcat",
}

// DL3010Rule implements the DL3010 linting rule.
//
// An archive copied from the build context and extracted by a later RUN of
// the same stage is reported on the COPY line, once.
type DL3010Rule struct{}

// NewDL3010Rule creates a new DL3010 rule instance.
func NewDL3010Rule() *DL3010Rule {
	return &DL3010Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3010Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3010",
		"Use ADD for extracting archives into an image",
		"COPY followed by RUN tar keeps the archive in an extra layer; ADD extracts it directly",
		"performance", rules.SeverityInfo)
}

type copiedArchive struct {
	line     int
	basename string
}

// NewRun returns the per-file state of the rule.
func (r *DL3010Rule) NewRun() rules.Run {
	meta := r.Metadata()
	return rules.NewStatefulRun(meta, rules.ScopeStage,
		func() []copiedArchive { return nil },
		func(st *rules.State[[]copiedArchive], in rules.Input) {
			if cp, ok := in.Instruction.(dockerfile.Copy); ok {
				st.Data = collectCopiedArchives(cp, in.Line, st.Data)
				return
			}
			if len(st.Data) == 0 {
				return
			}
			extracted := extractedNames(runCommands(in))
			if len(extracted) == 0 {
				return
			}
			remaining := st.Data[:0]
			for _, arch := range st.Data {
				if extracted[arch.basename] {
					st.Fail(arch.line, meta.Name)
					continue
				}
				remaining = append(remaining, arch)
			}
			st.Data = remaining
		},
	)
}

func collectCopiedArchives(cp dockerfile.Copy, line int, archives []copiedArchive) []copiedArchive {
	if cp.Flags.From != "" {
		return archives
	}
	if base := basename(cp.Dest); isArchive(base) {
		return append(archives, copiedArchive{line: line, basename: base})
	}
	for _, src := range cp.Sources {
		if base := basename(src); isArchive(base) {
			archives = append(archives, copiedArchive{line: line, basename: base})
		}
	}
	return archives
}

// extractedNames returns the basenames of every file argument given to an
// extracting command.
func extractedNames(cmds []shell.Command) map[string]bool {
	names := map[string]bool{}
	for _, c := range cmds {
		isUnpacker := false
		for _, name := range extractionCommands {
			if c.Name == name {
				isUnpacker = true
				break
			}
		}
		if !isUnpacker && !isTarExtract(c) {
			continue
		}
		for _, arg := range c.ArgsNoFlags() {
			names[basename(arg)] = true
		}
	}
	return names
}

// isTarExtract reports whether c is "tar -x", "tar --extract" or the
// old-style "tar xzf".
func isTarExtract(c shell.Command) bool {
	if c.Name != "tar" {
		return false
	}
	if c.HasAnyFlag("x", "extract", "get") {
		return true
	}
	if len(c.Args) > 0 && !strings.HasPrefix(c.Args[0], "-") {
		return strings.Contains(c.Args[0], "x")
	}
	return false
}

func basename(p string) string {
	return path.Base(strings.Trim(p, `"'`))
}

func init() {
	rules.Register(NewDL3010Rule())
}
