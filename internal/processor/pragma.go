package processor

import (
	"github.com/sirupsen/logrus"

	"github.com/wharflab/stagelint/internal/directive"
	"github.com/wharflab/stagelint/internal/rules"
)

// PragmaFilter drops violations suppressed by "# hadolint ignore=" and
// "# hadolint global ignore=" comments. It is a no-op when the config sets
// disable-ignore-pragma.
type PragmaFilter struct {
	suppressed int
}

// NewPragmaFilter creates a new pragma filter processor.
func NewPragmaFilter() *PragmaFilter {
	return &PragmaFilter{}
}

// Name returns the processor's identifier.
func (p *PragmaFilter) Name() string {
	return "pragma-filter"
}

// Suppressed returns how many violations the last runs removed.
func (p *PragmaFilter) Suppressed() int {
	return p.suppressed
}

// Process removes pragma-ignored violations, keeping the order of the rest
// within each file.
func (p *PragmaFilter) Process(violations []rules.Violation, ctx *Context) []rules.Violation {
	if ctx == nil || (ctx.Config != nil && ctx.Config.DisableIgnorePragma) {
		return violations
	}

	var files []string
	byFile := make(map[string][]rules.Violation)
	for _, v := range violations {
		if _, seen := byFile[v.File()]; !seen {
			files = append(files, v.File())
		}
		byFile[v.File()] = append(byFile[v.File()], v)
	}

	result := make([]rules.Violation, 0, len(violations))
	for _, file := range files {
		filtered := directive.Filter(byFile[file], ctx.Pragmas[file])
		p.suppressed += len(filtered.Suppressed)
		for _, d := range filtered.UnusedDirectives {
			logrus.WithFields(logrus.Fields{
				"file": file,
				"line": d.Line,
			}).Debugf("pragma %q suppressed nothing", d.RawText)
		}
		result = append(result, filtered.Violations...)
	}
	return result
}
