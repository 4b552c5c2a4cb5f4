package processor

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/wharflab/stagelint/internal/rules"
)

// PathExclusionFilter removes violations based on per-rule path exclusions
// ([rules.DLxxxx] exclude-paths).
type PathExclusionFilter struct{}

// NewPathExclusionFilter creates a new path exclusion filter processor.
func NewPathExclusionFilter() *PathExclusionFilter {
	return &PathExclusionFilter{}
}

// Name returns the processor's identifier.
func (p *PathExclusionFilter) Name() string {
	return "path-exclusion-filter"
}

// Process filters out violations for files that match exclusion patterns.
func (p *PathExclusionFilter) Process(violations []rules.Violation, ctx *Context) []rules.Violation {
	rc := ctx.rulesConfig()
	if rc == nil {
		return violations
	}
	return filterViolations(violations, func(v rules.Violation) bool {
		for _, pattern := range rc.GetExcludePaths(v.RuleCode) {
			matched, err := doublestar.Match(pattern, filepath.ToSlash(v.File()))
			if err != nil {
				continue
			}
			if matched {
				return false
			}
		}
		return true
	})
}
