package processor

import (
	"github.com/wharflab/stagelint/internal/rules"
)

// EnableFilter removes violations for disabled rules: severity "ignore"
// (after SeverityOverride has run) or an explicit exclude pattern.
//
// DL rules are also deselected before they run; this pass is what keeps
// excluded SC findings out of the result.
type EnableFilter struct{}

// NewEnableFilter creates a new enable filter processor.
func NewEnableFilter() *EnableFilter {
	return &EnableFilter{}
}

// Name returns the processor's identifier.
func (p *EnableFilter) Name() string {
	return "enable-filter"
}

// Process filters out violations for disabled rules.
func (p *EnableFilter) Process(violations []rules.Violation, ctx *Context) []rules.Violation {
	rc := ctx.rulesConfig()
	return filterViolations(violations, func(v rules.Violation) bool {
		if v.Severity == rules.SeverityIgnore {
			return false
		}
		if enabled := rc.IsEnabled(v.RuleCode); enabled != nil {
			return *enabled
		}
		return true
	})
}
