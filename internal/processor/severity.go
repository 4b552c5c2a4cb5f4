package processor

import (
	"github.com/sirupsen/logrus"

	"github.com/wharflab/stagelint/internal/rules"
)

// SeverityOverride applies severity overrides from configuration.
// Allows users to downgrade warnings to info, upgrade info to errors, or
// silence a rule with "ignore".
type SeverityOverride struct{}

// NewSeverityOverride creates a new severity override processor.
func NewSeverityOverride() *SeverityOverride {
	return &SeverityOverride{}
}

// Name returns the processor's identifier.
func (p *SeverityOverride) Name() string {
	return "severity-override"
}

// Process applies severity overrides from config.
func (p *SeverityOverride) Process(violations []rules.Violation, ctx *Context) []rules.Violation {
	rc := ctx.rulesConfig()
	if rc == nil {
		return violations
	}
	return transformViolations(violations, func(v rules.Violation) rules.Violation {
		override := rc.GetSeverity(v.RuleCode)
		if override == "" {
			return v
		}
		sev, err := rules.ParseSeverity(override)
		if err != nil {
			// Validated at load time; keep the original if it slipped through.
			logrus.WithField("rule", v.RuleCode).WithError(err).Debug("ignoring severity override")
			return v
		}
		v.Severity = sev
		return v
	})
}
