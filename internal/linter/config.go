package linter

import (
	"github.com/wharflab/stagelint/internal/config"
	"github.com/wharflab/stagelint/internal/rules"
)

// EnabledRules returns the rules of reg that run under cfg, in registry
// order.
func EnabledRules(reg *rules.Registry, cfg *config.Config) []rules.Rule {
	return reg.Select(func(meta rules.RuleMetadata) bool {
		return isRuleEnabled(meta, cfg)
	})
}

// EnabledRuleCodes returns the codes of EnabledRules.
func EnabledRuleCodes(reg *rules.Registry, cfg *config.Config) []string {
	enabled := EnabledRules(reg, cfg)
	codes := make([]string, 0, len(enabled))
	for _, rule := range enabled {
		codes = append(codes, rule.Metadata().Code)
	}
	return codes
}

// isRuleEnabled checks if a rule is effectively enabled based on config.
func isRuleEnabled(meta rules.RuleMetadata, cfg *config.Config) bool {
	if cfg == nil {
		return meta.EnabledByDefault
	}

	// Include/exclude patterns decide first.
	if enabled := cfg.Rules.IsEnabled(meta.Code); enabled != nil {
		return *enabled
	}

	// An explicit severity turns the rule on, unless it is "off".
	if sev := cfg.Rules.GetSeverity(meta.Code); sev != "" {
		parsed, err := rules.ParseSeverity(sev)
		return err != nil || parsed != rules.SeverityIgnore
	}

	return meta.EnabledByDefault
}
