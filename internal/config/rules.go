package config

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// RuleConfig represents per-rule configuration.
// Can be specified in TOML as:
//
//	[rules.DL3059]
//	severity = "style"
//	exclude-paths = ["legacy/**"]
type RuleConfig struct {
	// Severity overrides the rule's default severity.
	// Use "ignore" (or "off") to disable the rule.
	Severity string `json:"severity,omitempty" koanf:"severity"`

	// ExcludePaths contains glob patterns for files where this rule is
	// not reported.
	ExcludePaths []string `json:"exclude-paths,omitempty" koanf:"exclude-paths"`
}

// RulesConfig contains rule selection and per-rule configuration.
//
// Example TOML:
//
//	[rules]
//	include = ["DL3*"]
//	exclude = ["DL3008"]
//
//	[rules.DL3059]
//	severity = "style"
type RulesConfig struct {
	// Include explicitly enables rules by glob pattern.
	Include []string `json:"include,omitempty" koanf:"include"`

	// Exclude explicitly disables rules by glob pattern.
	Exclude []string `json:"exclude,omitempty" koanf:"exclude"`

	// PerRule maps upper-cased rule codes to their configuration.
	PerRule map[string]RuleConfig `json:"per-rule,omitempty" koanf:"-"`
}

// Get returns the configuration for a specific rule.
// Returns nil if no configuration exists for the rule.
func (rc *RulesConfig) Get(ruleCode string) *RuleConfig {
	if rc == nil {
		return nil
	}
	if cfg, ok := rc.PerRule[strings.ToUpper(ruleCode)]; ok {
		return &cfg
	}
	return nil
}

// Set stores configuration for a rule.
func (rc *RulesConfig) Set(ruleCode string, cfg RuleConfig) {
	if rc.PerRule == nil {
		rc.PerRule = make(map[string]RuleConfig)
	}
	rc.PerRule[strings.ToUpper(ruleCode)] = cfg
}

// IsEnabled checks if a rule is enabled based on Include/Exclude patterns.
// Returns nil if no configuration specifies enabled/disabled (use rule default).
// Include takes precedence over Exclude.
func (rc *RulesConfig) IsEnabled(ruleCode string) *bool {
	if rc == nil {
		return nil
	}

	if matchesAnyPattern(ruleCode, rc.Include) {
		return boolPtr(true)
	}

	if matchesAnyPattern(ruleCode, rc.Exclude) {
		return boolPtr(false)
	}

	return nil
}

// matchesAnyPattern checks if ruleCode matches any pattern in the list.
// Patterns are doublestar globs matched case-insensitively: "DL3008",
// "DL30*", "SC*" or "*".
func matchesAnyPattern(ruleCode string, patterns []string) bool {
	code := strings.ToUpper(ruleCode)
	for _, pattern := range patterns {
		matched, err := doublestar.Match(strings.ToUpper(pattern), code)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// GetSeverity returns the severity override for a rule.
// Returns empty string if no override is configured.
func (rc *RulesConfig) GetSeverity(ruleCode string) string {
	if cfg := rc.Get(ruleCode); cfg != nil {
		return cfg.Severity
	}
	return ""
}

// GetExcludePaths returns the path exclusion patterns for a rule.
func (rc *RulesConfig) GetExcludePaths(ruleCode string) []string {
	cfg := rc.Get(ruleCode)
	if cfg == nil || cfg.ExcludePaths == nil {
		return nil
	}
	out := make([]string, len(cfg.ExcludePaths))
	copy(out, cfg.ExcludePaths)
	return out
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}
