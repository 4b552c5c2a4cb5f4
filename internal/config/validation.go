package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"

	"github.com/wharflab/stagelint/internal/rules"
)

// Formats lists the supported output formats.
var Formats = []string{"text", "json", "sarif", "codeclimate", "github-actions", "checkstyle"}

func decodeConfig(k *koanf.Koanf) (*Config, error) {
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	rulesCfg, err := decodeRulesConfig(k.Raw())
	if err != nil {
		return nil, err
	}
	cfg.Rules = rulesCfg

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeRulesConfig splits the [rules] table into the selection lists and
// the per-code tables.
func decodeRulesConfig(raw map[string]any) (RulesConfig, error) {
	var rc RulesConfig
	rulesRaw, ok := raw["rules"].(map[string]any)
	if !ok {
		return rc, nil
	}

	normalized := koanf.New(".")
	if err := normalized.Load(confmap.Provider(rulesRaw, ""), nil); err != nil {
		return rc, fmt.Errorf("load rule config: %w", err)
	}

	rc.Include = normalized.Strings("include")
	rc.Exclude = normalized.Strings("exclude")

	for key, entry := range rulesRaw {
		if key == "include" || key == "exclude" {
			continue
		}
		if _, ok := entry.(map[string]any); !ok {
			return rc, fmt.Errorf("rules.%s: expected a table, got %T", key, entry)
		}
		var ruleCfg RuleConfig
		if err := normalized.Unmarshal(key, &ruleCfg); err != nil {
			return rc, fmt.Errorf("decode rules.%s: %w", key, err)
		}
		rc.Set(key, ruleCfg)
	}
	return rc, nil
}

// Validate checks values that koanf cannot type-check.
func (c *Config) Validate() error {
	var errs []error

	if _, err := rules.ParseSeverity(c.FailureThreshold); err != nil {
		errs = append(errs, fmt.Errorf("failure-threshold: %w", err))
	}

	if !slices.Contains(Formats, c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format: unknown format %q (want one of %s)",
			c.Output.Format, strings.Join(Formats, ", ")))
	}

	if c.FileValidation.MaxFileSize < 0 {
		errs = append(errs, fmt.Errorf("file-validation.max-file-size: must not be negative, got %d",
			c.FileValidation.MaxFileSize))
	}

	for _, p := range append(slices.Clone(c.Rules.Include), c.Rules.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			errs = append(errs, fmt.Errorf("rules: invalid pattern %q", p))
		}
	}

	codes := make([]string, 0, len(c.Rules.PerRule))
	for code := range c.Rules.PerRule {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	for _, code := range codes {
		rc := c.Rules.PerRule[code]
		if rc.Severity != "" {
			if _, err := rules.ParseSeverity(rc.Severity); err != nil {
				errs = append(errs, fmt.Errorf("rules.%s.severity: %w", code, err))
			}
		}
		for _, p := range rc.ExcludePaths {
			if !doublestar.ValidatePattern(p) {
				errs = append(errs, fmt.Errorf("rules.%s.exclude-paths: invalid pattern %q", code, p))
			}
		}
	}

	return errors.Join(errs...)
}
