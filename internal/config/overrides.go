package config

import (
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
)

// LoadWithOverrides loads configuration for a target file path with an
// overrides map applied last.
//
// configPath, when non-empty, is used instead of discovery. Overrides use
// the same (nested) shape as the TOML config file, for example:
//
//	overrides := map[string]any{
//	  "output": map[string]any{"format": "json"},
//	  "rules":  map[string]any{"exclude": []any{"DL3008"}},
//	}
//
// Precedence: defaults → config file → env → overrides.
func LoadWithOverrides(targetPath, configPath string, overrides map[string]any) (*Config, error) {
	if configPath == "" {
		configPath = Discover(targetPath)
	}
	return loadWithConfigPath(configPath, overrides)
}

func loadOverrides(k *koanf.Koanf, overrides map[string]any) error {
	if len(overrides) == 0 {
		return nil
	}
	return k.Load(confmap.Provider(overrides, ""), nil)
}
