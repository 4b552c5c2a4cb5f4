// Package config provides configuration loading and discovery for stagelint.
//
// Configuration is loaded from multiple sources with the following priority
// (highest to lowest):
//  1. CLI flags
//  2. Environment variables (STAGELINT_* prefix)
//  3. Config file (closest .stagelint.toml or stagelint.toml)
//  4. Built-in defaults
//
// Config file discovery starts from the target file's directory and walks up
// the filesystem until a config file is found. The closest config wins (no
// merging).
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigFileNames defines the config file names to search for, in priority order.
var ConfigFileNames = []string{".stagelint.toml", "stagelint.toml"}

// EnvPrefix is the prefix for environment variables.
const EnvPrefix = "STAGELINT_"

// Config represents the complete stagelint configuration.
type Config struct {
	// DisableIgnorePragma turns off "# hadolint ignore=" processing.
	DisableIgnorePragma bool `json:"disable-ignore-pragma" koanf:"disable-ignore-pragma"`

	// FailureThreshold is the lowest severity that makes the CLI exit with 1.
	FailureThreshold string `json:"failure-threshold" koanf:"failure-threshold"`

	// Rules contains rule selection and per-rule configuration.
	// Decoded separately from the rest (see decodeRulesConfig).
	Rules RulesConfig `json:"rules" koanf:"-"`

	// Shellcheck configures the external shell analyzer hook.
	Shellcheck ShellcheckConfig `json:"shellcheck" koanf:"shellcheck"`

	// Output configures output format and destination.
	Output OutputConfig `json:"output" koanf:"output"`

	// FileValidation configures pre-parse file validation checks.
	FileValidation FileValidationConfig `json:"file-validation" koanf:"file-validation"`

	// ConfigFile is the path to the config file that was loaded (if any).
	// This is metadata, not loaded from config.
	ConfigFile string `json:"-" koanf:"-"`
}

// ShellcheckConfig configures the optional shellcheck subprocess.
//
// Example TOML configuration:
//
//	[shellcheck]
//	enabled = true
//	path = "/usr/local/bin/shellcheck"
type ShellcheckConfig struct {
	Enabled bool   `json:"enabled" koanf:"enabled"`
	Path    string `json:"path,omitempty" koanf:"path"`
}

// FileValidationConfig configures pre-parse file validation checks.
//
// Example TOML configuration:
//
//	[file-validation]
//	max-file-size = 102400
type FileValidationConfig struct {
	// MaxFileSize is the maximum file size in bytes (0 = unlimited).
	MaxFileSize int64 `json:"max-file-size,omitempty" koanf:"max-file-size"`
}

// OutputConfig configures output formatting and behavior.
type OutputConfig struct {
	// Format specifies the output format.
	Format string `json:"format,omitempty" koanf:"format"`

	// Path specifies where to write output.
	Path string `json:"path,omitempty" koanf:"path"`

	// NoColor disables colored text output.
	NoColor bool `json:"no-color,omitempty" koanf:"no-color"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		FailureThreshold: "info",
		Shellcheck: ShellcheckConfig{
			Path: "shellcheck",
		},
		Output: OutputConfig{
			Format: "text",
			Path:   "stdout",
		},
		FileValidation: FileValidationConfig{
			MaxFileSize: 100 * 1024, // 100 KB
		},
	}
}

// Load loads configuration for a target file path.
// It discovers the closest config file, loads it, and applies
// environment variable overrides.
func Load(targetPath string) (*Config, error) {
	return loadWithConfigPath(Discover(targetPath), nil)
}

// LoadFromFile loads configuration from a specific config file path.
// Unlike Load, it does not perform config discovery.
func LoadFromFile(configPath string) (*Config, error) {
	return loadWithConfigPath(configPath, nil)
}

// loadWithConfigPath loads defaults, the config file (if any), the
// environment and finally overrides.
func loadWithConfigPath(configPath string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, err
	}

	// 2. Load config file if provided
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, err
		}
	}

	// 3. Load environment variables (STAGELINT_* prefix)
	// STAGELINT_RULES_DL3059_SEVERITY -> rules.dl3059.severity
	if err := loadEnv(k); err != nil {
		return nil, err
	}

	// 4. CLI overrides
	if err := loadOverrides(k, overrides); err != nil {
		return nil, err
	}

	cfg, err := decodeConfig(k)
	if err != nil {
		return nil, err
	}

	cfg.ConfigFile = configPath
	return cfg, nil
}

func loadEnv(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKeyTransform,
	}), nil)
}

// knownHyphenatedKeys maps dot-separated patterns to their hyphenated
// equivalents. Add new entries here when adding hyphenated keys.
var knownHyphenatedKeys = [][2]string{
	{"disable.ignore.pragma", "disable-ignore-pragma"},
	{"failure.threshold", "failure-threshold"},
	{"no.color", "no-color"},
	{"file.validation", "file-validation"},
	{"max.file.size", "max-file-size"},
	{"exclude.paths", "exclude-paths"},
}

var allowedEnvTopLevelKeys = map[string]struct{}{
	"disable-ignore-pragma": {},
	"failure-threshold":     {},
	"rules":                 {},
	"shellcheck":            {},
	"output":                {},
	"file-validation":       {},
}

// envKeyTransform converts environment variable names to config keys.
// STAGELINT_OUTPUT_FORMAT -> output.format
// STAGELINT_RULES_EXCLUDE="DL3008,DL3009" -> rules.exclude = [DL3008 DL3009]
func envKeyTransform(k, v string) (string, any) {
	s := strings.TrimPrefix(k, EnvPrefix)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", ".")
	for _, kv := range knownHyphenatedKeys {
		s = strings.ReplaceAll(s, kv[0], kv[1])
	}

	topLevel := s
	if before, _, ok := strings.Cut(s, "."); ok {
		topLevel = before
	}
	if _, ok := allowedEnvTopLevelKeys[topLevel]; !ok {
		return "", nil
	}

	if s == "rules.include" || s == "rules.exclude" || strings.HasSuffix(s, ".exclude-paths") {
		return s, splitList(v)
	}
	return s, v
}

// splitList splits a comma or whitespace separated list.
func splitList(v string) []any {
	fields := strings.FieldsFunc(v, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	out := make([]any, len(fields))
	for i, f := range fields {
		out[i] = f
	}
	return out
}

// Discover finds the closest config file for a target file path.
// It walks up the directory tree from the target's directory,
// checking for config files at each level.
// Returns empty string if no config file is found.
func Discover(targetPath string) string {
	absPath, err := filepath.Abs(targetPath)
	if err != nil {
		return ""
	}

	dir := filepath.Dir(absPath)
	if info, err := os.Stat(absPath); err == nil && info.IsDir() {
		dir = absPath
	}

	for {
		for _, name := range ConfigFileNames {
			configPath := filepath.Join(dir, name)
			if fileExists(configPath) {
				return configPath
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return ""
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
