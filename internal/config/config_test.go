package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Output.Format != "text" {
		t.Errorf("Default format = %q, want %q", cfg.Output.Format, "text")
	}
	if cfg.FailureThreshold != "info" {
		t.Errorf("Default failure-threshold = %q, want %q", cfg.FailureThreshold, "info")
	}
	if cfg.FileValidation.MaxFileSize != 100*1024 {
		t.Errorf("Default max-file-size = %d", cfg.FileValidation.MaxFileSize)
	}
	if cfg.Shellcheck.Enabled {
		t.Error("shellcheck should be disabled by default")
	}
	require.NoError(t, cfg.Validate())
}

func TestDiscover(t *testing.T) {
	tmpDir := t.TempDir()

	subDir := filepath.Join(tmpDir, "project", "src")
	if err := os.MkdirAll(subDir, 0o750); err != nil {
		t.Fatal(err)
	}

	dockerfilePath := filepath.Join(subDir, "Dockerfile")
	if err := os.WriteFile(dockerfilePath, []byte("FROM alpine"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Run("no config file", func(t *testing.T) {
		result := Discover(dockerfilePath)
		if result != "" {
			t.Errorf("Discover() = %q, want empty string", result)
		}
	})

	t.Run("config in same directory", func(t *testing.T) {
		configPath := filepath.Join(subDir, ".stagelint.toml")
		if err := os.WriteFile(configPath, []byte("failure-threshold = \"error\""), 0o600); err != nil {
			t.Fatal(err)
		}
		defer os.Remove(configPath)

		result := Discover(dockerfilePath)
		if result != configPath {
			t.Errorf("Discover() = %q, want %q", result, configPath)
		}
	})

	t.Run("config in parent directory", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "project", "stagelint.toml")
		if err := os.WriteFile(configPath, []byte("failure-threshold = \"error\""), 0o600); err != nil {
			t.Fatal(err)
		}
		defer os.Remove(configPath)

		result := Discover(dockerfilePath)
		if result != configPath {
			t.Errorf("Discover() = %q, want %q", result, configPath)
		}
	})

	t.Run("directory target", func(t *testing.T) {
		configPath := filepath.Join(subDir, "stagelint.toml")
		if err := os.WriteFile(configPath, []byte("# src"), 0o600); err != nil {
			t.Fatal(err)
		}
		defer os.Remove(configPath)

		result := Discover(subDir)
		if result != configPath {
			t.Errorf("Discover() = %q, want %q", result, configPath)
		}
	})

	t.Run("prefers .stagelint.toml over stagelint.toml", func(t *testing.T) {
		hiddenConfig := filepath.Join(subDir, ".stagelint.toml")
		visibleConfig := filepath.Join(subDir, "stagelint.toml")

		if err := os.WriteFile(hiddenConfig, []byte("# hidden"), 0o600); err != nil {
			t.Fatal(err)
		}
		defer os.Remove(hiddenConfig)

		if err := os.WriteFile(visibleConfig, []byte("# visible"), 0o600); err != nil {
			t.Fatal(err)
		}
		defer os.Remove(visibleConfig)

		result := Discover(dockerfilePath)
		if result != hiddenConfig {
			t.Errorf("Discover() = %q, want %q (should prefer .stagelint.toml)", result, hiddenConfig)
		}
	})

	t.Run("closer config wins", func(t *testing.T) {
		rootConfig := filepath.Join(tmpDir, "project", "stagelint.toml")
		if err := os.WriteFile(rootConfig, []byte("# root"), 0o600); err != nil {
			t.Fatal(err)
		}
		defer os.Remove(rootConfig)

		srcConfig := filepath.Join(subDir, "stagelint.toml")
		if err := os.WriteFile(srcConfig, []byte("# src"), 0o600); err != nil {
			t.Fatal(err)
		}
		defer os.Remove(srcConfig)

		result := Discover(dockerfilePath)
		if result != srcConfig {
			t.Errorf("Discover() = %q, want %q (closer config should win)", result, srcConfig)
		}
	})
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	dockerfilePath := filepath.Join(tmpDir, "Dockerfile")
	if err := os.WriteFile(dockerfilePath, []byte("FROM alpine"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Run("loads defaults when no config", func(t *testing.T) {
		cfg, err := Load(dockerfilePath)
		require.NoError(t, err)
		assert.Equal(t, "text", cfg.Output.Format)
		assert.Empty(t, cfg.ConfigFile)
	})

	t.Run("loads config file", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, ".stagelint.toml")
		configContent := `
disable-ignore-pragma = true
failure-threshold = "warning"

[rules]
include = ["DL3059"]
exclude = ["DL30*"]

[rules.DL3059]
severity = "style"

[rules.dl4000]
severity = "off"
exclude-paths = ["legacy/**"]

[shellcheck]
enabled = true

[output]
format = "json"
no-color = true
`
		require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o600))
		defer os.Remove(configPath)

		cfg, err := Load(dockerfilePath)
		require.NoError(t, err)

		assert.True(t, cfg.DisableIgnorePragma)
		assert.Equal(t, "warning", cfg.FailureThreshold)
		assert.Equal(t, []string{"DL3059"}, cfg.Rules.Include)
		assert.Equal(t, []string{"DL30*"}, cfg.Rules.Exclude)
		assert.Equal(t, "style", cfg.Rules.GetSeverity("DL3059"))
		assert.Equal(t, "off", cfg.Rules.GetSeverity("DL4000"))
		assert.Equal(t, []string{"legacy/**"}, cfg.Rules.GetExcludePaths("DL4000"))
		assert.True(t, cfg.Shellcheck.Enabled)
		assert.Equal(t, "shellcheck", cfg.Shellcheck.Path, "defaults survive partial tables")
		assert.Equal(t, "json", cfg.Output.Format)
		assert.True(t, cfg.Output.NoColor)
		assert.Equal(t, configPath, cfg.ConfigFile)
	})

	t.Run("environment variables override config", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, ".stagelint.toml")
		configContent := `
[output]
format = "json"
`
		require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o600))
		defer os.Remove(configPath)

		t.Setenv("STAGELINT_OUTPUT_FORMAT", "sarif")
		t.Setenv("STAGELINT_RULES_EXCLUDE", "DL3008, DL3009")
		t.Setenv("STAGELINT_RULES_DL3059_SEVERITY", "info")
		t.Setenv("STAGELINT_FILE_VALIDATION_MAX_FILE_SIZE", "2048")
		t.Setenv("STAGELINT_UNRELATED", "x")

		cfg, err := Load(dockerfilePath)
		require.NoError(t, err)

		assert.Equal(t, "sarif", cfg.Output.Format)
		assert.Equal(t, []string{"DL3008", "DL3009"}, cfg.Rules.Exclude)
		assert.Equal(t, "info", cfg.Rules.GetSeverity("DL3059"))
		assert.Equal(t, int64(2048), cfg.FileValidation.MaxFileSize)
	})

	t.Run("overrides win", func(t *testing.T) {
		cfg, err := LoadWithOverrides(dockerfilePath, "", map[string]any{
			"output": map[string]any{"format": "checkstyle"},
		})
		require.NoError(t, err)
		assert.Equal(t, "checkstyle", cfg.Output.Format)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "broken.toml")
		configContent := `
failure-threshold = "fatal"

[rules.DL3008]
severity = "loud"

[output]
format = "xml"
`
		require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o600))

		_, err := LoadFromFile(configPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failure-threshold")
		assert.Contains(t, err.Error(), "rules.DL3008.severity")
		assert.Contains(t, err.Error(), "output.format")
	})
}

func TestEnvKeyTransform(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"STAGELINT_OUTPUT_FORMAT", "output.format"},
		{"STAGELINT_OUTPUT_NO_COLOR", "output.no-color"},
		{"STAGELINT_DISABLE_IGNORE_PRAGMA", "disable-ignore-pragma"},
		{"STAGELINT_FAILURE_THRESHOLD", "failure-threshold"},
		{"STAGELINT_FILE_VALIDATION_MAX_FILE_SIZE", "file-validation.max-file-size"},
		{"STAGELINT_RULES_DL3059_SEVERITY", "rules.dl3059.severity"},
		{"STAGELINT_SHELLCHECK_ENABLED", "shellcheck.enabled"},
		{"STAGELINT_SOMETHING_ELSE", ""},
	}

	for _, tt := range tests {
		got, _ := envKeyTransform(tt.input, "v")
		if got != tt.want {
			t.Errorf("envKeyTransform(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRulesConfig_IsEnabled(t *testing.T) {
	t.Parallel()

	rc := &RulesConfig{
		Include: []string{"DL3059", "sc2*"},
		Exclude: []string{"DL30*", "DL4000"},
	}

	tests := []struct {
		code string
		want *bool
	}{
		{"DL3059", boolPtr(true)},
		{"SC2086", boolPtr(true)},
		{"DL3008", boolPtr(false)},
		{"dl4000", boolPtr(false)},
		{"DL4001", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rc.IsEnabled(tt.code), tt.code)
	}

	var nilRC *RulesConfig
	assert.Nil(t, nilRC.IsEnabled("DL3008"))
	assert.Empty(t, nilRC.GetSeverity("DL3008"))
}
