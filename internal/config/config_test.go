package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(LoadOptions{Path: filepath.Join(t.TempDir(), "missing.json")})
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.Timeout)
	assert.Equal(t, "openai-pass", cfg.UserAgent)
	assert.Equal(t, OutputJSON, cfg.Output)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, filepath.Join(Dir, "history.db"), cfg.History.Path)
}

func TestLoad_RequiredFileMissing(t *testing.T) {
	_, err := Load(LoadOptions{Path: filepath.Join(t.TempDir(), "missing.json"), Required: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_ReadsFile(t *testing.T) {
	path := writeConfig(t, `{
		"timeout": "90s",
		"output": "env",
		"history": {"enabled": false, "path": "custom.db"}
	}`)

	cfg, err := Load(LoadOptions{Path: path, Required: true})
	require.NoError(t, err)

	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, OutputEnv, cfg.Output)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "custom.db", cfg.History.Path)
	assert.Equal(t, "openai-pass", cfg.UserAgent)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `{"output": "json"}`)
	t.Setenv("OPENAI_PASS_OUTPUT", "yaml")
	t.Setenv("OPENAI_PASS_TIMEOUT", "2m")
	t.Setenv("OPENAI_PASS_HISTORY_ENABLED", "false")

	cfg, err := Load(LoadOptions{Path: path})
	require.NoError(t, err)

	assert.Equal(t, OutputYAML, cfg.Output)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.False(t, cfg.History.Enabled)
}

func TestLoad_RejectsInvalidEnvironmentOutput(t *testing.T) {
	t.Setenv("OPENAI_PASS_OUTPUT", "xml")

	_, err := Load(LoadOptions{Path: filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output must be one of")
}

func TestLoad_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "unknown key", content: `{"provider": "https://example.com"}`, field: "(root)"},
		{name: "bad output", content: `{"output": "xml"}`, field: "output"},
		{name: "bad timeout", content: `{"timeout": "soon"}`, field: "timeout"},
		{name: "numeric timeout", content: `{"timeout": 30}`, field: "timeout"},
		{name: "empty history path", content: `{"history": {"path": ""}}`, field: "history.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(LoadOptions{Path: writeConfig(t, tt.content), Required: true})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid openai-pass config: ")
			assert.Contains(t, err.Error(), tt.field+": ")
		})
	}
}

func TestValidateSettings_AcceptsZeroTimeout(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateSettings(map[string]any{"timeout": "0"}))
}

func TestLoadDotEnv(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("OPENAI_PASS_DOTENV_TEST=from-file\n"), 0o600))
	t.Setenv("OPENAI_PASS_DOTENV_TEST", "")
	require.NoError(t, os.Unsetenv("OPENAI_PASS_DOTENV_TEST"))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("OPENAI_PASS_DOTENV_TEST"))
}
