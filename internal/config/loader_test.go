package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every config source at tempDir and clears the environment lookup.
func isolate(t *testing.T, tempDir string, env map[string]string) {
	t.Helper()

	origUser, origProject, origDotEnv, origLookup := getUserConfigPath, getProjectConfigPath, getDotEnvPath, osLookupEnv
	t.Cleanup(func() {
		getUserConfigPath = origUser
		getProjectConfigPath = origProject
		getDotEnvPath = origDotEnv
		osLookupEnv = origLookup
	})

	getUserConfigPath = func() (string, error) {
		return filepath.Join(tempDir, "user", configFileName), nil
	}
	getProjectConfigPath = func() (string, error) {
		return filepath.Join(tempDir, "project", configFileName), nil
	}
	getDotEnvPath = func() (string, error) {
		return filepath.Join(tempDir, dotEnvFileName), nil
	}
	osLookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	isolate(t, t.TempDir(), nil)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), cfg)
	assert.Equal(t, 10*time.Second, cfg.Refresh.PollInterval)
	assert.Equal(t, 2*time.Second, cfg.Progress.StepInterval)
	assert.Equal(t, 3*time.Second, cfg.UI.NotificationTimeout)
}

func TestLoadConfig_UserThenProjectOverride(t *testing.T) {
	tempDir := t.TempDir()
	isolate(t, tempDir, nil)

	writeFile(t, filepath.Join(tempDir, "user", configFileName), `
api:
  baseURL: http://user.example:5000
  timeout: 5s
refresh:
  pollInterval: 30s
`)
	writeFile(t, filepath.Join(tempDir, "project", configFileName), `
api:
  baseURL: http://project.example:5000
progress:
  mode: status
`)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://project.example:5000", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Refresh.PollInterval)
	assert.Equal(t, ProgressModeStatus, cfg.Progress.Mode)
	assert.Equal(t, DefaultCloseDelay, cfg.Progress.CloseDelay)
}

func TestLoadConfig_EnvOverridesFiles(t *testing.T) {
	tempDir := t.TempDir()
	isolate(t, tempDir, map[string]string{EnvAPIURL: "https://env.example"})

	writeFile(t, filepath.Join(tempDir, "project", configFileName), "api:\n  baseURL: http://project.example\n")
	writeFile(t, filepath.Join(tempDir, dotEnvFileName), "DEPLOYCTL_API_URL=http://dotenv.example\nDEPLOYCTL_POLL_INTERVAL=1m\n")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://env.example", cfg.API.BaseURL, "process environment wins over .env")
	assert.Equal(t, time.Minute, cfg.Refresh.PollInterval, ".env applies when the process env is silent")
}

func TestLoadConfig_InvalidEnvDuration(t *testing.T) {
	isolate(t, t.TempDir(), map[string]string{EnvPollInterval: "often"})

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvPollInterval)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	tempDir := t.TempDir()
	isolate(t, tempDir, nil)
	writeFile(t, filepath.Join(tempDir, "user", configFileName), "api: [unclosed")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error loading user config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DeployctlConfig)
		errSub string
	}{
		{"defaults are valid", func(*DeployctlConfig) {}, ""},
		{"relative url", func(c *DeployctlConfig) { c.API.BaseURL = "/api" }, "api.baseURL"},
		{"ftp url", func(c *DeployctlConfig) { c.API.BaseURL = "ftp://host" }, "http or https"},
		{"unknown mode", func(c *DeployctlConfig) { c.Progress.Mode = "fast" }, "progress.mode"},
		{"zero poll", func(c *DeployctlConfig) { c.Refresh.PollInterval = 0 }, "refresh.pollInterval"},
		{"tiny limits", func(c *DeployctlConfig) { c.Limits.MaxMemoryMB = 128 }, "limits"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errSub == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSub)
		})
	}
}

func TestMergeConfigs_ZeroOverlayKeepsBase(t *testing.T) {
	base := GetDefaultConfig()
	merged := mergeConfigs(base, DeployctlConfig{})
	assert.Equal(t, base, merged)
}
