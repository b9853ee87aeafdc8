package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd
var osLookupEnv = os.LookupEnv

const (
	userConfigDir    = ".config/deployctl"
	projectConfigDir = ".deployctl"
	configFileName   = "config.yaml"
	dotEnvFileName   = ".env"

	EnvAPIURL       = "DEPLOYCTL_API_URL"
	EnvAPITimeout   = "DEPLOYCTL_API_TIMEOUT"
	EnvPollInterval = "DEPLOYCTL_POLL_INTERVAL"
	EnvProgressMode = "DEPLOYCTL_PROGRESS_MODE"
)

// LoadConfig loads the deployctl configuration by layering default, user, project and
// environment settings, then validates the result.
func LoadConfig() (DeployctlConfig, error) {
	config := GetDefaultConfig()

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// User config is optional.
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
	} else if fileExists(userConfigPath) {
		userConfig, err := loadConfigFromFile(userConfigPath)
		if err != nil {
			return DeployctlConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
		}
		config = mergeConfigs(config, userConfig)
	}

	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine project config path: %v\n", err)
	} else if fileExists(projectConfigPath) {
		projectConfig, err := loadConfigFromFile(projectConfigPath)
		if err != nil {
			return DeployctlConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
		}
		config = mergeConfigs(config, projectConfig)
	}

	config, err = applyEnv(config)
	if err != nil {
		return DeployctlConfig{}, err
	}

	if err := config.Validate(); err != nil {
		return DeployctlConfig{}, err
	}
	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

var getDotEnvPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, dotEnvFileName), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}

// loadConfigFromFile loads a DeployctlConfig from a YAML file.
func loadConfigFromFile(filePath string) (DeployctlConfig, error) {
	var config DeployctlConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return DeployctlConfig{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return DeployctlConfig{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Zero values in overlay keep the base value.
func mergeConfigs(base, overlay DeployctlConfig) DeployctlConfig {
	merged := base

	if overlay.API.BaseURL != "" {
		merged.API.BaseURL = overlay.API.BaseURL
	}
	if overlay.API.Timeout != 0 {
		merged.API.Timeout = overlay.API.Timeout
	}

	if overlay.Refresh.PollInterval != 0 {
		merged.Refresh.PollInterval = overlay.Refresh.PollInterval
	}

	if overlay.Progress.Mode != "" {
		merged.Progress.Mode = overlay.Progress.Mode
	}
	if overlay.Progress.StepInterval != 0 {
		merged.Progress.StepInterval = overlay.Progress.StepInterval
	}
	if overlay.Progress.CloseDelay != 0 {
		merged.Progress.CloseDelay = overlay.Progress.CloseDelay
	}

	if overlay.UI.NotificationTimeout != 0 {
		merged.UI.NotificationTimeout = overlay.UI.NotificationTimeout
	}
	if overlay.UI.TabSwitchDelay != 0 {
		merged.UI.TabSwitchDelay = overlay.UI.TabSwitchDelay
	}
	if overlay.UI.RestartRefreshDelay != 0 {
		merged.UI.RestartRefreshDelay = overlay.UI.RestartRefreshDelay
	}
	if overlay.UI.ColorMode != "" {
		merged.UI.ColorMode = overlay.UI.ColorMode
	}

	if overlay.Limits.MaxCPU != 0 {
		merged.Limits.MaxCPU = overlay.Limits.MaxCPU
	}
	if overlay.Limits.MaxMemoryMB != 0 {
		merged.Limits.MaxMemoryMB = overlay.Limits.MaxMemoryMB
	}
	if overlay.Limits.MaxDiskGB != 0 {
		merged.Limits.MaxDiskGB = overlay.Limits.MaxDiskGB
	}

	if overlay.MockAPI.Host != "" {
		merged.MockAPI.Host = overlay.MockAPI.Host
	}
	if overlay.MockAPI.Port != 0 {
		merged.MockAPI.Port = overlay.MockAPI.Port
	}
	if overlay.MockAPI.ProvisionDelay != 0 {
		merged.MockAPI.ProvisionDelay = overlay.MockAPI.ProvisionDelay
	}

	if overlay.MCP.Host != "" {
		merged.MCP.Host = overlay.MCP.Host
	}
	if overlay.MCP.Port != 0 {
		merged.MCP.Port = overlay.MCP.Port
	}

	return merged
}

// applyEnv overlays DEPLOYCTL_* variables. Values already present in the process
// environment win over those read from the .env file.
func applyEnv(config DeployctlConfig) (DeployctlConfig, error) {
	dotEnv := map[string]string{}
	if path, err := getDotEnvPath(); err == nil && fileExists(path) {
		dotEnv, err = godotenv.Read(path)
		if err != nil {
			return DeployctlConfig{}, fmt.Errorf("error reading %s: %w", path, err)
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := osLookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := dotEnv[key]
		return v, ok && v != ""
	}

	if v, ok := lookup(EnvAPIURL); ok {
		config.API.BaseURL = v
	}
	if v, ok := lookup(EnvProgressMode); ok {
		config.Progress.Mode = ProgressMode(v)
	}
	for key, dst := range map[string]*time.Duration{
		EnvAPITimeout:   &config.API.Timeout,
		EnvPollInterval: &config.Refresh.PollInterval,
	} {
		v, ok := lookup(key)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return DeployctlConfig{}, fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		*dst = d
	}
	return config, nil
}

// Validate reports the first setting that cannot be used.
func (c DeployctlConfig) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.baseURL %q must be an absolute http(s) URL", c.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.baseURL %q must use http or https", c.API.BaseURL)
	}

	switch c.Progress.Mode {
	case ProgressModeSimulated, ProgressModeStatus:
	default:
		return fmt.Errorf("progress.mode %q must be %q or %q", c.Progress.Mode, ProgressModeSimulated, ProgressModeStatus)
	}

	durations := []struct {
		name string
		d    time.Duration
	}{
		{"api.timeout", c.API.Timeout},
		{"refresh.pollInterval", c.Refresh.PollInterval},
		{"progress.stepInterval", c.Progress.StepInterval},
		{"progress.closeDelay", c.Progress.CloseDelay},
		{"ui.notificationTimeout", c.UI.NotificationTimeout},
		{"ui.tabSwitchDelay", c.UI.TabSwitchDelay},
		{"ui.restartRefreshDelay", c.UI.RestartRefreshDelay},
	}
	for _, d := range durations {
		if d.d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.name, d.d)
		}
	}

	if c.Limits.MaxCPU < 1 || c.Limits.MaxMemoryMB < 512 || c.Limits.MaxDiskGB < 10 {
		return fmt.Errorf("limits must allow at least 1 CPU, 512 MB memory and 10 GB disk")
	}
	return nil
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
