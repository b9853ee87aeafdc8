package app

import (
	"deployctl/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Debug settings
	Debug bool

	// Overrides taken from command line flags. Empty values keep the loaded setting.
	APIURL       string
	ProgressMode string

	// Version is reported in the User-Agent header and to MCP clients.
	Version string

	// Loaded configuration, filled by NewApplication
	Settings *config.DeployctlConfig
}

// NewConfig creates a new application configuration
func NewConfig(debug bool, apiURL string) *Config {
	return &Config{
		Debug:  debug,
		APIURL: apiURL,
	}
}

// applyOverrides layers the flag values over the loaded settings and validates the result.
func (c *Config) applyOverrides(settings config.DeployctlConfig) (config.DeployctlConfig, error) {
	if c.APIURL != "" {
		settings.API.BaseURL = c.APIURL
	}
	if c.ProgressMode != "" {
		settings.Progress.Mode = config.ProgressMode(c.ProgressMode)
	}
	if err := settings.Validate(); err != nil {
		return config.DeployctlConfig{}, err
	}
	return settings, nil
}
