package app

import (
	"context"
	"fmt"
	"os"

	"deployctl/internal/config"
	"deployctl/pkg/logging"
)

// loadConfig is swapped in tests.
var loadConfig = config.LoadConfig

// Application is the main application structure that bootstraps and runs deployctl
type Application struct {
	config   *Config
	services *Services
}

// NewApplication loads the layered configuration, applies flag overrides and
// builds the backend client.
func NewApplication(cfg *Config) (*Application, error) {
	appLogLevel := logging.LevelInfo
	if cfg.Debug {
		appLogLevel = logging.LevelDebug
	}

	// Stdout carries command output, so log lines go to stderr. The dashboard
	// replaces this with its own sink.
	logging.InitForCLI(appLogLevel, os.Stderr)

	settings, err := loadConfig()
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load deployctl configuration")
		return nil, fmt.Errorf("failed to load deployctl configuration: %w", err)
	}
	settings, err = cfg.applyOverrides(settings)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.Settings = &settings
	logging.Debug("Bootstrap", "Using backend %s (progress mode %s)", settings.API.BaseURL, settings.Progress.Mode)

	return &Application{
		config:   cfg,
		services: InitializeServices(cfg),
	}, nil
}

// Config returns the effective configuration.
func (a *Application) Config() *Config {
	return a.config
}

// Services returns the shared backend services.
func (a *Application) Services() *Services {
	return a.services
}

// Run starts the interactive dashboard and blocks until the user quits.
func (a *Application) Run(ctx context.Context) error {
	return runTUIMode(ctx, a.config, a.services)
}
