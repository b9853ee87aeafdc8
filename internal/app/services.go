package app

import (
	"deployctl/internal/api"
	"deployctl/internal/config"
	"deployctl/internal/deploy"
	"deployctl/internal/mcptools"
	"deployctl/internal/store"
)

// Services holds the objects every command shares.
type Services struct {
	Client  *api.Client
	Store   *store.DeploymentStore
	Catalog *deploy.Catalog
	Limits  deploy.Limits
}

// InitializeServices builds the backend client from the loaded settings.
func InitializeServices(cfg *Config) *Services {
	settings := cfg.Settings
	userAgent := "deployctl"
	if cfg.Version != "" {
		userAgent += "/" + cfg.Version
	}

	return &Services{
		Client: api.New(settings.API.BaseURL,
			api.WithTimeout(settings.API.Timeout),
			api.WithUserAgent(userAgent),
		),
		Store:   store.New(),
		Catalog: deploy.DefaultCatalog(),
		Limits:  deployLimits(settings.Limits),
	}
}

// DeploymentTools exposes the services as MCP tools.
func (s *Services) DeploymentTools() *mcptools.DeploymentTools {
	return mcptools.NewDeploymentTools(s.Client, s.Limits, s.Catalog)
}

func deployLimits(l config.LimitsConfig) deploy.Limits {
	return deploy.Limits{
		MaxCPU:      l.MaxCPU,
		MaxMemoryMB: l.MaxMemoryMB,
		MaxDiskGB:   l.MaxDiskGB,
	}
}
