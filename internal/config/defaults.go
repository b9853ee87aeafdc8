package config

import "time"

const (
	DefaultBaseURL        = "http://localhost:5000"
	DefaultAPITimeout     = 15 * time.Second
	DefaultPollInterval   = 10 * time.Second
	DefaultStepInterval   = 2 * time.Second
	DefaultCloseDelay     = 2 * time.Second
	DefaultNotification   = 3 * time.Second
	DefaultTabSwitchDelay = 2 * time.Second
	DefaultRestartRefresh = 2 * time.Second

	DefaultMaxCPU      = 8
	DefaultMaxMemoryMB = 16384
	DefaultMaxDiskGB   = 500

	DefaultMockHost           = "127.0.0.1"
	DefaultMockPort           = 5000
	DefaultMockProvisionDelay = 4 * time.Second

	DefaultMCPHost = "localhost"
	DefaultMCPPort = 8090
)

// GetDefaultConfig returns the configuration used when no file or environment overrides exist.
func GetDefaultConfig() DeployctlConfig {
	return DeployctlConfig{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultAPITimeout,
		},
		Refresh: RefreshConfig{
			PollInterval: DefaultPollInterval,
		},
		Progress: ProgressConfig{
			Mode:         ProgressModeSimulated,
			StepInterval: DefaultStepInterval,
			CloseDelay:   DefaultCloseDelay,
		},
		UI: UIConfig{
			NotificationTimeout: DefaultNotification,
			TabSwitchDelay:      DefaultTabSwitchDelay,
			RestartRefreshDelay: DefaultRestartRefresh,
			ColorMode:           "auto",
		},
		Limits: LimitsConfig{
			MaxCPU:      DefaultMaxCPU,
			MaxMemoryMB: DefaultMaxMemoryMB,
			MaxDiskGB:   DefaultMaxDiskGB,
		},
		MockAPI: MockAPIConfig{
			Host:           DefaultMockHost,
			Port:           DefaultMockPort,
			ProvisionDelay: DefaultMockProvisionDelay,
		},
		MCP: MCPConfig{
			Host: DefaultMCPHost,
			Port: DefaultMCPPort,
		},
	}
}
