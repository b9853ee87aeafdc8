package config

import (
	"time"
)

// DeployctlConfig is the top-level configuration structure for deployctl.
type DeployctlConfig struct {
	API      APIConfig      `yaml:"api"`
	Refresh  RefreshConfig  `yaml:"refresh"`
	Progress ProgressConfig `yaml:"progress"`
	UI       UIConfig       `yaml:"ui"`
	Limits   LimitsConfig   `yaml:"limits"`
	MockAPI  MockAPIConfig  `yaml:"mockAPI"`
	MCP      MCPConfig      `yaml:"mcp"`
}

// APIConfig points the client at the deployment backend.
type APIConfig struct {
	BaseURL string        `yaml:"baseURL,omitempty"` // e.g. "http://localhost:5000"
	Timeout time.Duration `yaml:"timeout,omitempty"` // Per-request timeout
}

// RefreshConfig controls the deployment list poller.
type RefreshConfig struct {
	PollInterval time.Duration `yaml:"pollInterval,omitempty"`
}

// ProgressMode selects how the progress modal advances.
type ProgressMode string

const (
	// ProgressModeSimulated advances on a fixed timer regardless of the backend.
	ProgressModeSimulated ProgressMode = "simulated"
	// ProgressModeStatus follows the real deployment status reported by the backend.
	ProgressModeStatus ProgressMode = "status"
)

// ProgressConfig drives the progress modal shown after a creation.
type ProgressConfig struct {
	Mode         ProgressMode  `yaml:"mode,omitempty"`
	StepInterval time.Duration `yaml:"stepInterval,omitempty"`
	CloseDelay   time.Duration `yaml:"closeDelay,omitempty"`
}

// UIConfig holds dashboard timings and appearance.
type UIConfig struct {
	NotificationTimeout time.Duration `yaml:"notificationTimeout,omitempty"`
	TabSwitchDelay      time.Duration `yaml:"tabSwitchDelay,omitempty"`
	RestartRefreshDelay time.Duration `yaml:"restartRefreshDelay,omitempty"`
	ColorMode           string        `yaml:"colorMode,omitempty"` // "auto", "dark" or "light"
}

// LimitsConfig bounds the resources a creation request may ask for.
type LimitsConfig struct {
	MaxCPU      int `yaml:"maxCPU,omitempty"`
	MaxMemoryMB int `yaml:"maxMemoryMB,omitempty"`
	MaxDiskGB   int `yaml:"maxDiskGB,omitempty"`
}

// MockAPIConfig configures the in-memory development backend.
type MockAPIConfig struct {
	Host           string        `yaml:"host,omitempty"`
	Port           int           `yaml:"port,omitempty"`
	ProvisionDelay time.Duration `yaml:"provisionDelay,omitempty"` // Time spent in each of pending and creating
}

// MCPConfig configures the MCP server when it listens over SSE instead of stdio.
type MCPConfig struct {
	Host string `yaml:"host,omitempty"`
	Port int    `yaml:"port,omitempty"`
}
