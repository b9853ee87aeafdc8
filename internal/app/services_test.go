package app

import (
	"errors"
	"testing"

	"deployctl/internal/config"
)

func stubLoadConfig(t *testing.T, cfg config.DeployctlConfig, err error) {
	t.Helper()
	orig := loadConfig
	loadConfig = func() (config.DeployctlConfig, error) { return cfg, err }
	t.Cleanup(func() { loadConfig = orig })
}

func TestInitializeServices(t *testing.T) {
	settings := config.GetDefaultConfig()
	settings.API.BaseURL = "http://backend:5000/"
	settings.Limits.MaxCPU = 4

	s := InitializeServices(&Config{Settings: &settings, Version: "1.2.3"})

	if s.Client == nil {
		t.Fatal("Client should not be nil")
	}
	if got := s.Client.BaseURL(); got != "http://backend:5000" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed", got)
	}
	if s.Store == nil {
		t.Error("Store should not be nil")
	}
	if s.Catalog == nil || s.Catalog.Len() == 0 {
		t.Error("Catalog should hold the built-in frameworks")
	}
	if s.Limits.MaxCPU != 4 {
		t.Errorf("MaxCPU = %d, want 4", s.Limits.MaxCPU)
	}
	if s.DeploymentTools() == nil {
		t.Error("DeploymentTools should not be nil")
	}
}

func TestNewApplication(t *testing.T) {
	stubLoadConfig(t, config.GetDefaultConfig(), nil)

	application, err := NewApplication(&Config{APIURL: "http://other:8000"})
	if err != nil {
		t.Fatalf("NewApplication() error = %v", err)
	}
	if got := application.Config().Settings.API.BaseURL; got != "http://other:8000" {
		t.Errorf("BaseURL = %q, want the flag value", got)
	}
	if got := application.Services().Client.BaseURL(); got != "http://other:8000" {
		t.Errorf("client BaseURL = %q, want the flag value", got)
	}
}

func TestNewApplication_LoadError(t *testing.T) {
	stubLoadConfig(t, config.DeployctlConfig{}, errors.New("broken yaml"))

	if _, err := NewApplication(&Config{}); err == nil {
		t.Fatal("expected an error when the configuration cannot be loaded")
	}
}
