package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"deployctl/internal/config"
	"deployctl/internal/mcptools"
	"deployctl/internal/mockapi"
	"deployctl/internal/tui/controller"
	"deployctl/internal/tui/design"
	"deployctl/internal/tui/model"
	"deployctl/pkg/logging"

	"github.com/charmbracelet/lipgloss"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MCP transports accepted by RunMCP.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// darkMode resolves ui.colorMode. "auto" asks the terminal.
func darkMode(colorMode string) bool {
	switch colorMode {
	case "dark":
		return true
	case "light":
		return false
	default:
		return lipgloss.HasDarkBackground()
	}
}

// runTUIMode executes the interactive terminal UI mode
func runTUIMode(ctx context.Context, cfg *Config, services *Services) error {
	logging.Info("CLI", "Starting TUI mode...")

	settings := *cfg.Settings
	design.Initialize(darkMode(settings.UI.ColorMode))

	// Switch logging to channel-based system for TUI integration
	logLevel := logging.LevelInfo
	if cfg.Debug {
		logLevel = logging.LevelDebug
	}
	logChan := logging.InitForTUI(logLevel)
	defer logging.CloseTUIChannel()

	p := controller.NewProgram(model.TUIConfig{
		Config:    settings,
		API:       services.Client,
		Store:     services.Store,
		Catalog:   services.Catalog,
		DebugMode: cfg.Debug,
		ColorMode: settings.UI.ColorMode,
	}, logChan)

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		logging.Error("TUI-Lifecycle", err, "Error running TUI program")
		return err
	}
	logging.Info("TUI-Lifecycle", "TUI exited.")
	return nil
}

// RunMCP serves the deployment tools over transport until the client disconnects
// or ctx is cancelled.
func (a *Application) RunMCP(ctx context.Context, transport string) error {
	s := mcptools.NewServer(a.services.DeploymentTools(), a.config.Version)
	switch transport {
	case TransportStdio, "":
		// Logging already goes to stderr, so stdout stays free for the protocol.
		return mcptools.ServeStdio(s)
	case TransportSSE:
		mcpCfg := a.config.Settings.MCP
		return mcptools.ServeSSE(ctx, s, mcpCfg.Host, mcpCfg.Port)
	default:
		return fmt.Errorf("unsupported transport %q (use %s or %s)", transport, TransportStdio, TransportSSE)
	}
}

// NewMockLogger builds the zap logger used by the mock backend's access log.
func NewMockLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// RunMockAPI serves the in-memory backend on the configured address until an
// interrupt arrives or ctx is cancelled.
func RunMockAPI(ctx context.Context, mockCfg config.MockAPIConfig, limits config.LimitsConfig, debug bool) error {
	logger, err := NewMockLogger(debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := mockapi.New(mockapi.Options{
		ProvisionDelay: mockCfg.ProvisionDelay,
		Limits:         deployLimits(limits),
		Logger:         logger,
	})

	addr := fmt.Sprintf("%s:%d", mockCfg.Host, mockCfg.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("mock backend listening", zap.String("addr", "http://"+addr),
			zap.Duration("provision_delay", mockCfg.ProvisionDelay))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down mock backend")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
