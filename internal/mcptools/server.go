package mcptools

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"deployctl/pkg/logging"

	"github.com/mark3labs/mcp-go/server"
)

// ServerName is announced to MCP clients during initialization.
const ServerName = "deployctl"

// NewServer builds an MCP server exposing every deployment tool.
func NewServer(tools *DeploymentTools, version string) *server.MCPServer {
	if version == "" {
		version = "dev"
	}
	s := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s.AddTools(tools.Tools()...)
	return s
}

// ServeStdio runs the server over stdin and stdout until the client disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// SSEEndpoint is the URL clients connect to for a server listening on host:port.
func SSEEndpoint(host string, port int) string {
	return fmt.Sprintf("http://%s:%d/sse", host, port)
}

// ServeSSE listens on host:port until ctx is cancelled, then shuts down gracefully.
func ServeSSE(ctx context.Context, s *server.MCPServer, host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	sseServer := server.NewSSEServer(
		s,
		server.WithBaseURL(fmt.Sprintf("http://%s", addr)),
		server.WithSSEEndpoint("/sse"),
		server.WithMessageEndpoint("/message"),
		server.WithKeepAlive(true),
		server.WithKeepAliveInterval(30*time.Second),
	)

	errCh := make(chan error, 1)
	go func() {
		logging.Info(subsystem, "Starting MCP server on %s", SSEEndpoint(host, port))
		errCh <- sseServer.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sseServer.Shutdown(shutdownCtx); err != nil {
			logging.Error(subsystem, err, "Failed to shut down MCP server")
			return err
		}
		return nil
	}
}
