package cmd

import (
	"deployctl/internal/app"

	"github.com/spf13/cobra"
)

func newMockAPICmd() *cobra.Command {
	var (
		host string
		port int
	)
	cmd := &cobra.Command{
		Use:   "mock-api",
		Short: "Run an in-memory deployment backend for development",
		Long: `Serves the deployment REST API from memory. Deployments move from pending to
creating to running on a timer, and repositories whose name contains "fail"
end up failed. Nothing reaches Proxmox.

Point the other commands at it with --api-url http://127.0.0.1:5000.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApplication()
			if err != nil {
				return err
			}
			settings := application.Config().Settings
			mockCfg := settings.MockAPI
			if cmd.Flags().Changed("host") {
				mockCfg.Host = host
			}
			if cmd.Flags().Changed("port") {
				mockCfg.Port = port
			}
			return app.RunMockAPI(commandContext(cmd), mockCfg, settings.Limits, rootDebug)
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "Listen address (default mockAPI.host)")
	cmd.Flags().IntVar(&port, "port", 0, "Listen port (default mockAPI.port)")
	return cmd
}
