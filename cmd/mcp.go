package cmd

import (
	"deployctl/internal/app"

	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	var transport string
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the deployment operations as MCP tools",
		Long: `Starts a Model Context Protocol server so AI assistants can list, create,
restart and delete deployments.

With the default stdio transport the assistant launches deployctl itself, e.g.
in its MCP configuration:

  {"command": "deployctl", "args": ["mcp"]}

With --transport sse the server listens on mcp.host:mcp.port and other
deployctl commands ('deployctl tool') can connect to it.

Deleting through MCP requires the tool argument confirm=true.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApplication()
			if err != nil {
				return err
			}
			return application.RunMCP(commandContext(cmd), transport)
		},
	}
	cmd.Flags().StringVar(&transport, "transport", app.TransportStdio, "Transport: stdio or sse")
	return cmd
}
