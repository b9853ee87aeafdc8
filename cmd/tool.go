package cmd

import (
	"fmt"

	"deployctl/internal/cli"
	"deployctl/internal/config"
	"deployctl/internal/mcptools"

	"github.com/spf13/cobra"
)

var (
	toolEndpoint string
	toolOutput   outputFlags
)

func newToolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tool",
		Short: "Call the tools of a running 'deployctl mcp --transport sse' server",
		Long: `Lists or calls the MCP tools served by 'deployctl mcp --transport sse'.
This is handy to check what an assistant sees.

Arguments are passed as key=value pairs. Numbers and booleans keep their type.`,
	}
	cmd.PersistentFlags().StringVar(&toolEndpoint, "endpoint",
		mcptools.SSEEndpoint(config.DefaultMCPHost, config.DefaultMCPPort), "SSE endpoint of the MCP server")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the available tools",
		Args:  cobra.NoArgs,
		RunE:  runToolList,
	}
	callCmd := &cobra.Command{
		Use:     "call <tool> [key=value...]",
		Short:   "Call one tool",
		Example: `  deployctl tool call deployment_get id=3
  deployctl tool call deployment_delete id=3 confirm=true`,
		Args: cobra.MinimumNArgs(1),
		RunE: runToolCall,
	}
	toolOutput.register(listCmd)
	toolOutput.register(callCmd)

	cmd.AddCommand(listCmd, callCmd)
	return cmd
}

func connectTool(cmd *cobra.Command) (*cli.MCPClient, error) {
	client := cli.NewMCPClient(toolEndpoint)
	if err := client.Connect(commandContext(cmd)); err != nil {
		return nil, fmt.Errorf("cannot reach the MCP server at %s (is 'deployctl mcp --transport sse' running?): %w", toolEndpoint, err)
	}
	return client, nil
}

func runToolList(cmd *cobra.Command, args []string) error {
	printer, err := toolOutput.printer(cmd)
	if err != nil {
		return err
	}
	client, err := connectTool(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	tools, err := client.ListTools(commandContext(cmd))
	if err != nil {
		return err
	}
	return printer.PrintTools(tools)
}

func runToolCall(cmd *cobra.Command, args []string) error {
	printer, err := toolOutput.printer(cmd)
	if err != nil {
		return err
	}
	toolArgs, err := cli.ParseToolArgs(args[1:])
	if err != nil {
		return err
	}
	client, err := connectTool(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	result, err := client.CallToolSimple(commandContext(cmd), args[0], toolArgs)
	if err != nil {
		return err
	}
	return printer.PrintToolResult(result)
}
