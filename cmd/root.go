package cmd

import (
	"context"
	"os"

	"deployctl/internal/app"

	"github.com/spf13/cobra"
)

var (
	rootAPIURL       string
	rootDebug        bool
	rootProgressMode string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "deployctl",
	Short: "Deploy GitHub applications to Proxmox from your terminal",
	Long: `deployctl drives a Proxmox deployment backend. It provisions a VM or an LXC
container for a GitHub repository, installs the chosen framework and keeps an
eye on every deployment.

Run without a subcommand to open the interactive dashboard. The other commands
cover the same operations for scripts, and 'deployctl mcp' exposes them to AI
assistants over the Model Context Protocol.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. backend errors)
	SilenceUsage: true,
	Args:         cobra.NoArgs,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "deployctl version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

// newApplication loads the configuration with the global flags applied.
func newApplication() (*app.Application, error) {
	cfg := app.NewConfig(rootDebug, rootAPIURL)
	cfg.ProgressMode = rootProgressMode
	cfg.Version = rootCmd.Version
	return app.NewApplication(cfg)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func init() {
	// Assigned here since runDashboard reads rootCmd through newApplication.
	rootCmd.RunE = runDashboard

	rootCmd.PersistentFlags().StringVar(&rootAPIURL, "api-url", "", "Deployment backend URL (overrides api.baseURL and DEPLOYCTL_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&rootProgressMode, "progress-mode", "", "How creation progress advances: simulated or status")

	rootCmd.AddCommand(newDashboardCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newDeployCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newRestartCmd())
	rootCmd.AddCommand(newLogsCmd())
	rootCmd.AddCommand(newResourcesCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newMCPCmd())
	rootCmd.AddCommand(newToolCmd())
	rootCmd.AddCommand(newMockAPICmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
