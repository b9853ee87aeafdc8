package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ui"},
		Short:   "Open the interactive dashboard",
		Long: `Opens the terminal dashboard with three tabs: the creation form, the list of
deployments (refreshed every poll interval) and the Proxmox node resources.

Press ? inside the dashboard for the key bindings.`,
		Args: cobra.NoArgs,
		RunE: runDashboard,
	}
}

func runDashboard(cmd *cobra.Command, args []string) error {
	application, err := newApplication()
	if err != nil {
		return err
	}
	if err := application.Run(commandContext(cmd)); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
