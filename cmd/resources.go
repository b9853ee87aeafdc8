package cmd

import (
	"deployctl/internal/deploy"

	"github.com/spf13/cobra"
)

func newResourcesCmd() *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "resources",
		Short: "Show the Proxmox node usage and guest counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := out.printer(cmd)
			if err != nil {
				return err
			}
			application, err := newApplication()
			if err != nil {
				return err
			}
			snap, err := application.Services().Client.Resources(commandContext(cmd))
			if err != nil {
				return backendError(err, deploy.MsgLoadError)
			}
			return printer.PrintResources(snap)
		},
	}
	out.register(cmd)
	return cmd
}
