package cmd

import (
	"deployctl/internal/deploy"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check the backend and its Proxmox connection",
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
			status, err := application.Services().Client.SystemStatus(commandContext(cmd))
			if err != nil {
				return backendError(err, deploy.ConnErrorLabel)
			}
			return printer.PrintStatus(status)
		},
	}
	out.register(cmd)
	return cmd
}
