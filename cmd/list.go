package cmd

import (
	"deployctl/internal/deploy"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List deployments, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := out.printer(cmd)
			if err != nil {
				return err
			}
			application, err := newApplication()
			if err != nil {
				return err
			}
			list, err := application.Services().Client.ListDeployments(commandContext(cmd))
			if err != nil {
				return backendError(err, deploy.MsgLoadError)
			}
			return printer.PrintDeployments(list)
		},
	}
	out.register(cmd)
	return cmd
}
