package cmd

import (
	"fmt"

	"deployctl/internal/cli"
	"deployctl/internal/deploy"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	var (
		out outputFlags
		yes bool
	)
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a deployment and its guest",
		Long: `Deletes a deployment. The command asks for confirmation first unless --yes
is given. Nothing is sent to the backend when the answer is no.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			printer, err := out.printer(cmd)
			if err != nil {
				return err
			}
			application, err := newApplication()
			if err != nil {
				return err
			}
			client := application.Services().Client
			ctx := commandContext(cmd)

			if !yes {
				d, err := client.GetDeployment(ctx, id)
				if err != nil {
					return backendError(err, deploy.MsgNotFound)
				}
				prompt := fmt.Sprintf("%s\n  %s (#%d)\n", deploy.MsgConfirmDelete, d.Name, d.ID)
				if !cli.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
					fmt.Fprintln(cmd.OutOrStdout(), "Suppression annulée")
					return nil
				}
			}

			resp, err := client.DeleteDeployment(ctx, id)
			if err != nil {
				return backendError(err, deploy.MsgDeleteFailed)
			}
			return printer.PrintAction(resp, deploy.MsgDeleted)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	out.register(cmd)
	return cmd
}
