package cmd

import (
	"fmt"

	"deployctl/internal/deploy"

	"github.com/spf13/cobra"
)

func newRestartCmd() *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "restart <id>",
		Short: "Restart the guest of a running deployment",
		Args:  cobra.ExactArgs(1),
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

			d, err := client.GetDeployment(ctx, id)
			if err != nil {
				return backendError(err, deploy.MsgNotFound)
			}
			if !deploy.Has(d, deploy.ActionRestart) {
				return fmt.Errorf("deployment %d is %s: only running deployments can be restarted",
					id, deploy.StatusLabel(d.Status))
			}

			resp, err := client.RestartDeployment(ctx, id)
			if err != nil {
				return backendError(err, deploy.MsgRestartFailed)
			}
			return printer.PrintAction(resp, deploy.MsgRestarted)
		},
	}
	out.register(cmd)
	return cmd
}
