package cmd

import (
	"deployctl/internal/deploy"

	"github.com/spf13/cobra"
)

func newLogsCmd() *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "logs <id>",
		Short: "Print the provisioning logs of a deployment",
		Long:  `Prints the Terraform output followed by the deployment log.`,
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
			logs, err := application.Services().Client.DeploymentLogs(commandContext(cmd), id)
			if err != nil {
				return backendError(err, deploy.MsgLogsFailed)
			}
			return printer.PrintLogs(logs)
		},
	}
	out.register(cmd)
	return cmd
}
