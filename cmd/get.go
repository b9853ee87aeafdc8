package cmd

import (
	"deployctl/internal/deploy"

	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one deployment",
		Long: `Shows every field of one deployment, including its address once running
and the error message when it failed.`,
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
			d, err := application.Services().Client.GetDeployment(commandContext(cmd), id)
			if err != nil {
				return backendError(err, deploy.MsgNotFound)
			}
			return printer.PrintDeployment(d)
		},
	}
	out.register(cmd)
	return cmd
}
