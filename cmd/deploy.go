package cmd

import (
	"errors"
	"strings"

	"deployctl/internal/cli"
	"deployctl/internal/deploy"

	"github.com/spf13/cobra"
)

type deployOptions struct {
	out       outputFlags
	framework string
	guestType string
	name      string
	cpu       int
	memory    int
	disk      int
	follow    bool
}

func newDeployCmd() *cobra.Command {
	defaults := deploy.NewCreateRequest()
	opts := &deployOptions{}

	cmd := &cobra.Command{
		Use:   "deploy <github-url>",
		Short: "Create a deployment from a GitHub repository",
		Long: `Creates a VM or LXC container on Proxmox for a GitHub repository and installs
the chosen framework. The request is checked locally before it is sent, so an
invalid one never reaches the backend.

With --follow the command stays attached and prints each provisioning step.`,
		Example: `  deployctl deploy https://github.com/acme/shop --framework django
  deployctl deploy https://github.com/acme/api --framework fastapi --type lxc --cpu 4 --follow`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.framework, "framework", "f", "django", "Framework to install")
	cmd.Flags().StringVarP(&opts.guestType, "type", "t", string(defaults.Type), "Guest type: vm or lxc")
	cmd.Flags().StringVar(&opts.name, "name", "", "Deployment name (defaults to <framework>-<timestamp>)")
	cmd.Flags().IntVar(&opts.cpu, "cpu", defaults.CPU, "CPU cores")
	cmd.Flags().IntVar(&opts.memory, "memory", defaults.Memory, "Memory in MB")
	cmd.Flags().IntVar(&opts.disk, "disk", defaults.Disk, "Disk size in GB")
	cmd.Flags().BoolVar(&opts.follow, "follow", false, "Print provisioning progress until it completes")
	opts.out.register(cmd)
	return cmd
}

func runDeploy(cmd *cobra.Command, githubURL string, opts *deployOptions) error {
	printer, err := opts.out.printer(cmd)
	if err != nil {
		return err
	}
	guestType, err := deploy.ParseType(opts.guestType)
	if err != nil {
		return err
	}

	application, err := newApplication()
	if err != nil {
		return err
	}
	services := application.Services()

	req := deploy.CreateRequest{
		Type:      guestType,
		Framework: strings.TrimSpace(opts.framework),
		GithubURL: strings.TrimSpace(githubURL),
		CPU:       opts.cpu,
		Memory:    opts.memory,
		Disk:      opts.disk,
		Name:      strings.TrimSpace(opts.name),
	}
	if err := req.Validate(services.Limits, services.Catalog); err != nil {
		return errors.New(deploy.ErrorNotice(err.Error()))
	}

	ctx := commandContext(cmd)
	resp, err := services.Client.CreateDeployment(ctx, req)
	if err != nil {
		return backendError(err, deploy.MsgCreateFailed)
	}
	if err := printer.PrintCreated(resp); err != nil {
		return err
	}
	if !opts.follow {
		return nil
	}

	follower := cli.NewFollower(cmd.OutOrStdout(), application.Config().Settings.Progress, services.Client.GetDeployment)
	return follower.Follow(ctx, resp.Deployment.ID)
}
