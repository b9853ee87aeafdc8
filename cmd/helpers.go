package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"deployctl/internal/api"
	"deployctl/internal/cli"

	"github.com/spf13/cobra"
)

// outputFlags are the --output and --quiet flags shared by the query commands.
type outputFlags struct {
	format string
	quiet  bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "output", "o", "table", "Output format (table, json, yaml)")
	cmd.Flags().BoolVarP(&o.quiet, "quiet", "q", false, "Suppress non-essential output")
}

func (o *outputFlags) printer(cmd *cobra.Command) (*cli.Printer, error) {
	format, err := cli.ParseOutputFormat(o.format)
	if err != nil {
		return nil, err
	}
	return cli.NewPrinter(cli.PrinterOptions{
		Format: format,
		Quiet:  o.quiet,
		Out:    cmd.OutOrStdout(),
	}), nil
}

// parseID reads a deployment id argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(arg), "#"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid deployment id %q: must be a positive integer", arg)
	}
	return id, nil
}

// backendError keeps the backend's message and adds the cause to fallback for
// transport failures.
func backendError(err error, fallback string) error {
	if _, ok := api.IsAPIError(err); ok {
		return errors.New(api.UserMessage(err, fallback))
	}
	return fmt.Errorf("%s: %w", fallback, err)
}
