package main

import (
	"time"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	server  string
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "statusctl",
		Short: "Inspect cluster node status from the command line",
		Long: `statusctl prints the node status tables shown on the dashboard.

Examples:
  # Ask a running dashboard
  statusctl show --server http://localhost:8080

  # Only private GPU nodes
  statusctl show --node-type GPU --partition private

  # Run the status script directly, without a server
  statusctl local`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.server, "server", "http://localhost:8080", "dashboard base URL")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 5*time.Minute, "request timeout")

	cmd.AddCommand(newShowCmd(opts), newRunsCmd(opts), newLocalCmd())
	return cmd
}
