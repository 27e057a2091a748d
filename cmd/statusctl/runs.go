package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nduyhai/nodestatus/internal/client"
)

func newRunsCmd(root *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent fetch runs recorded by the dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(root.server, root.timeout)
			defer func() { _ = c.Close() }()

			runs, err := c.Runs(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}
			printRuns(cmd.OutOrStdout(), runs)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "number of runs to show")
	return cmd
}
