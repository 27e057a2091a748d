package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nduyhai/nodestatus/internal/api"
	"github.com/nduyhai/nodestatus/internal/client"
	"github.com/nduyhai/nodestatus/internal/node"
)

func newShowCmd(root *rootOptions) *cobra.Command {
	var nodeType, partition string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show node status from a running dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (nodeType == "") != (partition == "") {
				return fmt.Errorf("--node-type and --partition must be given together")
			}

			c := client.New(root.server, root.timeout)
			defer func() { _ = c.Close() }()

			if nodeType == "" {
				snap, err := c.Status(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to get status: %w", err)
				}
				printResults(cmd.OutOrStdout(), snap.Results)
				return nil
			}

			q, err := parseQuery(nodeType, partition)
			if err != nil {
				return err
			}
			res, err := c.Query(cmd.Context(), q)
			if err != nil {
				return fmt.Errorf("failed to get status: %w", err)
			}
			printResults(cmd.OutOrStdout(), []api.ResultResponse{*res})
			return nil
		},
	}

	cmd.Flags().StringVar(&nodeType, "node-type", "", "GPU or CPU")
	cmd.Flags().StringVar(&partition, "partition", "", "public or private")
	return cmd
}

func parseQuery(nodeType, partition string) (node.Query, error) {
	t, err := node.ParseType(nodeType)
	if err != nil {
		return node.Query{}, err
	}
	p, err := node.ParsePartitionType(partition)
	if err != nil {
		return node.Query{}, err
	}
	return node.Query{Type: t, Partition: p}, nil
}
