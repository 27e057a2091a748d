package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/nduyhai/nodestatus/internal/api"
	"github.com/nduyhai/nodestatus/internal/clusterstatus"
	"github.com/nduyhai/nodestatus/internal/config"
)

func newLocalCmd() *cobra.Command {
	var scriptPath string

	cmd := &cobra.Command{
		Use:   "local",
		Short: "Run the status script here and print what the dashboard would show",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if scriptPath != "" {
				cfg.Command.Path = scriptPath
			}

			f := clusterstatus.NewFetcher(
				clusterstatus.NewCommand(cfg.Command.Path),
				clusterstatus.WithTimeout(cfg.Command.Timeout),
				clusterstatus.Sequential(cfg.Command.Sequential),
				clusterstatus.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
			)
			snap := f.FetchAll(cmd.Context())
			printResults(cmd.OutOrStdout(), lo.Map(snap.Results[:], func(r clusterstatus.FetchResult, _ int) api.ResultResponse {
				return api.NewResultResponse(r)
			}))
			return nil
		},
	}

	cmd.Flags().StringVar(&scriptPath, "script", "", "status script path (overrides command.path)")
	return cmd
}
