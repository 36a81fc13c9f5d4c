package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matiasleandrokruk/journalprompts/internal/infra/logging"
)

func newGenerateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate one batch of prompts and print it",
		Long: `Runs the prompt pipeline once and prints three lines to stdout.
Exits with status 1 when the static fallback batch had to be used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(root, 0)
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.LogMode)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			a, err := newApp(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer a.bus.Close()

			res := a.pipeline.Generate(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), res.Batch.String()) //nolint:errcheck
			if res.Fallback {
				return &exitError{code: 1, err: fmt.Errorf("served fallback prompts: %w", res.Err)}
			}
			return nil
		},
	}
}
