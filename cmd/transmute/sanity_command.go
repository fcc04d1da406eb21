package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"transmute/internal/pipeline"
	"transmute/internal/steps"
)

func newSanityCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sanity",
		Short: "Check that every configured pipeline step resolves",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			filter := pipeline.NewPathFilter(cfg.Paths.Filter.Allowed, cfg.Paths.Filter.Drop)
			registry := pipeline.NewRegistry()
			steps.Register(registry, cfg, filter, nil)

			missing := 0
			rows := make([][]string, 0, len(cfg.Pipeline.Steps))
			for _, availability := range registry.Check(cfg.Pipeline.Steps) {
				status := "ok"
				if !availability.OK {
					status = "missing"
					missing++
				}
				rows = append(rows, []string{availability.Name, status})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Step", "Status"}, rows))
			if missing > 0 {
				return fmt.Errorf("%d configured step(s) did not resolve", missing)
			}
			fmt.Fprintln(out, "All configured steps resolved")
			return nil
		},
	}
}
