package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"transmute/internal/migrate"
)

// timeRounding trims sub-millisecond noise from displayed durations.
const timeRounding = time.Millisecond

func newRunCommand(ctx *commandContext) *cobra.Command {
	var writeReport bool
	var cleanUp bool
	var incremental bool
	var ui bool

	cmd := &cobra.Command{
		Use:   "run SRC DST",
		Short: "Migrate a source export into the destination layout",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			runner := migrate.NewRunner(cfg, logger)
			state, err := runner.Run(cmd.Context(), migrate.Options{
				Src:         args[0],
				Dst:         args[1],
				WriteReport: writeReport,
				CleanUp:     cleanUp,
				UI:          ui,
				Incremental: incremental,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := [][]string{
				{"Total", strconv.Itoa(state.Total)},
				{"Processed", strconv.Itoa(state.Processed)},
				{"Exported", strconv.Itoa(state.Exported)},
				{"Dropped", strconv.Itoa(state.Dropped)},
				{"Skipped", strconv.Itoa(state.Skipped)},
				{"Elapsed", state.Elapsed.Round(timeRounding).String()},
			}
			fmt.Fprintln(out, renderTable([]string{"Metric", "Value"}, rows, 1))
			printCounts(cmd, "Exported Type", state.ExportedByType)
			printCounts(cmd, "Dropped At Step", state.DroppedByStep)
			if state.ReportPath != "" {
				fmt.Fprintf(out, "Audit report: %s\n", state.ReportPath)
			}
			fmt.Fprintf(out, "Metadata: %s\n", state.MetadataPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&writeReport, "write-report", false, "Write the per-item audit CSV into DST")
	cmd.Flags().BoolVar(&cleanUp, "clean-up", false, "Empty DST before writing")
	cmd.Flags().BoolVar(&incremental, "incremental", false, "Skip content files recorded in the checkpoint store")
	cmd.Flags().BoolVar(&ui, "ui", isatty.IsTerminal(os.Stderr.Fd()), "Render a progress bar")
	return cmd
}

// printCounts renders one tally table, skipping empty tallies.
func printCounts(cmd *cobra.Command, header string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []string{key, strconv.Itoa(counts[key])})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{header, "Count"}, rows, 1))
}
