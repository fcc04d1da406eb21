package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"transmute/internal/config"
	"transmute/internal/exportimport"
	"transmute/internal/report"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "report SRC",
		Short: "Analyze a source export without migrating it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("source path: %w", err)
			}
			files, err := exportimport.ScanSource(src)
			if err != nil {
				return err
			}
			rpt, err := report.Analyze(files)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Source: %s (%d items, %d sidecar files)\n\n", src, rpt.Total, len(files.Metadata))
			printTally(cmd, "Types", rpt.Types)
			printTally(cmd, "Review states", rpt.States)
			printTally(cmd, "Creators", rpt.Creators)
			for _, itemType := range report.SortedKeys(rpt.Types) {
				if layouts := rpt.Layouts[itemType]; len(layouts) > 0 {
					printTally(cmd, "Layouts: "+itemType, layouts)
				}
			}

			if outDir != "" {
				dst, err := config.ExpandPath(outDir)
				if err != nil {
					return fmt.Errorf("output path: %w", err)
				}
				if err := rpt.Write(dst); err != nil {
					return err
				}
				fmt.Fprintf(out, "Report files written to %s\n", dst)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Directory for report.json and per-type CSV files")
	return cmd
}

func printTally(cmd *cobra.Command, title string, tally map[string]int) {
	rows := make([][]string, 0, len(tally))
	for _, key := range report.SortedKeys(tally) {
		rows = append(rows, []string{report.DisplayName(key), strconv.Itoa(tally[key])})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{title, "Count"}, rows, 1))
}
