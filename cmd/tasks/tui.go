package main

import (
	"github.com/amonks/tasklist/internal/logging"
	"github.com/amonks/tasklist/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive task list",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

var (
	tuiFilter filterValue
	tuiRange  rangeValue
	tuiMonth  monthValue
)

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().Var(&tuiFilter, "filter", "Initial status filter (all, active, completed)")
	tuiCmd.Flags().Var(&tuiRange, "range", "Initial date range (all, today, week, month, overdue)")
	tuiCmd.Flags().Var(&tuiMonth, "month", "Initial calendar month (YYYY-MM)")
}

func runTUI(cmd *cobra.Command, args []string) error {
	filter, err := resolveFilter(cmd, &tuiFilter)
	if err != nil {
		return err
	}
	dateRange, err := resolveRange(cmd, &tuiRange)
	if err != nil {
		return err
	}

	store, err := openTUIStore()
	if err != nil {
		return err
	}
	defer store.Release()

	opts := tui.Options{Filter: filter, Range: dateRange, Logger: logging.Discard()}
	if tuiMonth.month != nil {
		opts.Month = *tuiMonth.month
	}
	return tui.Run(cmd.Context(), store.Store, opts)
}


// openTUIStore opens the task store with logging silenced. Log lines on
// stderr would draw over the alternate screen; the status line reports load
// and save failures instead.
func openTUIStore() (*taskStore, error) {
	return openTaskStoreWith(logging.Discard())
}
