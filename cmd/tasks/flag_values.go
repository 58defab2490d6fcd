package main

import (
	"time"

	internalstrings "github.com/amonks/tasklist/internal/strings"
	"github.com/amonks/tasklist/task"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// dateValue is a --due style flag holding a YYYY-MM-DD date.
type dateValue struct {
	date *task.Date
}

var _ pflag.Value = (*dateValue)(nil)

func (v *dateValue) String() string {
	if v.date == nil {
		return ""
	}
	return string(*v.date)
}

func (v *dateValue) Set(value string) error {
	parsed, err := parseDateArg(value)
	if err != nil {
		return err
	}
	v.date = &parsed
	return nil
}

func (v *dateValue) Type() string {
	return "date"
}

// parseDateArg accepts YYYY-MM-DD or one of today, tomorrow and yesterday.
func parseDateArg(value string) (task.Date, error) {
	today := task.Today(time.Now())
	switch internalstrings.NormalizeLowerTrimSpace(value) {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDays(1), nil
	case "yesterday":
		return today.AddDays(-1), nil
	}
	return task.ParseDate(value)
}

// monthValue is a --month flag holding a YYYY-MM month.
type monthValue struct {
	month *task.Month
}

var _ pflag.Value = (*monthValue)(nil)

func (v *monthValue) String() string {
	if v.month == nil {
		return ""
	}
	return v.month.String()
}

func (v *monthValue) Set(value string) error {
	parsed, err := task.ParseMonth(value)
	if err != nil {
		return err
	}
	v.month = &parsed
	return nil
}

func (v *monthValue) Type() string {
	return "month"
}

// filterValue is a --filter flag. Unset flags fall back to the configured
// default.
type filterValue struct {
	filter task.Filter
}

var _ pflag.Value = (*filterValue)(nil)

func (v *filterValue) String() string {
	return string(v.filter)
}

func (v *filterValue) Set(value string) error {
	parsed, err := task.ParseFilter(value)
	if err != nil {
		return err
	}
	v.filter = parsed
	return nil
}

func (v *filterValue) Type() string {
	return "filter"
}

// rangeValue is a --range flag. Unset flags fall back to the configured
// default.
type rangeValue struct {
	dateRange task.Range
}

var _ pflag.Value = (*rangeValue)(nil)

func (v *rangeValue) String() string {
	return string(v.dateRange)
}

func (v *rangeValue) Set(value string) error {
	parsed, err := task.ParseRange(value)
	if err != nil {
		return err
	}
	v.dateRange = parsed
	return nil
}

func (v *rangeValue) Type() string {
	return "range"
}

func hasChangedFlags(cmd *cobra.Command, flags ...string) bool {
	for _, flag := range flags {
		if cmd.Flags().Changed(flag) {
			return true
		}
	}
	return false
}

// resolveFilter returns the --filter value, or the configured default.
func resolveFilter(cmd *cobra.Command, value *filterValue) (task.Filter, error) {
	if hasChangedFlags(cmd, "filter") {
		return value.filter, nil
	}
	return task.ParseFilter(settings.View.Filter)
}

// resolveRange returns the --range value, or the configured default.
func resolveRange(cmd *cobra.Command, value *rangeValue) (task.Range, error) {
	if hasChangedFlags(cmd, "range") {
		return value.dateRange, nil
	}
	return task.ParseRange(settings.View.Range)
}
