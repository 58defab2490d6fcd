package ui

import (
	"fmt"
	"time"

	internalage "github.com/amonks/tasklist/internal/age"
	"github.com/amonks/tasklist/task"
)

// FormatTimeAgo returns a compact age string like "2m ago".
func FormatTimeAgo(then time.Time, now time.Time) string {
	duration, ok := internalage.AgeData(then, now)
	if !ok {
		return "-"
	}
	return FormatDurationShort(duration) + " ago"
}

// FormatDurationShort formats a duration using short units (s/m/h/d).
func FormatDurationShort(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}

	seconds := int64(duration.Truncate(time.Second).Seconds())
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 60*60:
		return fmt.Sprintf("%dm", seconds/60)
	case seconds < 24*60*60:
		return fmt.Sprintf("%dh", seconds/(60*60))
	default:
		return fmt.Sprintf("%dd", seconds/(24*60*60))
	}
}

// FormatDue renders a due date relative to today: "today", "tomorrow",
// "yesterday", or the display form of the date.
func FormatDue(due task.Date, today task.Date) string {
	switch due {
	case "":
		return ""
	case today:
		return "today"
	case today.AddDays(1):
		return "tomorrow"
	case today.AddDays(-1):
		return "yesterday"
	default:
		return due.Format()
	}
}
