package task

import (
	"fmt"
	"slices"

	internalstrings "github.com/amonks/tasklist/internal/strings"
	"github.com/amonks/tasklist/internal/validation"
)

// Filter selects tasks by completion status.
type Filter string

const (
	// FilterAll keeps every task.
	FilterAll Filter = "all"

	// FilterActive keeps tasks that are not completed.
	FilterActive Filter = "active"

	// FilterCompleted keeps completed tasks.
	FilterCompleted Filter = "completed"
)

// ValidFilters returns all valid filter values.
func ValidFilters() []Filter {
	return []Filter{FilterAll, FilterActive, FilterCompleted}
}

// ParseFilter normalizes a filter name. The empty string means FilterAll.
func ParseFilter(value string) (Filter, error) {
	normalized := Filter(internalstrings.NormalizeLowerTrimSpace(value))
	if normalized == "" {
		return FilterAll, nil
	}
	if !slices.Contains(ValidFilters(), normalized) {
		return "", fmt.Errorf("%w %q: must be one of %s", ErrInvalidFilter, value, validation.FormatValidValues(ValidFilters()))
	}
	return normalized, nil
}

// Next cycles all -> active -> completed -> all.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterActive
	case FilterActive:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// ByStatus returns the tasks matching filter, preserving order. An unknown
// filter behaves like FilterAll.
func ByStatus(tasks []Task, filter Filter) []Task {
	switch filter {
	case FilterActive:
		return keep(tasks, func(t Task) bool { return !t.Completed })
	case FilterCompleted:
		return keep(tasks, func(t Task) bool { return t.Completed })
	default:
		return tasks
	}
}

// IsOverdue reports whether t has a due date before today and is not completed.
func IsOverdue(t Task, today Date) bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	return t.DueDate.Before(today)
}

// IsDueToday reports whether t is due today, completed or not.
func IsDueToday(t Task, today Date) bool {
	return t.DueDate != nil && *t.DueDate == today
}

// Range selects dated tasks relative to today.
type Range string

const (
	// RangeAll keeps every dated task.
	RangeAll Range = "all"

	// RangeToday keeps tasks due today.
	RangeToday Range = "today"

	// RangeWeek keeps tasks due from today through seven days out.
	RangeWeek Range = "week"

	// RangeMonth keeps tasks due from today through one calendar month out.
	RangeMonth Range = "month"

	// RangeOverdue keeps incomplete tasks due before today.
	RangeOverdue Range = "overdue"
)

// ValidRanges returns all valid range values.
func ValidRanges() []Range {
	return []Range{RangeAll, RangeToday, RangeWeek, RangeMonth, RangeOverdue}
}

// ParseRange normalizes a range name. The empty string means RangeAll.
func ParseRange(value string) (Range, error) {
	normalized := Range(internalstrings.NormalizeLowerTrimSpace(value))
	if normalized == "" {
		return RangeAll, nil
	}
	if !slices.Contains(ValidRanges(), normalized) {
		return "", fmt.Errorf("%w %q: must be one of %s", ErrInvalidRange, value, validation.FormatValidValues(ValidRanges()))
	}
	return normalized, nil
}

// Next cycles through ValidRanges in order.
func (r Range) Next() Range {
	ranges := ValidRanges()
	i := slices.Index(ranges, r)
	return ranges[(i+1)%len(ranges)]
}

// ByDateRange returns dated tasks within r, sorted by due date. Tasks
// without a due date are never included.
func ByDateRange(tasks []Task, r Range, today Date) []Task {
	dated := keep(tasks, Task.HasDueDate)

	var inRange func(Task) bool
	switch r {
	case RangeToday:
		inRange = func(t Task) bool { return t.Due() == today }
	case RangeWeek:
		end := today.AddDays(7)
		inRange = func(t Task) bool { return t.Due() >= today && t.Due() <= end }
	case RangeMonth:
		end := today.AddMonths(1)
		inRange = func(t Task) bool { return t.Due() >= today && t.Due() <= end }
	case RangeOverdue:
		inRange = func(t Task) bool { return !t.Completed && t.Due() < today }
	default:
		inRange = func(Task) bool { return true }
	}

	return SortByDueDate(keep(dated, inRange))
}

// SortByDueDate returns tasks ordered by ascending due date. The sort is
// stable, and tasks without a due date sort last.
func SortByDueDate(tasks []Task) []Task {
	sorted := slices.Clone(tasks)
	slices.SortStableFunc(sorted, func(a, b Task) int {
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return 0
		case a.DueDate == nil:
			return 1
		case b.DueDate == nil:
			return -1
		case *a.DueDate < *b.DueDate:
			return -1
		case *a.DueDate > *b.DueDate:
			return 1
		default:
			return 0
		}
	})
	return sorted
}

func keep(tasks []Task, pred func(Task) bool) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}
