package task

// Stats counts tasks by status.
type Stats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

// Summarize counts tasks by status.
func Summarize(tasks []Task) Stats {
	stats := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			stats.Completed++
		}
	}
	stats.Active = stats.Total - stats.Completed
	return stats
}

// OverdueCount returns how many tasks are overdue.
func OverdueCount(tasks []Task, today Date) int {
	count := 0
	for _, t := range tasks {
		if IsOverdue(t, today) {
			count++
		}
	}
	return count
}

// EmptyMessage returns the message a renderer shows when a filtered list is
// empty. total is the size of the unfiltered collection.
func EmptyMessage(filter Filter, total int) string {
	if total == 0 {
		return "No tasks yet. Add one to get started!"
	}
	switch filter {
	case FilterActive:
		return "No active tasks. Great job!"
	case FilterCompleted:
		return "No completed tasks yet."
	default:
		return "No tasks found."
	}
}

// EmptyDatesMessage is the message for a date view with nothing to show.
func EmptyDatesMessage(r Range) string {
	switch r {
	case RangeToday:
		return "Nothing due today."
	case RangeWeek:
		return "Nothing due this week."
	case RangeMonth:
		return "Nothing due this month."
	case RangeOverdue:
		return "No overdue tasks."
	default:
		return "No tasks with due dates. Set a due date to see it here."
	}
}
