// Package task implements a local task list: an ordered collection of tasks
// with optional due dates, single-slot undo for deletions, and read-only
// projections (status filters, date groupings, a month calendar) for
// renderers to draw.
//
// The public API mirrors what a view layer needs:
//   - Add, Toggle, Delete, UndoDelete, SetDueDate, ClearDueDate for mutation
//   - Query, Tasks, Get, Resolve for reading
//   - ByStatus, ByDateRange, GroupForListView, CalendarGrid for projection
package task

import "time"

// Task is a single user-created to-do item.
type Task struct {
	// ID is a unique identifier: creation time in unix milliseconds, an
	// underscore, and a random base32 suffix.
	ID string `json:"id"`

	// Text is the sanitized description. Never empty.
	Text string `json:"text"`

	// Completed reports whether the task is done.
	Completed bool `json:"completed"`

	// CreatedAt is when the task was created. It never changes.
	CreatedAt time.Time `json:"createdAt"`

	// DueDate is the optional day the task is due (nil when unset).
	DueDate *Date `json:"dueDate"`

	// DateCompleted is when the task was last completed (nil unless Completed).
	DateCompleted *time.Time `json:"dateCompleted"`
}

// New builds a task with a fresh ID. The text is sanitized; ErrEmptyText is
// returned when nothing remains.
func New(text string, due *Date, now time.Time) (Task, error) {
	sanitized := SanitizeText(text)
	if err := ValidateText(sanitized); err != nil {
		return Task{}, err
	}

	created := normalizeTimestamp(now)
	t := Task{
		ID:        GenerateID(created),
		Text:      sanitized,
		CreatedAt: created,
	}
	if due != nil {
		t.DueDate = DatePtr(*due)
	}
	return t, nil
}

// HasDueDate reports whether a due date is set.
func (t Task) HasDueDate() bool {
	return t.DueDate != nil
}

// Due returns the due date, or "" when unset.
func (t Task) Due() Date {
	if t.DueDate == nil {
		return ""
	}
	return *t.DueDate
}

// clone returns a copy that shares no pointers with t.
func (t Task) clone() Task {
	out := t
	if t.DueDate != nil {
		out.DueDate = DatePtr(*t.DueDate)
	}
	if t.DateCompleted != nil {
		completed := *t.DateCompleted
		out.DateCompleted = &completed
	}
	return out
}

// toggle flips completion, keeping DateCompleted non-nil iff Completed.
func (t *Task) toggle(now time.Time) {
	t.Completed = !t.Completed
	if t.Completed {
		completed := normalizeTimestamp(now)
		t.DateCompleted = &completed
		return
	}
	t.DateCompleted = nil
}

// normalizeTimestamp drops the monotonic reading and sub-millisecond
// precision so timestamps survive a JSON round trip unchanged.
func normalizeTimestamp(now time.Time) time.Time {
	return now.UTC().Truncate(time.Millisecond)
}

func cloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.clone()
	}
	return out
}
