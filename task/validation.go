package task

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// ErrEmptyText is returned when task text is empty after trimming and sanitizing.
	ErrEmptyText = errors.New("task text cannot be empty")

	// ErrTaskNotFound is returned when no task matches an ID or reference.
	ErrTaskNotFound = errors.New("task not found")

	// ErrAmbiguousTaskRef is returned when an ID prefix matches more than one task.
	ErrAmbiguousTaskRef = errors.New("ambiguous task reference")

	// ErrNothingToUndo is returned when the undo buffer is empty or expired.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrInvalidDate is returned when a due date is not a YYYY-MM-DD day.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidFilter is returned when a status filter name is unknown.
	ErrInvalidFilter = errors.New("invalid filter")

	// ErrInvalidRange is returned when a date range name is unknown.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrMissingID is returned when a stored task has no ID.
	ErrMissingID = errors.New("task must have an id")

	// ErrCompletedMissingDate is returned when a completed task has no dateCompleted.
	ErrCompletedMissingDate = errors.New("completed task must have dateCompleted")

	// ErrActiveHasCompletedDate is returned when an active task carries dateCompleted.
	ErrActiveHasCompletedDate = errors.New("active task cannot have dateCompleted")
)

var textPolicy = bluemonday.StrictPolicy()

// SanitizeText trims text and neutralizes markup so the result can never be
// interpreted as HTML by a renderer. Tags are stripped and the remaining
// special characters are entity-encoded.
func SanitizeText(text string) string {
	return strings.TrimSpace(textPolicy.Sanitize(strings.TrimSpace(text)))
}

// PlainText decodes the entities SanitizeText introduced, for renderers
// that do not interpret markup (terminals).
func PlainText(text string) string {
	return html.UnescapeString(text)
}

// ValidateText checks that sanitized text is usable.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	return nil
}

// ValidateTask checks the invariants of a task read from storage.
func ValidateTask(t Task) error {
	if t.ID == "" {
		return ErrMissingID
	}
	if err := ValidateText(t.Text); err != nil {
		return fmt.Errorf("task %s: %w", t.ID, err)
	}
	if t.DueDate != nil && !t.DueDate.IsValid() {
		return fmt.Errorf("task %s: %w: %q", t.ID, ErrInvalidDate, string(*t.DueDate))
	}
	if t.Completed && t.DateCompleted == nil {
		return fmt.Errorf("task %s: %w", t.ID, ErrCompletedMissingDate)
	}
	if !t.Completed && t.DateCompleted != nil {
		return fmt.Errorf("task %s: %w", t.ID, ErrActiveHasCompletedDate)
	}
	return nil
}
