package task

import (
	"fmt"
	"strconv"

	"github.com/amonks/tasklist/internal/ids"
)

// IDIndex indexes task IDs for prefix matching and display.
type IDIndex struct {
	ids []string
}

// NewIDIndex builds an IDIndex from a slice of tasks.
func NewIDIndex(tasks []Task) IDIndex {
	taskIDs := make([]string, 0, len(tasks))
	for _, t := range tasks {
		taskIDs = append(taskIDs, t.ID)
	}
	return IDIndex{ids: ids.NormalizeUniqueIDs(taskIDs)}
}

// Resolve returns the full task ID for a prefix.
func (index IDIndex) Resolve(prefix string) (string, error) {
	if prefix == "" {
		return "", ErrTaskNotFound
	}

	match, found, ambiguous := ids.MatchPrefixNormalized(index.ids, prefix)
	if !found {
		return "", fmt.Errorf("%w: %s", ErrTaskNotFound, prefix)
	}
	if ambiguous {
		return "", fmt.Errorf("%w: %s", ErrAmbiguousTaskRef, prefix)
	}

	return match, nil
}

// PrefixLengths returns the shortest unique prefix length for each ID.
func (index IDIndex) PrefixLengths() map[string]int {
	return ids.UniquePrefixLengthsNormalized(index.ids)
}

// resolveRef maps a user reference to an index into tasks. A reference is
// either a 1-based position or a unique ID prefix.
func resolveRef(tasks []Task, ref string) (int, error) {
	if n, err := strconv.Atoi(ref); err == nil && len(ref) < 6 {
		if n < 1 || n > len(tasks) {
			return -1, fmt.Errorf("%w: position %d of %d", ErrTaskNotFound, n, len(tasks))
		}
		return n - 1, nil
	}

	id, err := NewIDIndex(tasks).Resolve(ref)
	if err != nil {
		return -1, err
	}
	return indexOf(tasks, id), nil
}

func indexOf(tasks []Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
