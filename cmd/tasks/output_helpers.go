package main

import (
	"encoding/json"
	"os"

	internalstrings "github.com/amonks/tasklist/internal/strings"
	"github.com/amonks/tasklist/internal/ui"
	"github.com/amonks/tasklist/task"
)

func encodeJSONToStdout(value any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

// taskHighlighter returns a function that highlights the unique prefix of
// task IDs in the store.
func taskHighlighter(store *taskStore) func(string) string {
	prefixLengths := store.IDIndex().PrefixLengths()
	return func(id string) string {
		return ui.HighlightID(id, ui.PrefixLength(prefixLengths, id))
	}
}

// displayText returns task text as a single plain-text line.
func displayText(t task.Task) string {
	return internalstrings.NormalizeWhitespace(task.PlainText(t.Text))
}
