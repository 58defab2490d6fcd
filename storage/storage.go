// Package storage persists the task collection and the dark mode preference
// in a key-value store, validating stored records before they reach the
// task store.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/amonks/tasklist/internal/kv"
	"github.com/amonks/tasklist/task"
	"github.com/charmbracelet/log"
)

const (
	// TasksKey holds the JSON array of tasks.
	TasksKey = "tasks"

	// DarkModeKey holds "true" or "false".
	DarkModeKey = "darkMode"

	// LegacyCounterKey is an old ID counter that is removed on load.
	LegacyCounterKey = "taskIdCounter"
)

var (
	// ErrSave wraps failures to write to the backing store.
	ErrSave = errors.New("unable to save")

	// ErrCorrupt wraps stored data that cannot be decoded or fails validation.
	ErrCorrupt = errors.New("stored data is corrupt")
)

// Options configures a Gateway.
type Options struct {
	// Logger receives cleanup notices. If nil, nothing is logged.
	Logger *log.Logger
}

// Gateway implements task.Gateway on top of a kv.Store.
type Gateway struct {
	kv     kv.Store
	logger *log.Logger
}

var _ task.Gateway = (*Gateway)(nil)

// New returns a Gateway backed by store.
func New(store kv.Store, opts Options) *Gateway {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Gateway{kv: store, logger: opts.Logger}
}

// Save writes the whole collection.
func (g *Gateway) Save(tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("%w tasks: %w", ErrSave, err)
	}
	if err := g.kv.Set(TasksKey, string(data)); err != nil {
		return fmt.Errorf("%w tasks: %w", ErrSave, err)
	}
	return nil
}

// Load reads the collection. found is false when nothing has been stored.
// Records written by older versions are rehydrated (see Decode). Data that
// still cannot be decoded or fails validation makes the whole collection
// unusable: Load returns an empty slice, found, and an error wrapping
// ErrCorrupt.
func (g *Gateway) Load() ([]task.Task, bool, error) {
	g.purgeLegacyKeys()

	raw, found, err := g.kv.Get(TasksKey)
	if err != nil {
		return []task.Task{}, false, fmt.Errorf("read tasks: %w", err)
	}
	if !found {
		return []task.Task{}, false, nil
	}

	tasks, repaired, err := decode([]byte(raw), time.Now)
	if err != nil {
		return []task.Task{}, true, err
	}
	if repaired > 0 {
		g.logger.Info("rehydrated legacy task records", "count", repaired)
	}
	return tasks, true, nil
}

// Decode parses and validates a stored task array. Legacy record shapes are
// repaired first: numeric IDs become strings, missing IDs are generated,
// missing dueDate and dateCompleted become null, and dateCompleted is made
// to agree with completed.
func Decode(data []byte) ([]task.Task, error) {
	tasks, _, err := decode(data, time.Now)
	return tasks, err
}

func decode(data []byte, now func() time.Time) ([]task.Task, int, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, 0, fmt.Errorf("%w: trailing data after task array", ErrCorrupt)
	}

	repaired := 0
	if records, ok := doc.([]any); ok {
		for _, record := range records {
			if fields, ok := record.(map[string]any); ok && rehydrate(fields, now) {
				repaired++
			}
		}
	}
	if err := ValidateDocument(doc); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	var tasks []task.Task
	if err := json.Unmarshal(normalized, &tasks); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	for _, t := range tasks {
		if err := task.ValidateTask(t); err != nil {
			return nil, 0, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, repaired, nil
}

// rehydrate rewrites a decoded record in place into the current shape. It
// reports whether anything changed.
func rehydrate(fields map[string]any, now func() time.Time) bool {
	changed := false

	switch id := fields["id"].(type) {
	case json.Number:
		fields["id"] = id.String()
		changed = true
	case nil:
		fields["id"] = task.GenerateID(recordTime(fields, now))
		changed = true
	case string:
		if id == "" {
			fields["id"] = task.GenerateID(recordTime(fields, now))
			changed = true
		}
	}

	if _, ok := fields["dueDate"]; !ok {
		fields["dueDate"] = nil
		changed = true
	}

	completed, _ := fields["completed"].(bool)
	dateCompleted, hasDate := fields["dateCompleted"]
	switch {
	case completed && dateCompleted == nil:
		if createdAt, ok := fields["createdAt"].(string); ok {
			fields["dateCompleted"] = createdAt
			changed = true
		}
	case !completed && dateCompleted != nil:
		fields["dateCompleted"] = nil
		changed = true
	case !hasDate:
		fields["dateCompleted"] = nil
		changed = true
	}

	return changed
}

// recordTime is the record's createdAt, or now when it has none.
func recordTime(fields map[string]any, now func() time.Time) time.Time {
	if raw, ok := fields["createdAt"].(string); ok {
		if created, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			return created
		}
	}
	return now()
}

// SavePreference stores the dark mode preference.
func (g *Gateway) SavePreference(value bool) error {
	if err := g.kv.Set(DarkModeKey, strconv.FormatBool(value)); err != nil {
		return fmt.Errorf("%w preference: %w", ErrSave, err)
	}
	return nil
}

// LoadPreference reads the dark mode preference. found is false when none
// was stored.
func (g *Gateway) LoadPreference() (bool, bool, error) {
	raw, found, err := g.kv.Get(DarkModeKey)
	if err != nil {
		return false, false, fmt.Errorf("read preference: %w", err)
	}
	if !found {
		return false, false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false, fmt.Errorf("%w: dark mode preference %q", ErrCorrupt, raw)
	}
	return value, true, nil
}

func (g *Gateway) purgeLegacyKeys() {
	_, found, err := g.kv.Get(LegacyCounterKey)
	if err != nil || !found {
		return
	}
	if err := g.kv.Delete(LegacyCounterKey); err != nil {
		g.logger.Warn("unable to remove legacy key", "key", LegacyCounterKey, "err", err)
		return
	}
	g.logger.Debug("removed legacy key", "key", LegacyCounterKey)
}
