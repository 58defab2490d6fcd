package task

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// ErrNotSaved marks a mutation that was applied in memory but could not be
// persisted. Match it with errors.Is.
var ErrNotSaved = errors.New("change not saved")

// SaveError reports a persistence failure after a successful in-memory
// mutation. The in-memory collection stays authoritative.
type SaveError struct {
	Op  string
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, ErrNotSaved, e.Err)
}

// Unwrap returns both the marker and the underlying cause.
func (e *SaveError) Unwrap() []error {
	return []error{ErrNotSaved, e.Err}
}

// IsSaveWarning reports whether err only signals a failed save, meaning the
// operation itself succeeded.
func IsSaveWarning(err error) bool {
	return errors.Is(err, ErrNotSaved)
}

// Gateway persists the task collection and the dark mode preference.
type Gateway interface {
	// Load returns the stored tasks. found is false when nothing was ever
	// stored. Corrupt data yields an empty slice and an error.
	Load() (tasks []Task, found bool, err error)
	Save(tasks []Task) error
	LoadPreference() (value bool, found bool, err error)
	SavePreference(value bool) error
}

// OpenOptions configures how the store is opened.
type OpenOptions struct {
	// Clock drives timestamps and undo expiry. If nil, RealClock is used.
	Clock Clock

	// UndoWindow is how long deletions stay undoable. Zero means DefaultUndoWindow.
	UndoWindow time.Duration

	// Logger receives persistence warnings. If nil, warnings are discarded.
	Logger *log.Logger
}

// Store owns the ordered task collection and the undo buffer. All access
// goes through its methods; it is safe to share between a renderer and the
// undo timer.
type Store struct {
	mu         sync.Mutex
	tasks      []Task
	darkMode   bool
	undo       undoBuffer
	gateway    Gateway
	clock      Clock
	undoWindow time.Duration
	logger     *log.Logger
	loadErr    error
}

// Open loads the collection and preference from gateway. Load failures are
// not fatal: the store starts empty (or with the default preference) and
// the failure is available from LoadError.
func Open(gateway Gateway, opts OpenOptions) (*Store, error) {
	if gateway == nil {
		return nil, fmt.Errorf("task store requires a gateway")
	}
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.UndoWindow <= 0 {
		opts.UndoWindow = DefaultUndoWindow
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	s := &Store{
		gateway:    gateway,
		clock:      opts.Clock,
		undoWindow: opts.UndoWindow,
		logger:     opts.Logger,
	}

	tasks, _, err := gateway.Load()
	if err != nil {
		s.logger.Warn("unable to load saved tasks, starting with an empty list", "err", err)
		s.loadErr = err
		tasks = nil
	}
	s.tasks = cloneTasks(tasks)

	dark, found, err := gateway.LoadPreference()
	if err != nil {
		s.logger.Warn("unable to load dark mode preference, using light mode", "err", err)
		s.loadErr = errors.Join(s.loadErr, err)
	} else if found {
		s.darkMode = dark
	}

	return s, nil
}

// LoadError returns the error encountered while opening, if any.
func (s *Store) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Close cancels any pending undo expiry. The store stays usable.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.undo.stopTimer()
	return nil
}

// UndoWindow returns how long deletions stay undoable.
func (s *Store) UndoWindow() time.Duration {
	return s.undoWindow
}

// Now returns the store clock's current time.
func (s *Store) Now() time.Time {
	return s.clock.Now()
}

// Today returns the store clock's current local day.
func (s *Store) Today() Date {
	return Today(s.clock.Now())
}

// saveLocked persists the collection. Callers hold s.mu.
func (s *Store) saveLocked(op string) error {
	if err := s.gateway.Save(cloneTasks(s.tasks)); err != nil {
		s.logger.Warn("unable to save tasks, continuing in memory", "op", op, "err", err)
		return &SaveError{Op: op, Err: err}
	}
	return nil
}

// findLocked returns the index of id, or -1. Callers hold s.mu.
func (s *Store) findLocked(id string) int {
	return indexOf(s.tasks, id)
}
