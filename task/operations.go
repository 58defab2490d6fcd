package task

import "fmt"

// Add appends a new task. Text is trimmed and sanitized; ErrEmptyText is
// returned, and nothing changes, when it ends up empty.
func (s *Store) Add(text string, due *Date) (Task, error) {
	if due != nil && !due.IsValid() {
		return Task{}, fmt.Errorf("%w: %q", ErrInvalidDate, string(*due))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := New(text, due, s.clock.Now())
	if err != nil {
		return Task{}, err
	}

	s.tasks = append(s.tasks, t)
	return t.clone(), s.saveLocked("add")
}

// Toggle flips a task between active and completed.
func (s *Store) Toggle(id string) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findLocked(id)
	if i < 0 {
		return Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	s.tasks[i].toggle(s.clock.Now())
	return s.tasks[i].clone(), s.saveLocked("toggle")
}

// Delete removes a task and keeps it in the undo buffer for the undo
// window. A pending deletion from an earlier call is discarded. The removed
// task is returned so callers can show its text.
func (s *Store) Delete(id string) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findLocked(id)
	if i < 0 {
		return Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	removed := s.tasks[i]
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)

	now := s.clock.Now()
	generation := s.undo.record(removed, i, now.Add(s.undoWindow))
	s.undo.timer = s.clock.AfterFunc(s.undoWindow, func() {
		s.expireUndo(generation)
	})

	return removed.clone(), s.saveLocked("delete")
}

func (s *Store) expireUndo(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.undo.expire(generation) {
		s.logger.Debug("undo window expired")
	}
}

// UndoDelete restores the most recently deleted task at the position it
// was deleted from. ErrNothingToUndo is returned when the buffer is empty or
// the window has passed.
func (s *Store) UndoDelete() (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	restored, index, ok := s.undo.take(s.clock.Now())
	if !ok {
		return Task{}, ErrNothingToUndo
	}

	if index > len(s.tasks) {
		index = len(s.tasks)
	}
	s.tasks = append(s.tasks, Task{})
	copy(s.tasks[index+1:], s.tasks[index:])
	s.tasks[index] = restored

	return restored.clone(), s.saveLocked("undo")
}

// PendingUndo returns the task that UndoDelete would restore.
func (s *Store) PendingUndo() (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.undo.peek(s.clock.Now())
	if !ok {
		return Task{}, false
	}
	return t.clone(), true
}

// SetDueDate sets a task's due date. Past dates are allowed.
func (s *Store) SetDueDate(id string, due Date) (Task, error) {
	if !due.IsValid() {
		return Task{}, fmt.Errorf("%w: %q", ErrInvalidDate, string(due))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findLocked(id)
	if i < 0 {
		return Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	s.tasks[i].DueDate = DatePtr(due)
	return s.tasks[i].clone(), s.saveLocked("set due date")
}

// ClearDueDate removes a task's due date.
func (s *Store) ClearDueDate(id string) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findLocked(id)
	if i < 0 {
		return Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	s.tasks[i].DueDate = nil
	return s.tasks[i].clone(), s.saveLocked("clear due date")
}

// Query returns the tasks matching filter in collection order.
func (s *Store) Query(filter Filter) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ByStatus(cloneTasks(s.tasks), filter)
}

// Tasks returns a snapshot of the whole collection.
func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTasks(s.tasks)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Get returns the task with the given ID.
func (s *Store) Get(id string) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findLocked(id)
	if i < 0 {
		return Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return s.tasks[i].clone(), nil
}

// Resolve finds a task by 1-based position or unique ID prefix.
func (s *Store) Resolve(ref string) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := resolveRef(s.tasks, ref)
	if err != nil {
		return Task{}, err
	}
	return s.tasks[i].clone(), nil
}

// IDIndex returns an index of all task IDs in the store.
func (s *Store) IDIndex() IDIndex {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NewIDIndex(s.tasks)
}

// DarkMode returns the dark mode preference.
func (s *Store) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.darkMode
}

// SetDarkMode updates and persists the dark mode preference.
func (s *Store) SetDarkMode(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setDarkModeLocked(enabled)
}

// ToggleDarkMode flips the dark mode preference and returns the new value.
func (s *Store) ToggleDarkMode() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	enabled := !s.darkMode
	return enabled, s.setDarkModeLocked(enabled)
}

func (s *Store) setDarkModeLocked(enabled bool) error {
	s.darkMode = enabled
	if err := s.gateway.SavePreference(enabled); err != nil {
		s.logger.Warn("unable to save dark mode preference", "err", err)
		return &SaveError{Op: "dark mode", Err: err}
	}
	return nil
}
