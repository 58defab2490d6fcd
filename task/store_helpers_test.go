package task

import (
	"errors"
	"sort"
	"sync"
	"testing"
	"time"
)

var errQuotaExceeded = errors.New("quota exceeded")

// memoryGateway is an in-memory Gateway that can be told to fail.
type memoryGateway struct {
	tasks       []Task
	found       bool
	loadErr     error
	saveErr     error
	saves       int
	dark        bool
	darkFound   bool
	darkErr     error
	darkSaveErr error
}

func (g *memoryGateway) Load() ([]Task, bool, error) {
	if g.loadErr != nil {
		return []Task{}, true, g.loadErr
	}
	return cloneTasks(g.tasks), g.found, nil
}

func (g *memoryGateway) Save(tasks []Task) error {
	if g.saveErr != nil {
		return g.saveErr
	}
	g.saves++
	g.tasks = cloneTasks(tasks)
	g.found = true
	return nil
}

func (g *memoryGateway) LoadPreference() (bool, bool, error) {
	return g.dark, g.darkFound, g.darkErr
}

func (g *memoryGateway) SavePreference(value bool) error {
	if g.darkSaveErr != nil {
		return g.darkSaveErr
	}
	g.dark = value
	g.darkFound = true
	return nil
}

// manualClock is a Clock whose time only moves when Advance is called.
// Due callbacks run synchronously inside Advance.
type manualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	at      time.Time
	fn      func()
	stopped bool
	fired   bool
}

func newManualClock(now time.Time) *manualClock {
	return &manualClock{now: now}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	timer := &manualTimer{clock: c, at: c.now.Add(d), fn: fn}
	c.timers = append(c.timers, timer)
	return timer
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*manualTimer
	for _, timer := range c.timers {
		if !timer.stopped && !timer.fired && !timer.at.After(c.now) {
			timer.fired = true
			due = append(due, timer)
		}
	}
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, timer := range due {
		timer.fn()
	}
}

func (c *manualClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, timer := range c.timers {
		if !timer.stopped && !timer.fired {
			count++
		}
	}
	return count
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// testNow is 2024-01-10 12:00 local time.
var testNow = time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local)

func newTestStore(t *testing.T) (*Store, *memoryGateway, *manualClock) {
	t.Helper()

	gateway := &memoryGateway{}
	clock := newManualClock(testNow)
	store, err := Open(gateway, OpenOptions{Clock: clock})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, gateway, clock
}

func mustAdd(t *testing.T, store *Store, text string, due *Date) Task {
	t.Helper()

	created, err := store.Add(text, due)
	if err != nil {
		t.Fatalf("failed to add %q: %v", text, err)
	}
	return created
}

func taskTexts(tasks []Task) []string {
	texts := make([]string, 0, len(tasks))
	for _, t := range tasks {
		texts = append(texts, t.Text)
	}
	return texts
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// dated builds a task directly, bypassing the store.
func dated(text string, due Date, completed bool) Task {
	t := Task{ID: "id-" + text, Text: text, CreatedAt: testNow.UTC()}
	if due != "" {
		t.DueDate = DatePtr(due)
	}
	if completed {
		t.Completed = true
		at := testNow.UTC()
		t.DateCompleted = &at
	}
	return t
}
