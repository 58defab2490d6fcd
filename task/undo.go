package task

import "time"

// DefaultUndoWindow is how long a deleted task stays recoverable.
const DefaultUndoWindow = 5 * time.Second

// undoBuffer remembers the most recent deletion. A new deletion replaces
// the previous one; the replaced task is no longer recoverable.
type undoBuffer struct {
	task       Task
	index      int
	expiresAt  time.Time
	timer      Timer
	generation uint64
	full       bool
}

// record stores a deletion, cancelling any pending expiry, and returns the
// generation the new expiry callback must present to clear the slot.
func (b *undoBuffer) record(t Task, index int, expiresAt time.Time) uint64 {
	b.stopTimer()
	b.generation++
	b.task = t
	b.index = index
	b.expiresAt = expiresAt
	b.full = true
	return b.generation
}

// take returns the buffered deletion and empties the slot. ok is false when
// the slot is empty or its window has passed.
func (b *undoBuffer) take(now time.Time) (Task, int, bool) {
	if !b.full {
		return Task{}, 0, false
	}
	if !now.Before(b.expiresAt) {
		b.clear()
		return Task{}, 0, false
	}
	t, index := b.task, b.index
	b.clear()
	return t, index, true
}

// peek reports the buffered task without consuming it.
func (b *undoBuffer) peek(now time.Time) (Task, bool) {
	if !b.full || !now.Before(b.expiresAt) {
		return Task{}, false
	}
	return b.task, true
}

// expire clears the slot if generation still identifies its contents.
func (b *undoBuffer) expire(generation uint64) bool {
	if !b.full || b.generation != generation {
		return false
	}
	b.task = Task{}
	b.full = false
	b.timer = nil
	return true
}

func (b *undoBuffer) clear() {
	b.stopTimer()
	b.task = Task{}
	b.index = 0
	b.full = false
}

func (b *undoBuffer) stopTimer() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
