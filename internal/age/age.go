// Package age computes display ages for task timestamps.
package age

import "time"

// AgeData returns how long ago since was, clamped at zero. ok is false when
// since is unset.
func AgeData(since time.Time, now time.Time) (time.Duration, bool) {
	if since.IsZero() {
		return 0, false
	}
	return clamp(now.Sub(since)), true
}

// Elapsed returns the time from creation to completion. ok is false until
// the task has been completed.
func Elapsed(createdAt time.Time, completedAt *time.Time) (time.Duration, bool) {
	if completedAt == nil || completedAt.IsZero() || createdAt.IsZero() {
		return 0, false
	}
	return clamp(completedAt.Sub(createdAt)), true
}

func clamp(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
