package age

import (
	"testing"
	"time"
)

func TestAgeData(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		since time.Time
		want  time.Duration
		ok    bool
	}{
		{name: "uses created time", since: now.Add(-4 * time.Minute), want: 4 * time.Minute, ok: true},
		{name: "clamps future", since: now.Add(2 * time.Minute), want: 0, ok: true},
		{name: "missing time", since: time.Time{}, want: 0, ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := AgeData(tc.since, now)
			if got != tc.want || ok != tc.ok {
				t.Fatalf("expected %s/%t, got %s/%t", tc.want, tc.ok, got, ok)
			}
		})
	}
}

func TestElapsed(t *testing.T) {
	created := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	completed := created.Add(3 * time.Hour)
	earlier := created.Add(-time.Minute)

	cases := []struct {
		name      string
		completed *time.Time
		want      time.Duration
		ok        bool
	}{
		{name: "completed", completed: &completed, want: 3 * time.Hour, ok: true},
		{name: "clamps negative", completed: &earlier, want: 0, ok: true},
		{name: "active", completed: nil, want: 0, ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Elapsed(created, tc.completed)
			if got != tc.want || ok != tc.ok {
				t.Fatalf("expected %s/%t, got %s/%t", tc.want, tc.ok, got, ok)
			}
		})
	}
}
