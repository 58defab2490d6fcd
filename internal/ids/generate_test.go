package ids

import (
	"strings"
	"testing"
	"time"
)

func TestGenerate(t *testing.T) {
	id := Generate("task-123", 8)

	if len(id) != 8 {
		t.Fatalf("expected ID length 8, got %d: %q", len(id), id)
	}

	for _, c := range id {
		if !((c >= 'a' && c <= 'z') || (c >= '2' && c <= '7')) {
			t.Errorf("ID contains invalid character %q: %q", c, id)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	id1 := Generate("task-123", 10)
	id2 := Generate("task-123", 10)

	if id1 != id2 {
		t.Errorf("same inputs should produce same ID: got %q and %q", id1, id2)
	}
}

func TestGenerate_DifferentInputs(t *testing.T) {
	id1 := Generate("task-123", 10)
	id2 := Generate("task-999", 10)

	if id1 == id2 {
		t.Error("different inputs should produce different IDs")
	}
}

func TestGenerateWithTimestamp(t *testing.T) {
	timestamp := time.Date(2024, 3, 2, 9, 12, 0, 0, time.UTC)

	id1 := GenerateWithTimestamp("task-123", timestamp, 8)
	id2 := GenerateWithTimestamp("task-123", timestamp, 8)
	if id1 != id2 {
		t.Errorf("same inputs should produce same ID: got %q and %q", id1, id2)
	}

	id3 := GenerateWithTimestamp("task-123", timestamp.Add(time.Nanosecond), 8)
	if id1 == id3 {
		t.Error("different timestamps should produce different IDs")
	}
}

func TestGenerateWithTimestamp_TaskSuffix(t *testing.T) {
	created := time.UnixMilli(1700000000000).UTC()

	seen := make(map[string]bool)
	for _, seed := range []string{"first", "second", "third"} {
		suffix := GenerateWithTimestamp(seed, created, DefaultLength)
		if len(suffix) != 6 {
			t.Fatalf("expected 6-char suffix, got %q", suffix)
		}
		if suffix != strings.ToLower(suffix) {
			t.Errorf("expected lowercase suffix, got %q", suffix)
		}
		if seen[suffix] {
			t.Errorf("duplicate suffix %q for tasks created in the same millisecond", suffix)
		}
		seen[suffix] = true
	}
}

func TestGenerate_NonPositiveLength(t *testing.T) {
	if got := Generate("task", 0); got != "" {
		t.Errorf("expected empty ID for zero length, got %q", got)
	}
}
