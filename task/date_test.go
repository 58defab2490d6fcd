package task

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-02-29")
	if err != nil || got != "2024-02-29" {
		t.Fatalf("ParseDate = %q, %v", got, err)
	}

	for _, bad := range []string{"", "2023-02-29", "24-01-01", "2024/01/01", "Jan 1"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q): expected ErrInvalidDate, got %v", bad, err)
		}
	}
}

func TestDateArithmetic(t *testing.T) {
	d := Date("2023-12-30")
	if got := d.AddDays(3); got != "2024-01-02" {
		t.Errorf("AddDays(3) = %s", got)
	}
	if got := d.AddDays(-30); got != "2023-11-30" {
		t.Errorf("AddDays(-30) = %s", got)
	}
	if got := Date("2024-01-10").AddMonths(1); got != "2024-02-10" {
		t.Errorf("AddMonths(1) = %s", got)
	}
	if !Date("2023-12-31").Before("2024-01-01") {
		t.Error("expected string order to match chronological order")
	}
}

func TestTodayUsesLocalDay(t *testing.T) {
	now := time.Date(2024, 1, 10, 23, 30, 0, 0, time.Local)
	if got := Today(now); got != "2024-01-10" {
		t.Errorf("Today = %s, want 2024-01-10", got)
	}
}

func TestDateFormat(t *testing.T) {
	if got := Date("2024-01-05").Format(); got != "Jan 5, 2024" {
		t.Errorf("Format = %q", got)
	}
	if got := Date("garbage").Format(); got != "garbage" {
		t.Errorf("expected invalid dates rendered verbatim, got %q", got)
	}
}

func TestDateJSON(t *testing.T) {
	var holder struct {
		Due *Date `json:"due"`
	}
	if err := json.Unmarshal([]byte(`{"due":"2024-03-01"}`), &holder); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if holder.Due == nil || *holder.Due != "2024-03-01" {
		t.Fatalf("unexpected due: %v", holder.Due)
	}

	if err := json.Unmarshal([]byte(`{"due":null}`), &holder); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if holder.Due != nil {
		t.Error("expected null to clear the date")
	}

	if err := json.Unmarshal([]byte(`{"due":"March 1"}`), &holder); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}
