package task

import (
	"errors"
	"testing"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		input string
		want  Filter
	}{
		{"", FilterAll},
		{"all", FilterAll},
		{" Active ", FilterActive},
		{"COMPLETED", FilterCompleted},
	}
	for _, tt := range tests {
		got, err := ParseFilter(tt.input)
		if err != nil {
			t.Errorf("ParseFilter(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFilter(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	if _, err := ParseFilter("done"); !errors.Is(err, ErrInvalidFilter) {
		t.Errorf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestFilterNext(t *testing.T) {
	f := FilterAll
	var seen []Filter
	for i := 0; i < 3; i++ {
		f = f.Next()
		seen = append(seen, f)
	}
	want := []Filter{FilterActive, FilterCompleted, FilterAll}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("cycle = %v, want %v", seen, want)
		}
	}
}

func TestByStatus_PartitionsTasks(t *testing.T) {
	tasks := []Task{
		dated("A", "", false),
		dated("B", "", true),
		dated("C", "2024-01-01", false),
		dated("D", "2024-01-20", true),
	}

	active := ByStatus(tasks, FilterActive)
	completed := ByStatus(tasks, FilterCompleted)
	all := ByStatus(tasks, FilterAll)

	if len(active)+len(completed) != len(all) {
		t.Fatalf("active (%d) + completed (%d) != all (%d)", len(active), len(completed), len(all))
	}
	seen := make(map[string]int)
	for _, item := range append(active, completed...) {
		seen[item.ID]++
	}
	for _, item := range all {
		if seen[item.ID] != 1 {
			t.Errorf("task %s appears %d times across active and completed", item.Text, seen[item.ID])
		}
	}
	if got := taskTexts(active); !equalStrings(got, []string{"A", "C"}) {
		t.Errorf("active = %v, want [A C]", got)
	}
	if got := taskTexts(completed); !equalStrings(got, []string{"B", "D"}) {
		t.Errorf("completed = %v, want [B D]", got)
	}
}

func TestIsOverdue(t *testing.T) {
	today := Date("2024-01-10")

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"past and active", dated("a", "2024-01-09", false), true},
		{"past and completed", dated("b", "2024-01-09", true), false},
		{"today", dated("c", "2024-01-10", false), false},
		{"future", dated("d", "2024-01-11", false), false},
		{"undated", dated("e", "", false), false},
		{"across a year boundary", dated("f", "2023-12-31", false), true},
	}
	for _, tt := range tests {
		if got := IsOverdue(tt.task, today); got != tt.want {
			t.Errorf("%s: IsOverdue = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsDueToday_IgnoresCompletion(t *testing.T) {
	today := Date("2024-01-10")
	if !IsDueToday(dated("a", today, true), today) {
		t.Error("expected completed task due today to be due today")
	}
	if IsDueToday(dated("b", "", false), today) {
		t.Error("expected undated task not due today")
	}
}

func TestParseRange(t *testing.T) {
	for _, r := range ValidRanges() {
		got, err := ParseRange(string(r))
		if err != nil || got != r {
			t.Errorf("ParseRange(%q) = %q, %v", r, got, err)
		}
	}
	if got, err := ParseRange(""); err != nil || got != RangeAll {
		t.Errorf("ParseRange(\"\") = %q, %v; want all", got, err)
	}
	if _, err := ParseRange("year"); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestRangeNextWraps(t *testing.T) {
	if got := RangeOverdue.Next(); got != RangeAll {
		t.Errorf("RangeOverdue.Next() = %q, want all", got)
	}
	if got := RangeAll.Next(); got != RangeToday {
		t.Errorf("RangeAll.Next() = %q, want today", got)
	}
}

func TestByDateRange(t *testing.T) {
	today := Date("2024-01-10")
	tasks := []Task{
		dated("undated", "", false),
		dated("later", "2024-03-01", false),
		dated("month-end", "2024-02-10", false),
		dated("week-end", "2024-01-17", false),
		dated("today", "2024-01-10", false),
		dated("overdue", "2024-01-05", false),
		dated("done-past", "2024-01-04", true),
		dated("eight-days", "2024-01-18", false),
	}

	tests := []struct {
		r    Range
		want []string
	}{
		{RangeAll, []string{"done-past", "overdue", "today", "week-end", "eight-days", "month-end", "later"}},
		{RangeToday, []string{"today"}},
		{RangeWeek, []string{"today", "week-end"}},
		{RangeMonth, []string{"today", "week-end", "eight-days", "month-end"}},
		{RangeOverdue, []string{"overdue"}},
	}
	for _, tt := range tests {
		if got := taskTexts(ByDateRange(tasks, tt.r, today)); !equalStrings(got, tt.want) {
			t.Errorf("ByDateRange(%s) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestByDateRange_ExcludesUndated(t *testing.T) {
	tasks := []Task{dated("a", "", false), dated("b", "", true)}
	for _, r := range ValidRanges() {
		if got := ByDateRange(tasks, r, "2024-01-10"); len(got) != 0 {
			t.Errorf("ByDateRange(%s) returned undated tasks: %v", r, taskTexts(got))
		}
	}
}

func TestSortByDueDate(t *testing.T) {
	tasks := []Task{
		dated("none-1", "", false),
		dated("feb", "2024-02-01", false),
		dated("jan-a", "2024-01-01", false),
		dated("none-2", "", false),
		dated("jan-b", "2024-01-01", true),
	}

	got := taskTexts(SortByDueDate(tasks))
	want := []string{"jan-a", "jan-b", "feb", "none-1", "none-2"}
	if !equalStrings(got, want) {
		t.Errorf("SortByDueDate = %v, want %v", got, want)
	}
	if tasks[0].Text != "none-1" {
		t.Error("expected input slice left in place")
	}
}
