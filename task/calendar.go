package task

import (
	"fmt"
	"time"
)

// MaxTasksPerDay is how many tasks a calendar cell lists before collapsing
// the rest into an overflow count.
const MaxTasksPerDay = 3

// Month identifies a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing d.
func MonthOf(d Date) Month {
	t := d.Time()
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(value string) (Month, error) {
	parsed, err := time.Parse("2006-01", value)
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q (expected YYYY-MM)", ErrInvalidDate, value)
	}
	return Month{Year: parsed.Year(), Month: parsed.Month()}, nil
}

// First returns the first day of the month.
func (m Month) First() Date {
	return DateOf(time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC))
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Add returns the month n months away.
func (m Month) Add(n int) Month {
	t := time.Date(m.Year, m.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: t.Year(), Month: t.Month()}
}

// Next returns the following month.
func (m Month) Next() Month {
	return m.Add(1)
}

// Prev returns the preceding month.
func (m Month) Prev() Month {
	return m.Add(-1)
}

// Title renders the month as "January 2024".
func (m Month) Title() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// TaskClass is the visual state of a task in a calendar cell.
type TaskClass string

const (
	ClassCompleted TaskClass = "completed"
	ClassOverdue   TaskClass = "overdue"
	ClassToday     TaskClass = "today"
	ClassFuture    TaskClass = "future"
)

// Classify returns the calendar class of t. Completion wins, then overdue,
// then due today; anything else is future.
func Classify(t Task, today Date) TaskClass {
	switch {
	case t.Completed:
		return ClassCompleted
	case IsOverdue(t, today):
		return ClassOverdue
	case IsDueToday(t, today):
		return ClassToday
	default:
		return ClassFuture
	}
}

// CalendarTask is a task shown in a day cell.
type CalendarTask struct {
	Task  Task      `json:"task"`
	Class TaskClass `json:"class"`
}

// Day is one cell of the calendar grid.
type Day struct {
	Date       Date           `json:"date"`
	Number     int            `json:"number"`
	OtherMonth bool           `json:"otherMonth"`
	IsToday    bool           `json:"isToday"`
	Tasks      []CalendarTask `json:"tasks,omitempty"`
	More       int            `json:"more,omitempty"`
}

// HasTasks reports whether any task is due on the day.
func (d Day) HasTasks() bool {
	return len(d.Tasks) > 0
}

// Calendar is a month laid out in Sunday-first weeks.
type Calendar struct {
	Month Month   `json:"month"`
	Today Date    `json:"today"`
	Weeks [][]Day `json:"weeks"`
}

// Weekdays returns the column headers, Sunday first.
func Weekdays() []string {
	return []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
}

// CalendarGrid lays out the month as whole weeks, padding with days from
// the adjacent months. Only in-month days carry tasks: up to MaxTasksPerDay
// in collection order, with More counting the rest.
func CalendarGrid(tasks []Task, year int, month time.Month, today Date) Calendar {
	m := Month{Year: year, Month: month}
	first := m.First()
	lead := int(first.Time().Weekday())
	days := m.Days()

	total := lead + days
	trail := 0
	if total%7 != 0 {
		trail = 7 - total%7
	}

	byDate := make(map[Date][]Task)
	for _, t := range tasks {
		if t.DueDate != nil {
			byDate[*t.DueDate] = append(byDate[*t.DueDate], t)
		}
	}

	cells := make([]Day, 0, total+trail)
	start := first.AddDays(-lead)
	for i := 0; i < total+trail; i++ {
		date := start.AddDays(i)
		day := Day{
			Date:       date,
			Number:     date.Time().Day(),
			OtherMonth: i < lead || i >= lead+days,
		}
		if !day.OtherMonth {
			day.IsToday = date == today
			due := byDate[date]
			for j, t := range due {
				if j == MaxTasksPerDay {
					day.More = len(due) - MaxTasksPerDay
					break
				}
				day.Tasks = append(day.Tasks, CalendarTask{Task: t, Class: Classify(t, today)})
			}
		}
		cells = append(cells, day)
	}

	weeks := make([][]Day, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}

	return Calendar{Month: m, Today: today, Weeks: weeks}
}
