package main

import (
	"fmt"
	"strings"

	internalstrings "github.com/amonks/tasklist/internal/strings"
	"github.com/amonks/tasklist/task"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/spf13/cobra"
)

// dates
var datesCmd = &cobra.Command{
	Use:   "dates",
	Short: "List dated tasks grouped by when they are due",
	Args:  cobra.NoArgs,
	RunE:  runDates,
}

var (
	datesRange rangeValue
	datesJSON  bool
)

// calendar
var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show a month of due dates",
	Args:  cobra.NoArgs,
	RunE:  runCalendar,
}

var (
	calendarMonth monthValue
	calendarJSON  bool
)

const calendarCellWidth = 14

var (
	calendarTitleStyle   = lipgloss.NewStyle().Bold(true)
	calendarHeaderStyle  = lipgloss.NewStyle().Bold(true).Width(calendarCellWidth)
	calendarCellStyle    = lipgloss.NewStyle().Width(calendarCellWidth).Height(task.MaxTasksPerDay + 2)
	calendarTodayStyle   = lipgloss.NewStyle().Reverse(true)
	calendarOtherStyle   = lipgloss.NewStyle().Faint(true)
	calendarOverdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	calendarDueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("130"))
	calendarFutureStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("25"))
	calendarDoneStyle    = lipgloss.NewStyle().Strikethrough(true).Faint(true)
)

func init() {
	rootCmd.AddCommand(datesCmd, calendarCmd)

	datesCmd.Flags().Var(&datesRange, "range", "Date range (all, today, week, month, overdue)")
	datesCmd.Flags().BoolVar(&datesJSON, "json", false, "Output as JSON")

	calendarCmd.Flags().Var(&calendarMonth, "month", "Month to show (YYYY-MM, default current month)")
	calendarCmd.Flags().BoolVar(&calendarJSON, "json", false, "Output as JSON")
}

func runDates(cmd *cobra.Command, args []string) error {
	dateRange, err := resolveRange(cmd, &datesRange)
	if err != nil {
		return err
	}

	store, err := openTaskStore()
	if err != nil {
		return err
	}
	defer store.Release()

	today := store.Today()
	groups := task.GroupForListView(task.ByDateRange(store.Tasks(), dateRange, today), today)
	if datesJSON {
		return encodeJSONToStdout(groups)
	}

	sections := groups.Sections()
	if len(sections) == 0 {
		fmt.Println(task.EmptyDatesMessage(dateRange))
		return nil
	}

	highlight := taskHighlighter(store)
	for i, section := range sections {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s (%d)\n", section.Title, len(section.Tasks))
		for _, t := range section.Tasks {
			check := "[ ]"
			if t.Completed {
				check = "[x]"
			}
			fmt.Printf("  %s %s %s\n", check, highlight(t.ID), displayText(t))
			fmt.Printf("      Due: %s\n", t.Due().Format())
		}
	}
	return nil
}

func runCalendar(cmd *cobra.Command, args []string) error {
	store, err := openTaskStore()
	if err != nil {
		return err
	}
	defer store.Release()

	today := store.Today()
	month := task.MonthOf(today)
	if calendarMonth.month != nil {
		month = *calendarMonth.month
	}

	cal := task.CalendarGrid(store.Tasks(), month.Year, month.Month, today)
	if calendarJSON {
		return encodeJSONToStdout(cal)
	}
	fmt.Println(renderCalendar(cal))
	return nil
}

func renderCalendar(cal task.Calendar) string {
	headers := make([]string, 0, 7)
	for _, name := range task.Weekdays() {
		headers = append(headers, calendarHeaderStyle.Render(name))
	}

	rows := []string{
		calendarTitleStyle.Render(cal.Month.Title()),
		lipgloss.JoinHorizontal(lipgloss.Top, headers...),
	}
	for _, week := range cal.Weeks {
		cells := make([]string, 0, len(week))
		for _, day := range week {
			cells = append(cells, calendarCellStyle.Render(renderCalendarDay(day)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	lines := strings.Split(lipgloss.JoinVertical(lipgloss.Left, rows...), "\n")
	for i, line := range lines {
		lines[i] = internalstrings.TrimTrailingWhitespace(line)
	}
	return strings.Join(lines, "\n")
}

func renderCalendarDay(day task.Day) string {
	number := fmt.Sprintf("%2d", day.Number)
	switch {
	case day.IsToday:
		number = calendarTodayStyle.Render("[" + strings.TrimSpace(number) + "]")
	case day.OtherMonth:
		number = calendarOtherStyle.Render(number)
	}

	lines := []string{number}
	for _, ct := range day.Tasks {
		text := truncate.StringWithTail(calendarMarker(ct.Class)+" "+displayText(ct.Task), calendarCellWidth-1, "…")
		lines = append(lines, calendarClassStyle(ct.Class).Render(text))
	}
	if day.More > 0 {
		lines = append(lines, fmt.Sprintf("+%d more", day.More))
	}
	return strings.Join(lines, "\n")
}

// calendarMarker distinguishes task classes when color is off.
func calendarMarker(class task.TaskClass) string {
	switch class {
	case task.ClassCompleted:
		return "x"
	case task.ClassOverdue:
		return "!"
	case task.ClassToday:
		return "*"
	default:
		return "-"
	}
}

func calendarClassStyle(class task.TaskClass) lipgloss.Style {
	switch class {
	case task.ClassCompleted:
		return calendarDoneStyle
	case task.ClassOverdue:
		return calendarOverdueStyle
	case task.ClassToday:
		return calendarDueStyle
	default:
		return calendarFutureStyle
	}
}
