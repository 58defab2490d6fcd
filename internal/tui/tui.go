// Package tui is the interactive task list: a tasks view with a status
// filter, a dated view grouped by due date, and a month calendar.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	internalstrings "github.com/amonks/tasklist/internal/strings"
	"github.com/amonks/tasklist/internal/ui"
	"github.com/amonks/tasklist/task"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/reflow/truncate"
)

type view int

const (
	viewTasks view = iota
	viewDates
	viewCalendar
)

var viewLabels = []string{"[1] Tasks", "[2] Dates", "[3] Calendar"}

type inputMode int

const (
	inputNone inputMode = iota
	inputAdd
	inputQuickText
	inputQuickDue
	inputDue
)

type statusLevel int

const (
	statusInfo statusLevel = iota
	statusError
)

const undoPollInterval = 250 * time.Millisecond

// saveWarning is shown whenever a change could not be persisted.
const saveWarning = "Unable to save tasks. Changes will be lost when you quit."

type undoTickMsg struct{}

// Options configures the initial state of the UI.
type Options struct {
	Filter task.Filter
	Range  task.Range

	// Month is the calendar month shown first. Zero means the current month.
	Month task.Month

	Logger *log.Logger
}

// Run starts the UI on the alternate screen and blocks until the user quits
// or ctx is cancelled.
func Run(ctx context.Context, store *task.Store, opts Options) error {
	if store == nil {
		return fmt.Errorf("task store is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	program := tea.NewProgram(newModel(store, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type model struct {
	store  *task.Store
	logger *log.Logger
	theme  theme

	width  int
	height int

	view      view
	filter    task.Filter
	dateRange task.Range
	month     task.Month
	cursor    int

	mode        inputMode
	input       textinput.Model
	pendingText string
	editID      string

	status      string
	statusLevel statusLevel
	undoShown   bool
}

func newModel(store *task.Store, opts Options) model {
	if opts.Filter == "" {
		opts.Filter = task.FilterAll
	}
	if opts.Range == "" {
		opts.Range = task.RangeAll
	}
	if opts.Month == (task.Month{}) {
		opts.Month = task.MonthOf(store.Today())
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	input := textinput.New()
	input.CharLimit = 500

	m := model{
		store:     store,
		logger:    opts.Logger,
		theme:     newTheme(store.DarkMode()),
		view:      viewTasks,
		filter:    opts.Filter,
		dateRange: opts.Range,
		month:     opts.Month,
		input:     input,
	}
	if err := store.LoadError(); err != nil {
		m.logger.Warn("unable to load saved tasks", "err", err)
		m.setStatus("Unable to load saved tasks. Starting with a fresh task list.", statusError)
	}
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case undoTickMsg:
		return m.handleUndoTick()
	case tea.KeyMsg:
		if m.mode != inputNone {
			return m.handleInputKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		m.switchView((m.view + 1) % 3)
	case "shift+tab":
		m.switchView((m.view + 2) % 3)
	case "1":
		m.switchView(viewTasks)
	case "2":
		m.switchView(viewDates)
	case "3":
		m.switchView(viewCalendar)
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "a":
		return m, m.startInput(inputAdd, "New task: ", "")
	case "D":
		return m, m.startInput(inputQuickText, "New task: ", "")
	case " ", "x", "enter":
		m.toggleSelected()
	case "d", "delete":
		return m, m.deleteSelected()
	case "u":
		m.undo()
	case "t":
		selected, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.editID = selected.ID
		initial := string(selected.Due())
		if initial == "" {
			initial = string(m.store.Today())
		}
		return m, m.startInput(inputDue, "Due (YYYY-MM-DD, empty clears): ", initial)
	case "T":
		m.clearSelectedDue()
	case "f":
		if m.view == viewTasks {
			m.filter = m.filter.Next()
			m.clampCursor()
		}
	case "r":
		if m.view == viewDates {
			m.dateRange = m.dateRange.Next()
			m.clampCursor()
		}
	case "m":
		m.toggleDarkMode()
	case "[":
		m.month = m.month.Prev()
	case "]":
		m.month = m.month.Next()
	case ".":
		m.month = task.MonthOf(m.store.Today())
	}
	return m, nil
}

func (m model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.stopInput()
		return m, nil
	case tea.KeyEnter:
		return m.submitInput()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) startInput(mode inputMode, prompt, value string) tea.Cmd {
	m.mode = mode
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *model) stopInput() {
	m.mode = inputNone
	m.pendingText = ""
	m.editID = ""
	m.input.Blur()
	m.input.SetValue("")
}

func (m model) submitInput() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	switch m.mode {
	case inputAdd:
		m.addTask(value, nil)
	case inputQuickText:
		if internalstrings.IsBlank(value) {
			m.stopInput()
			return m, nil
		}
		m.pendingText = value
		return m, m.startInput(inputQuickDue, "Due (YYYY-MM-DD): ", string(m.store.Today()))
	case inputQuickDue:
		due, err := task.ParseDate(internalstrings.TrimSpace(value))
		if err != nil {
			m.setStatus(err.Error(), statusError)
			return m, nil
		}
		m.addTask(m.pendingText, &due)
	case inputDue:
		m.setDue(m.editID, value)
	}
	m.stopInput()
	return m, nil
}

func (m *model) addTask(text string, due *task.Date) {
	created, err := m.store.Add(text, due)
	if errors.Is(err, task.ErrEmptyText) {
		return
	}
	m.report(err, fmt.Sprintf("Added %q.", task.PlainText(created.Text)))
}

func (m *model) setDue(id, value string) {
	value = internalstrings.TrimSpace(value)
	if value == "" {
		_, err := m.store.ClearDueDate(id)
		m.report(err, "Cleared due date.")
		return
	}
	due, err := task.ParseDate(value)
	if err != nil {
		m.setStatus(err.Error(), statusError)
		return
	}
	_, err = m.store.SetDueDate(id, due)
	m.report(err, "Due "+due.Format()+".")
}

func (m *model) toggleSelected() {
	selected, ok := m.selected()
	if !ok {
		return
	}
	updated, err := m.store.Toggle(selected.ID)
	msg := "Marked active."
	if updated.Completed {
		msg = "Marked complete."
	}
	m.report(err, msg)
	m.clampCursor()
}

func (m *model) deleteSelected() tea.Cmd {
	selected, ok := m.selected()
	if !ok {
		return nil
	}
	removed, err := m.store.Delete(selected.ID)
	m.clampCursor()
	if err != nil && !task.IsSaveWarning(err) {
		m.setStatus(err.Error(), statusError)
		return nil
	}
	if err != nil {
		m.logger.Warn("unable to save deletion", "err", err)
	}
	m.setStatus(fmt.Sprintf("Deleted %q. Press u to undo.", task.PlainText(removed.Text)), statusInfo)
	m.undoShown = true
	return undoTick()
}

func (m *model) undo() {
	restored, err := m.store.UndoDelete()
	if errors.Is(err, task.ErrNothingToUndo) {
		m.setStatus("Nothing to undo.", statusInfo)
		m.undoShown = false
		return
	}
	m.undoShown = false
	m.report(err, fmt.Sprintf("Restored %q.", task.PlainText(restored.Text)))
}

func (m *model) clearSelectedDue() {
	selected, ok := m.selected()
	if !ok || !selected.HasDueDate() {
		return
	}
	_, err := m.store.ClearDueDate(selected.ID)
	m.report(err, "Cleared due date.")
	m.clampCursor()
}

func (m *model) toggleDarkMode() {
	dark, err := m.store.ToggleDarkMode()
	m.theme = newTheme(dark)
	if err != nil {
		m.logger.Warn("unable to save theme", "err", err)
		m.setStatus(saveWarning, statusError)
	}
}

func (m model) handleUndoTick() (tea.Model, tea.Cmd) {
	if !m.undoShown {
		return m, nil
	}
	if _, pending := m.store.PendingUndo(); pending {
		return m, undoTick()
	}
	m.undoShown = false
	m.setStatus("", statusInfo)
	return m, nil
}

func undoTick() tea.Cmd {
	return tea.Tick(undoPollInterval, func(time.Time) tea.Msg {
		return undoTickMsg{}
	})
}

// report shows success, or the error that replaced it. Save warnings keep
// the change in memory, so they are logged rather than treated as failure.
func (m *model) report(err error, success string) {
	switch {
	case err == nil:
		m.setStatus(success, statusInfo)
	case task.IsSaveWarning(err):
		m.logger.Warn("unable to save tasks", "err", err)
		m.setStatus(saveWarning, statusError)
	default:
		m.setStatus(err.Error(), statusError)
	}
}

func (m *model) setStatus(text string, level statusLevel) {
	m.status = text
	m.statusLevel = level
}

func (m *model) switchView(v view) {
	m.view = v
	m.cursor = 0
}

func (m *model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *model) clampCursor() {
	n := len(m.visibleTasks())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// visibleTasks returns the selectable tasks of the current view, in the
// order they are drawn.
func (m model) visibleTasks() []task.Task {
	switch m.view {
	case viewTasks:
		return m.store.Query(m.filter)
	case viewDates:
		var tasks []task.Task
		for _, section := range m.dateSections() {
			tasks = append(tasks, section.Tasks...)
		}
		return tasks
	default:
		return nil
	}
}

func (m model) selected() (task.Task, bool) {
	tasks := m.visibleTasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return task.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m model) dateSections() []task.Section {
	today := m.store.Today()
	dated := task.ByDateRange(m.store.Tasks(), m.dateRange, today)
	return task.GroupForListView(dated, today).Sections()
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading tasks..."
	}

	footer := []string{}
	if m.mode != inputNone {
		footer = append(footer, m.input.View())
	}
	if line := m.renderStatusLine(); line != "" {
		footer = append(footer, line)
	}
	footer = append(footer, m.renderHelpLine())

	contentHeight := m.height - 1 - len(footer) - 2
	if contentHeight < 1 {
		contentHeight = 1
	}

	var body string
	switch m.view {
	case viewDates:
		body = m.renderDates(contentHeight)
	case viewCalendar:
		body = m.renderCalendar()
	default:
		body = m.renderTasks(contentHeight)
	}
	pane := m.theme.pane.Width(max(m.width-2, 1)).Render(body)

	return strings.Join(append([]string{m.renderTabs(), pane}, footer...), "\n")
}

func (m model) renderTabs() string {
	parts := make([]string, 0, len(viewLabels))
	for i, label := range viewLabels {
		style := m.theme.tabInactive
		if view(i) == m.view {
			style = m.theme.tabActive
		}
		parts = append(parts, style.Render(label))
	}
	content := lipgloss.JoinHorizontal(lipgloss.Top, parts...)

	stats := task.Summarize(m.store.Tasks())
	summary := fmt.Sprintf("%d total, %d active, %d completed", stats.Total, stats.Active, stats.Completed)
	if overdue := task.OverdueCount(m.store.Tasks(), m.store.Today()); overdue > 0 {
		summary += fmt.Sprintf(", %d overdue", overdue)
	}
	spacerWidth := m.width - lipgloss.Width(content) - lipgloss.Width(summary) - 1
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	return m.theme.tabBar.Width(m.width).Render(content + strings.Repeat(" ", spacerWidth) + summary)
}

func (m model) renderTasks(height int) string {
	tasks := m.store.Query(m.filter)
	header := m.theme.label.Render("Filter: ") + m.theme.muted.Render(string(m.filter))
	if len(tasks) == 0 {
		return header + "\n\n" + m.theme.muted.Render(task.EmptyMessage(m.filter, m.store.Len()))
	}

	today := m.store.Today()
	lines := make([]string, 0, len(tasks))
	for i, t := range tasks {
		lines = append(lines, m.renderTaskLine(t, i == m.cursor, today, false))
	}
	return header + "\n\n" + strings.Join(scrollWindow(lines, m.cursor, height-2), "\n")
}

func (m model) renderDates(height int) string {
	header := m.theme.label.Render("Range: ") + m.theme.muted.Render(string(m.dateRange))
	sections := m.dateSections()
	if len(sections) == 0 {
		return header + "\n\n" + m.theme.muted.Render(task.EmptyDatesMessage(m.dateRange))
	}

	today := m.store.Today()
	var lines []string
	cursorLine := 0
	index := 0
	for _, section := range sections {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, m.theme.section.Render(fmt.Sprintf("%s (%d)", section.Title, len(section.Tasks))))
		for _, t := range section.Tasks {
			if index == m.cursor {
				cursorLine = len(lines)
			}
			lines = append(lines, m.renderTaskLine(t, index == m.cursor, today, true))
			index++
		}
	}
	return header + "\n\n" + strings.Join(scrollWindow(lines, cursorLine, height-2), "\n")
}

func (m model) renderTaskLine(t task.Task, selected bool, today task.Date, longDue bool) string {
	marker := "  "
	if selected {
		marker = m.theme.cursor.Render("> ")
	}
	check := "[ ]"
	textStyle := m.theme.text
	if t.Completed {
		check = "[x]"
		textStyle = m.theme.done
	}

	line := marker + check + " " + textStyle.Render(internalstrings.NormalizeWhitespace(task.PlainText(t.Text)))
	if !t.HasDueDate() {
		return line
	}
	due := ui.FormatDue(t.Due(), today)
	if longDue {
		due = "Due: " + t.Due().Format()
	}
	return line + "  " + m.classStyle(task.Classify(t, today)).Render(due)
}

func (m model) classStyle(class task.TaskClass) lipgloss.Style {
	switch class {
	case task.ClassOverdue:
		return m.theme.overdue
	case task.ClassToday:
		return m.theme.today
	case task.ClassFuture:
		return m.theme.future
	default:
		return m.theme.done
	}
}

func (m model) renderCalendar() string {
	today := m.store.Today()
	cal := task.CalendarGrid(m.store.Tasks(), m.month.Year, m.month.Month, today)

	cellWidth := (m.width - 4) / 7
	if cellWidth < 6 {
		cellWidth = 6
	}
	cell := lipgloss.NewStyle().Width(cellWidth).Height(task.MaxTasksPerDay + 2)

	headers := make([]string, 0, 7)
	for _, name := range task.Weekdays() {
		headers = append(headers, m.theme.label.Width(cellWidth).Render(name))
	}

	rows := []string{
		m.theme.section.Render(cal.Month.Title()),
		lipgloss.JoinHorizontal(lipgloss.Top, headers...),
	}
	for _, week := range cal.Weeks {
		cells := make([]string, 0, len(week))
		for _, day := range week {
			cells = append(cells, cell.Render(m.renderDay(day, cellWidth)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m model) renderDay(day task.Day, width int) string {
	number := fmt.Sprintf("%2d", day.Number)
	switch {
	case day.IsToday:
		number = m.theme.todayCell.Render(number)
	case day.OtherMonth:
		number = m.theme.otherDay.Render(number)
	}

	lines := []string{number}
	for _, ct := range day.Tasks {
		text := truncate.StringWithTail(task.PlainText(ct.Task.Text), uint(width-1), "…")
		lines = append(lines, m.classStyle(ct.Class).Render(text))
	}
	if day.More > 0 {
		lines = append(lines, m.theme.muted.Render(fmt.Sprintf("+%d more", day.More)))
	}
	return strings.Join(lines, "\n")
}

func (m model) renderStatusLine() string {
	if internalstrings.IsBlank(m.status) {
		return ""
	}
	style := m.theme.statusInfo
	if m.statusLevel == statusError {
		style = m.theme.statusError
	}
	return style.Render(m.status)
}

func (m model) renderHelpLine() string {
	text := m.helpSummary()
	return m.theme.muted.Render(truncate.StringWithTail(text, uint(max(m.width, 1)), "..."))
}

func (m model) helpSummary() string {
	if m.mode != inputNone {
		return "Keys: enter save | esc cancel"
	}
	switch m.view {
	case viewDates:
		return "Keys: up/down move | space toggle | d delete | u undo | t due | T clear due | r range | D quick add | m theme | tab switch | q quit"
	case viewCalendar:
		return "Keys: [ prev month | ] next month | . this month | D quick add | m theme | tab switch | q quit"
	default:
		return "Keys: up/down move | a add | space toggle | d delete | u undo | t due | T clear due | f filter | m theme | tab switch | q quit"
	}
}

// scrollWindow returns at most height lines, keeping cursor visible.
func scrollWindow(lines []string, cursor, height int) []string {
	if height < 1 {
		height = 1
	}
	if len(lines) <= height {
		return lines
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > len(lines) {
		start = len(lines) - height
	}
	return lines[start : start+height]
}
