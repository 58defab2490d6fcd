package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/amonks/tasklist/internal/age"
	"github.com/amonks/tasklist/internal/markdown"
	"github.com/amonks/tasklist/internal/ui"
	"github.com/amonks/tasklist/task"
	"github.com/spf13/cobra"
)

// add
var addCmd = &cobra.Command{
	Use:   "add <text>...",
	Short: "Add a task",
	Long: `Add a task.

All arguments are joined into the task text. Markup is stripped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var addDue dateValue

// list
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var (
	listFilter filterValue
	listJSON   bool
)

// toggle
var toggleCmd = &cobra.Command{
	Use:   "toggle <ref>...",
	Short: "Toggle tasks between active and completed",
	Long: `Toggle tasks between active and completed.

A ref is a 1-based position in the full list or a unique ID prefix.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runToggle,
}

// delete
var deleteCmd = &cobra.Command{
	Use:   "delete <ref>...",
	Short: "Delete tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDelete,
}

// due
var dueCmd = &cobra.Command{
	Use:   "due <ref> [YYYY-MM-DD|today|tomorrow]",
	Short: "Set or clear a task's due date",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runDue,
}

var dueClear bool

// show
var showCmd = &cobra.Command{
	Use:   "show <ref>",
	Short: "Show a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var showJSON bool

const showTextWidth = 72

// stats
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count tasks by status",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var statsJSON bool

func init() {
	rootCmd.AddCommand(addCmd, listCmd, toggleCmd, deleteCmd, dueCmd, showCmd, statsCmd)

	addCmd.Flags().Var(&addDue, "due", "Due date (YYYY-MM-DD, today, tomorrow)")

	listCmd.Flags().Var(&listFilter, "filter", "Status filter (all, active, completed)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")

	dueCmd.Flags().BoolVar(&dueClear, "clear", false, "Remove the due date")

	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")

	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
}

func runAdd(cmd *cobra.Command, args []string) error {
	store, err := openTaskStore()
	if err != nil {
		return err
	}
	defer store.Release()

	created, err := store.Add(strings.Join(args, " "), addDue.date)
	if errors.Is(err, task.ErrEmptyText) {
		return fmt.Errorf("%w: nothing left after removing markup and whitespace", err)
	}
	if err != nil && !task.IsSaveWarning(err) {
		return err
	}

	highlight := taskHighlighter(store)
	line := fmt.Sprintf("Added task %s: %s", highlight(created.ID), displayText(created))
	if created.HasDueDate() {
		line += fmt.Sprintf(" (due %s)", created.Due().Format())
	}
	fmt.Println(line)
	return err
}

func runList(cmd *cobra.Command, args []string) error {
	filter, err := resolveFilter(cmd, &listFilter)
	if err != nil {
		return err
	}

	store, err := openTaskStore()
	if err != nil {
		return err
	}
	defer store.Release()

	tasks := store.Query(filter)
	if listJSON {
		return encodeJSONToStdout(tasks)
	}

	all := store.Tasks()
	if len(tasks) == 0 {
		fmt.Println(task.EmptyMessage(filter, len(all)))
		return nil
	}

	fmt.Print(formatTaskTable(tasks, positions(all), store.IDIndex().PrefixLengths(), store.Now()))
	fmt.Println(statsFooter(all, store.Today()))
	return nil
}

// positions maps task IDs to their 1-based position in the full list, the
// number accepted as a ref.
func positions(tasks []task.Task) map[string]int {
	result := make(map[string]int, len(tasks))
	for i, t := range tasks {
		result[t.ID] = i + 1
	}
	return result
}

func formatTaskTable(tasks []task.Task, positions map[string]int, prefixLengths map[string]int, now time.Time) string {
	today := task.Today(now)
	builder := ui.NewTableBuilder([]string{"#", "ID", "DONE", "DUE", "AGE", "TEXT"}, len(tasks))
	for _, t := range tasks {
		done := ""
		if t.Completed {
			done = "x"
		}
		builder.AddRow(
			strconv.Itoa(positions[t.ID]),
			ui.HighlightID(t.ID, ui.PrefixLength(prefixLengths, t.ID)),
			done,
			ui.FormatDue(t.Due(), today),
			ui.FormatTimeAgo(t.CreatedAt, now),
			ui.TruncateTableCell(displayText(t)),
		)
	}
	return builder.String()
}

func statsFooter(tasks []task.Task, today task.Date) string {
	stats := task.Summarize(tasks)
	noun := "tasks"
	if stats.Total == 1 {
		noun = "task"
	}
	footer := fmt.Sprintf("%d %s: %d active, %d completed", stats.Total, noun, stats.Active, stats.Completed)
	if overdue := task.OverdueCount(tasks, today); overdue > 0 {
		footer += fmt.Sprintf(", %d overdue", overdue)
	}
	return footer
}

// resolveRefs maps refs to IDs up front, since positions shift as tasks
// are deleted.
func resolveRefs(store *taskStore, refs []string) ([]task.Task, error) {
	resolved := make([]task.Task, 0, len(refs))
	for _, ref := range refs {
		t, err := store.Resolve(ref)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, t)
	}
	return resolved, nil
}

func runToggle(cmd *cobra.Command, args []string) error {
	return runTaskAction(args, func(store *taskStore, t task.Task, highlight func(string) string) error {
		updated, err := store.Toggle(t.ID)
		if err != nil && !task.IsSaveWarning(err) {
			return err
		}
		verb := "Reopened"
		if updated.Completed {
			verb = "Completed"
		}
		fmt.Printf("%s task %s: %s\n", verb, highlight(updated.ID), displayText(updated))
		return err
	})
}

func runDelete(cmd *cobra.Command, args []string) error {
	return runTaskAction(args, func(store *taskStore, t task.Task, highlight func(string) string) error {
		removed, err := store.Delete(t.ID)
		if err != nil && !task.IsSaveWarning(err) {
			return err
		}
		fmt.Printf("Deleted task %s: %s\n", highlight(removed.ID), displayText(removed))
		return err
	})
}

func runTaskAction(refs []string, action func(*taskStore, task.Task, func(string) string) error) error {
	store, err := openTaskStore()
	if err != nil {
		return err
	}
	defer store.Release()

	targets, err := resolveRefs(store, refs)
	if err != nil {
		return err
	}

	highlight := taskHighlighter(store)
	return applyToTargets(targets, func(t task.Task) error {
		return action(store, t, highlight)
	})
}

// applyToTargets runs action on each target in order. Save warnings are
// collected and the loop continues; any other error stops it.
func applyToTargets(targets []task.Task, action func(task.Task) error) error {
	var warnings []error
	for _, t := range targets {
		err := action(t)
		if err == nil {
			continue
		}
		if !task.IsSaveWarning(err) {
			return errors.Join(append(warnings, err)...)
		}
		warnings = append(warnings, err)
	}
	return errors.Join(warnings...)
}

func runDue(cmd *cobra.Command, args []string) error {
	if dueClear == (len(args) == 2) {
		return fmt.Errorf("provide either a date or --clear")
	}

	var due task.Date
	if !dueClear {
		parsed, err := parseDateArg(args[1])
		if err != nil {
			return err
		}
		due = parsed
	}

	store, err := openTaskStore()
	if err != nil {
		return err
	}
	defer store.Release()

	target, err := store.Resolve(args[0])
	if err != nil {
		return err
	}
	highlight := taskHighlighter(store)

	if dueClear {
		updated, err := store.ClearDueDate(target.ID)
		if err != nil && !task.IsSaveWarning(err) {
			return err
		}
		fmt.Printf("Cleared due date of %s: %s\n", highlight(updated.ID), displayText(updated))
		return err
	}

	updated, err := store.SetDueDate(target.ID, due)
	if err != nil && !task.IsSaveWarning(err) {
		return err
	}
	fmt.Printf("Task %s is due %s: %s\n", highlight(updated.ID), due.Format(), displayText(updated))
	return err
}

func runShow(cmd *cobra.Command, args []string) error {
	store, err := openTaskStore()
	if err != nil {
		return err
	}
	defer store.Release()

	t, err := store.Resolve(args[0])
	if err != nil {
		return err
	}
	if showJSON {
		return encodeJSONToStdout(t)
	}

	printTaskDetail(t, taskHighlighter(store), store.Today())
	return nil
}

// printTaskDetail prints detailed information about a task.
func printTaskDetail(t task.Task, highlight func(string) string, today task.Date) {
	status := "active"
	if t.Completed {
		status = "completed"
	}
	if task.IsOverdue(t, today) {
		status = "overdue"
	}

	fmt.Printf("ID:        %s\n", highlight(t.ID))
	fmt.Printf("Status:    %s\n", status)
	if t.HasDueDate() {
		fmt.Printf("Due:       %s (%s)\n", t.Due().Format(), ui.FormatDue(t.Due(), today))
	}
	fmt.Printf("Created:   %s\n", t.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	if t.DateCompleted != nil {
		fmt.Printf("Completed: %s\n", t.DateCompleted.Local().Format("2006-01-02 15:04:05"))
		if elapsed, ok := age.Elapsed(t.CreatedAt, t.DateCompleted); ok {
			fmt.Printf("Took:      %s\n", ui.FormatDurationShort(elapsed))
		}
	}

	fmt.Printf("\n%s\n", markdown.SafeRender(showTextWidth, 0, []byte(task.PlainText(t.Text))))
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := openTaskStore()
	if err != nil {
		return err
	}
	defer store.Release()

	tasks := store.Tasks()
	stats := task.Summarize(tasks)
	overdue := task.OverdueCount(tasks, store.Today())

	if statsJSON {
		return encodeJSONToStdout(struct {
			task.Stats
			Overdue int `json:"overdue"`
		}{stats, overdue})
	}

	fmt.Printf("Total:     %d\n", stats.Total)
	fmt.Printf("Active:    %d\n", stats.Active)
	fmt.Printf("Completed: %d\n", stats.Completed)
	fmt.Printf("Overdue:   %d\n", overdue)
	return nil
}
