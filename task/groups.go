package task

// Bucket names a section of the dated list view.
type Bucket string

const (
	BucketOverdue  Bucket = "overdue"
	BucketToday    Bucket = "today"
	BucketTomorrow Bucket = "tomorrow"
	BucketThisWeek Bucket = "thisWeek"
	BucketLater    Bucket = "later"
)

// BucketTitle returns the section heading for a bucket.
func BucketTitle(b Bucket) string {
	switch b {
	case BucketOverdue:
		return "Overdue"
	case BucketToday:
		return "Today"
	case BucketTomorrow:
		return "Tomorrow"
	case BucketThisWeek:
		return "This Week"
	case BucketLater:
		return "Later"
	default:
		return string(b)
	}
}

// Groups partitions dated tasks for the list view. Every dated task lands in
// exactly one bucket.
type Groups struct {
	Overdue  []Task `json:"overdue"`
	Today    []Task `json:"today"`
	Tomorrow []Task `json:"tomorrow"`
	ThisWeek []Task `json:"thisWeek"`
	Later    []Task `json:"later"`
}

// Section is one non-empty bucket, in display order.
type Section struct {
	Bucket Bucket
	Title  string
	Tasks  []Task
}

// GroupForListView buckets tasks with due dates. Checks run in priority
// order: overdue (incomplete and past due), due today, due tomorrow, due
// within seven days, later. Only the overdue check looks at completion, so a
// completed task due yesterday falls through to ThisWeek. Undated tasks are
// skipped. Buckets are sorted by due date.
func GroupForListView(tasks []Task, today Date) Groups {
	tomorrow := today.AddDays(1)
	weekEnd := today.AddDays(7)

	var groups Groups
	for _, t := range SortByDueDate(keep(tasks, Task.HasDueDate)) {
		due := t.Due()
		switch {
		case IsOverdue(t, today):
			groups.Overdue = append(groups.Overdue, t)
		case due == today:
			groups.Today = append(groups.Today, t)
		case due == tomorrow:
			groups.Tomorrow = append(groups.Tomorrow, t)
		case due <= weekEnd:
			groups.ThisWeek = append(groups.ThisWeek, t)
		default:
			groups.Later = append(groups.Later, t)
		}
	}
	return groups
}

// Len returns the number of grouped tasks.
func (g Groups) Len() int {
	return len(g.Overdue) + len(g.Today) + len(g.Tomorrow) + len(g.ThisWeek) + len(g.Later)
}

// Bucket returns the tasks in b.
func (g Groups) Bucket(b Bucket) []Task {
	switch b {
	case BucketOverdue:
		return g.Overdue
	case BucketToday:
		return g.Today
	case BucketTomorrow:
		return g.Tomorrow
	case BucketThisWeek:
		return g.ThisWeek
	case BucketLater:
		return g.Later
	default:
		return nil
	}
}

// Sections returns the non-empty buckets in display order.
func (g Groups) Sections() []Section {
	order := []Bucket{BucketOverdue, BucketToday, BucketTomorrow, BucketThisWeek, BucketLater}
	sections := make([]Section, 0, len(order))
	for _, b := range order {
		tasks := g.Bucket(b)
		if len(tasks) == 0 {
			continue
		}
		sections = append(sections, Section{Bucket: b, Title: BucketTitle(b), Tasks: tasks})
	}
	return sections
}
