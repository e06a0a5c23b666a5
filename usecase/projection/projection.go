// Package projection derives the per-column task lists the detail view
// displays: canonical state narrowed by transient filter criteria. It is
// a pure function of its inputs and never mutates the board.
package projection

import (
	"sort"
	"strings"
	"time"

	"github.com/chittaranjan27/Task-Board-Application/domain"
)

// Bucket partitions tasks by how close their due date is.
type Bucket string

const (
	BucketAll     Bucket = "all"
	BucketOverdue Bucket = "overdue"
	BucketToday   Bucket = "today"
	BucketWeek    Bucket = "week"
)

// ParseBucket maps free-form user input onto a known bucket.
func ParseBucket(s string) (Bucket, bool) {
	switch b := Bucket(strings.ToLower(strings.TrimSpace(s))); b {
	case BucketAll, BucketOverdue, BucketToday, BucketWeek:
		return b, true
	}
	return "", false
}

// PriorityAll keeps tasks of every priority.
const PriorityAll = domain.Priority("all")

// Filter is the transient criteria the view applies on top of canonical
// state. The zero value filters nothing out.
type Filter struct {
	Search   string
	Priority domain.Priority // empty or "all" keeps every priority
	Due      Bucket          // empty or "all" keeps every due date
}

// Tasks maps each column id to its filtered task sequence. Filters
// compose with AND. Tasks are re-sorted by order first, tolerating
// upstream gaps or unsorted writes.
func Tasks(b *domain.Board, f Filter, now time.Time) map[string][]domain.Task {
	out := map[string][]domain.Task{}
	if b == nil {
		return out
	}
	for _, col := range b.Columns {
		tasks := append([]domain.Task(nil), col.Tasks...)
		sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].Order < tasks[j].Order })
		tasks = filterSearch(tasks, f.Search)
		tasks = filterPriority(tasks, f.Priority)
		tasks = filterDue(tasks, f.Due, now)
		out[col.ID] = tasks
	}
	return out
}

func filterSearch(tasks []domain.Task, term string) []domain.Task {
	if term == "" {
		return tasks
	}
	term = strings.ToLower(term)
	kept := tasks[:0]
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), term) ||
			strings.Contains(strings.ToLower(t.Description), term) {
			kept = append(kept, t)
		}
	}
	return kept
}

func filterPriority(tasks []domain.Task, p domain.Priority) []domain.Task {
	if p == "" || p == PriorityAll {
		return tasks
	}
	kept := tasks[:0]
	for _, t := range tasks {
		if t.Priority == p {
			kept = append(kept, t)
		}
	}
	return kept
}

func filterDue(tasks []domain.Task, bucket Bucket, now time.Time) []domain.Task {
	if bucket == "" || bucket == BucketAll {
		return tasks
	}
	today := startOfDay(now)
	kept := tasks[:0]
	for _, t := range tasks {
		// tasks without a due date belong to no bucket
		if t.DueDate == nil {
			continue
		}
		due := startOfDay(*t.DueDate)
		switch bucket {
		case BucketOverdue:
			if due.Before(today) {
				kept = append(kept, t)
			}
		case BucketToday:
			if due.Equal(today) {
				kept = append(kept, t)
			}
		case BucketWeek:
			if !due.Before(today) && !due.After(today.AddDate(0, 0, 7)) {
				kept = append(kept, t)
			}
		}
	}
	return kept
}

// startOfDay zeroes the time-of-day so comparisons work on calendar days.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
