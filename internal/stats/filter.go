package stats

import (
	"strings"
	"time"

	"github.com/nhle/productivity-tracker/internal/model"
)

// Search returns the items whose title, description or any tag contains
// query, case-insensitively. A blank query matches everything.
func Search[T any](items []T, query string, fields func(T) (title, description string, tags []string)) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	var out []T
	for _, it := range items {
		title, description, tags := fields(it)
		if matches(q, title, description, tags) {
			out = append(out, it)
		}
	}
	return out
}

func matches(q, title, description string, tags []string) bool {
	if strings.Contains(strings.ToLower(title), q) ||
		strings.Contains(strings.ToLower(description), q) {
		return true
	}
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// TaskFields adapts a task for Search.
func TaskFields(t model.Task) (string, string, []string) {
	return t.Title, t.Description, t.Tags
}

// HabitFields adapts a habit for Search.
func HabitFields(h model.Habit) (string, string, []string) {
	return h.Title, h.Description, h.Tags
}

// TaskFilter narrows a task list. Zero-valued fields do not filter.
type TaskFilter struct {
	Query    string
	Category string
	Priority model.Priority

	// Status matches the derived status, so "overdue" works.
	Status model.TaskStatus

	// Tags matches tasks carrying any of the listed tags.
	Tags []string

	// DueFrom and DueTo bound the due date, inclusive. Tasks without a due
	// date never match a bounded range.
	DueFrom *time.Time
	DueTo   *time.Time
}

// FilterTasks applies f to tasks.
func FilterTasks(tasks []model.Task, f TaskFilter, now time.Time) []model.Task {
	var out []model.Task
	for _, t := range Search(tasks, f.Query, TaskFields) {
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		if f.Status != "" && TaskStatus(t, now) != f.Status {
			continue
		}
		if len(f.Tags) > 0 && !hasAnyTag(t.Tags, f.Tags) {
			continue
		}
		if f.DueFrom != nil || f.DueTo != nil {
			if t.DueDate == nil {
				continue
			}
			if f.DueFrom != nil && t.DueDate.Before(*f.DueFrom) {
				continue
			}
			if f.DueTo != nil && t.DueDate.After(*f.DueTo) {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

func hasAnyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}
