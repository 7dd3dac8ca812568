package stats

import (
	"math"
	"sort"
	"time"

	"github.com/nhle/productivity-tracker/internal/model"
)

// TaskStatus derives the status shown for a task. A persisted completed
// status wins; otherwise a task due before the start of today is overdue
// and everything else is pending. This is the only place overdue is
// decided.
func TaskStatus(t model.Task, now time.Time) model.TaskStatus {
	if t.IsCompleted() {
		return model.TaskCompleted
	}
	if t.DueDate != nil && t.DueDate.Before(model.StartOfDay(now)) {
		return model.TaskOverdue
	}
	return model.TaskPending
}

// DueToday reports whether an open task is due within today.
func DueToday(t model.Task, now time.Time) bool {
	if t.IsCompleted() || t.DueDate == nil {
		return false
	}
	start, end := model.StartOfDay(now), model.EndOfDay(now)
	return !t.DueDate.Before(start) && t.DueDate.Before(end)
}

// TaskStats counts tasks by derived status.
type TaskStats struct {
	Total     int
	Pending   int
	Completed int
	Overdue   int
	DueToday  int

	// CompletionRate is the rounded percentage of completed tasks.
	CompletionRate int
}

// Tasks computes TaskStats, deriving overdue and due-today from due dates
// rather than trusting the stored status.
func Tasks(tasks []model.Task, now time.Time) TaskStats {
	s := TaskStats{Total: len(tasks)}
	for _, t := range tasks {
		switch TaskStatus(t, now) {
		case model.TaskCompleted:
			s.Completed++
		case model.TaskOverdue:
			s.Overdue++
		default:
			s.Pending++
		}
		if DueToday(t, now) {
			s.DueToday++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}

// TodaysTasks returns open tasks that are due today.
func TodaysTasks(tasks []model.Task, now time.Time) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if DueToday(t, now) {
			out = append(out, t)
		}
	}
	return out
}

// OverdueTasks returns open tasks whose due date is before today.
func OverdueTasks(tasks []model.Task, now time.Time) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if TaskStatus(t, now) == model.TaskOverdue {
			out = append(out, t)
		}
	}
	return out
}

// UpcomingTasks returns open tasks due between the start of today and
// days days later, inclusive.
func UpcomingTasks(tasks []model.Task, days int, now time.Time) []model.Task {
	start := model.StartOfDay(now)
	end := start.AddDate(0, 0, days)
	var out []model.Task
	for _, t := range tasks {
		if t.IsCompleted() || t.DueDate == nil {
			continue
		}
		if !t.DueDate.Before(start) && !t.DueDate.After(end) {
			out = append(out, t)
		}
	}
	return out
}

// SortByPriority returns a copy of tasks ordered high to low priority.
// Tasks of equal priority keep their relative order.
func SortByPriority(tasks []model.Task) []model.Task {
	out := append([]model.Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() > out[j].Priority.Rank()
	})
	return out
}
