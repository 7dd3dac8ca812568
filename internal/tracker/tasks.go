package tracker

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/productivity-tracker/internal/model"
)

// TaskInput holds the user-supplied fields of a new task.
type TaskInput struct {
	Title       string
	Description string

	// Category defaults to the preferred default category.
	Category string

	// Priority defaults to medium.
	Priority model.Priority

	DueDate  *time.Time
	Reminder *time.Time
	Tags     []string
}

func taskID(t model.Task) string { return t.ID }

func validPriority(p model.Priority) bool {
	switch p {
	case model.PriorityHigh, model.PriorityMedium, model.PriorityLow:
		return true
	}
	return false
}

// Tasks returns every stored task.
func (s *Service) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.LoadTasks().Records
}

// CreateTask stores a new pending task and returns it.
func (s *Service) CreateTask(in TaskInput) (model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Task{}, fmt.Errorf("%w: task title must not be empty", ErrInvalidInput)
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}
	if !validPriority(in.Priority) {
		return model.Task{}, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, in.Priority)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if in.Category == "" {
		in.Category = s.m.LoadPreferences().DefaultTaskCategory
	}

	now := s.stamp()
	task := model.Task{
		ID:          newID(),
		Title:       title,
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
		Status:      model.TaskPending,
		DueDate:     utcPtr(in.DueDate),
		Reminder:    utcPtr(in.Reminder),
		Tags:        orEmpty(in.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	tasks := s.m.LoadTasks().Records
	s.m.SaveTasks(append(tasks, task))
	s.log.Debug("created task", zap.String("id", task.ID))
	return task, nil
}

// UpdateTask applies fn to the task with the given id. The id and
// creation time cannot be changed. Status is normalized so that only
// pending or completed is stored, with completedAt tracking it.
func (s *Service) UpdateTask(id string, fn func(*model.Task)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.m.LoadTasks().Records
	i := indexOf(tasks, id, taskID)
	if i < 0 {
		s.missing("task", id)
		return nil
	}

	updated := tasks[i]
	fn(&updated)
	updated.ID = tasks[i].ID
	updated.CreatedAt = tasks[i].CreatedAt
	updated.Tags = orEmpty(updated.Tags)
	updated.Title = strings.TrimSpace(updated.Title)
	if updated.Title == "" {
		return fmt.Errorf("%w: task title must not be empty", ErrInvalidInput)
	}
	if !validPriority(updated.Priority) {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, updated.Priority)
	}

	now := s.stamp()
	normalizeTaskStatus(&updated, now)
	updated.UpdatedAt = now
	tasks[i] = updated

	s.m.SaveTasks(tasks)
	return nil
}

// normalizeTaskStatus keeps overdue out of storage and keeps completedAt
// set exactly when the task is completed.
func normalizeTaskStatus(t *model.Task, now time.Time) {
	if t.Status != model.TaskCompleted {
		t.Status = model.TaskPending
		t.CompletedAt = nil
		return
	}
	if t.CompletedAt == nil {
		t.CompletedAt = &now
	}
}

// ToggleTask flips a task between pending and completed.
func (s *Service) ToggleTask(id string) error {
	return s.UpdateTask(id, func(t *model.Task) {
		if t.IsCompleted() {
			t.Status = model.TaskPending
		} else {
			t.Status = model.TaskCompleted
			t.CompletedAt = nil
		}
	})
}

// DeleteTask removes the task with the given id.
func (s *Service) DeleteTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.m.LoadTasks().Records
	i := indexOf(tasks, id, taskID)
	if i < 0 {
		s.missing("task", id)
		return nil
	}
	s.m.SaveTasks(append(tasks[:i], tasks[i+1:]...))
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
