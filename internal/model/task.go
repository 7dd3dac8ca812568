package model

import "time"

// Priority is the user-assigned importance of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities for sorting (higher rank first).
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// TaskStatus is the lifecycle state of a task. Only pending and completed
// are persisted; overdue is derived from the due date at display time.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
	TaskOverdue   TaskStatus = "overdue"
)

// Task is a one-off to-do item.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category"`
	Priority    Priority   `json:"priority"`
	Status      TaskStatus `json:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Reminder    *time.Time `json:"reminder,omitempty"`
	Tags        []string   `json:"tags"`
}

// IsCompleted reports whether the persisted status is completed.
func (t Task) IsCompleted() bool { return t.Status == TaskCompleted }
