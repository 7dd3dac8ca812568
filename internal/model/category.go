package model

import "time"

// TaskCategory groups tasks under a named, colored label.
type TaskCategory struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// DefaultCategories returns the categories seeded on first run, stamped
// with createdAt.
func DefaultCategories(createdAt time.Time) []TaskCategory {
	return []TaskCategory{
		{ID: "1", Name: "Work", Color: "#3B82F6", Icon: "briefcase", CreatedAt: createdAt},
		{ID: "2", Name: "Study", Color: "#8B5CF6", Icon: "book", CreatedAt: createdAt},
		{ID: "3", Name: "Health", Color: "#10B981", Icon: "heart", CreatedAt: createdAt},
		{ID: "4", Name: "Personal", Color: "#F59E0B", Icon: "user", CreatedAt: createdAt},
	}
}
