package model

import "time"

// Snapshot is a full point-in-time export of every collection.
//
// On import a nil collection (absent or null in the document) leaves the
// stored collection untouched, while an empty one overwrites it.
type Snapshot struct {
	Tasks            []Task           `json:"tasks"`
	Habits           []Habit          `json:"habits"`
	HabitEntries     []HabitEntry     `json:"habitEntries"`
	Challenges       []Challenge      `json:"challenges"`
	ChallengeEntries []ChallengeEntry `json:"challengeEntries"`
	TaskCategories   []TaskCategory   `json:"taskCategories"`
	Notifications    []Notification   `json:"notifications"`
	Preferences      *Preferences     `json:"preferences"`
	Version          string           `json:"version"`
	LastSyncAt       *time.Time       `json:"lastSyncAt,omitempty"`
}
