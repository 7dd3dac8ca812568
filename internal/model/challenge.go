package model

import "time"

// ChallengeStatus is the persisted state of a challenge. It is advisory;
// display code derives the effective status from dates and progress.
type ChallengeStatus string

const (
	ChallengeActive    ChallengeStatus = "active"
	ChallengeCompleted ChallengeStatus = "completed"
	ChallengePaused    ChallengeStatus = "paused"

	// Derived-only states.
	ChallengeUpcoming ChallengeStatus = "upcoming"
	ChallengeOverdue  ChallengeStatus = "overdue"
)

// Challenge is a time-boxed goal with a numeric target.
type Challenge struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Status       ChallengeStatus `json:"status"`
	StartDate    time.Time       `json:"startDate"`
	EndDate      time.Time       `json:"endDate"`
	TargetValue  float64         `json:"targetValue"`
	CurrentValue float64         `json:"currentValue"`
	Unit         string          `json:"unit"`
	Category     string          `json:"category"`
	Color        string          `json:"color"`
	Icon         string          `json:"icon,omitempty"`
	Rewards      []string        `json:"rewards"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	CompletedAt  *time.Time      `json:"completedAt,omitempty"`
}

// ChallengeEntry is a single progress contribution to a challenge.
type ChallengeEntry struct {
	ID          string    `json:"id"`
	ChallengeID string    `json:"challengeId"`
	Date        string    `json:"date"`
	Value       float64   `json:"value"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
