package model

import "time"

// NotificationType identifies the kind of entity a notification is about.
type NotificationType string

const (
	NotificationTask      NotificationType = "task"
	NotificationHabit     NotificationType = "habit"
	NotificationChallenge NotificationType = "challenge"
)

// Notification is a reminder scheduled for delivery at a point in time.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"id"`

	// Type identifies which kind of entity TargetID refers to.
	Type NotificationType `json:"type"`

	Title   string `json:"title"`
	Message string `json:"message"`

	// TargetID is the ID of the task, habit, or challenge.
	TargetID string `json:"targetId"`

	// ScheduledFor is when the notification becomes due.
	ScheduledFor time.Time `json:"scheduledFor"`

	// Sent indicates whether the notification has been delivered.
	Sent bool `json:"sent"`

	CreatedAt time.Time `json:"createdAt"`
}
