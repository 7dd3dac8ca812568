// Package reminder turns task reminders and habit reminder times into
// stored notifications and delivers the ones that have come due.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nhle/productivity-tracker/internal/model"
	"github.com/nhle/productivity-tracker/internal/store"
	"github.com/nhle/productivity-tracker/internal/tracker"
)

// Summary reports what a dispatch pass did.
type Summary struct {
	Scheduled int
	Delivered int
	Failed    int
}

// Dispatcher schedules and delivers notifications for one profile.
type Dispatcher struct {
	svc      *tracker.Service
	notifier Notifier
	log      *zap.Logger
}

// NewDispatcher returns a dispatcher delivering through notifier.
func NewDispatcher(svc *tracker.Service, notifier Notifier, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{svc: svc, notifier: notifier, log: log}
}

type slot struct {
	kind   model.NotificationType
	target string
	at     int64
}

func slotOf(n model.Notification) slot {
	return slot{kind: n.Type, target: n.TargetID, at: n.ScheduledFor.Unix()}
}

// Run performs one pass: it schedules any missing notifications, then
// delivers every unsent notification due at or before now when the user
// has notifications enabled. A failed delivery stays unsent and is retried
// on the next pass.
func (d *Dispatcher) Run(ctx context.Context) (Summary, error) {
	var sum Summary
	now := d.svc.Now()

	tasks := d.svc.Tasks()
	habits := d.svc.Habits()

	var due []model.Notification
	d.svc.UpdateNotifications(func(ns []model.Notification) []model.Notification {
		ns = dropStale(ns, tasks)
		seen := make(map[slot]bool, len(ns))
		for _, n := range ns {
			seen[slotOf(n)] = true
		}
		for _, n := range d.plan(tasks, habits, now) {
			if seen[slotOf(n)] {
				continue
			}
			seen[slotOf(n)] = true
			ns = append(ns, n)
			sum.Scheduled++
		}
		for _, n := range ns {
			if !n.Sent && !n.ScheduledFor.After(now) {
				due = append(due, n)
			}
		}
		return ns
	})

	if sum.Scheduled > 0 {
		d.log.Debug("scheduled notifications", zap.Int("count", sum.Scheduled))
	}
	if len(due) == 0 {
		return sum, nil
	}
	if !d.svc.Preferences().NotificationsEnabled {
		d.log.Debug("notifications disabled, holding due notifications", zap.Int("count", len(due)))
		return sum, nil
	}

	sent := make(map[string]bool, len(due))
	for _, n := range due {
		if err := ctx.Err(); err != nil {
			d.markSent(sent)
			return sum, fmt.Errorf("dispatching notifications: %w", err)
		}
		if err := d.notifier.Notify(ctx, n); err != nil {
			sum.Failed++
			d.log.Warn("delivering notification",
				zap.String("id", n.ID),
				zap.Error(err),
			)
			continue
		}
		sent[n.ID] = true
		sum.Delivered++
	}
	d.markSent(sent)
	return sum, nil
}

// dropStale removes unsent task notifications that no longer match an open
// task's current reminder time.
func dropStale(ns []model.Notification, tasks []model.Task) []model.Notification {
	current := make(map[string]int64, len(tasks))
	for _, t := range tasks {
		if !t.IsCompleted() && t.Reminder != nil {
			current[t.ID] = t.Reminder.Unix()
		}
	}

	kept := ns[:0]
	for _, n := range ns {
		if n.Type == model.NotificationTask && !n.Sent {
			at, ok := current[n.TargetID]
			if !ok || at != n.ScheduledFor.Unix() {
				continue
			}
		}
		kept = append(kept, n)
	}
	return kept
}

func (d *Dispatcher) markSent(sent map[string]bool) {
	if len(sent) == 0 {
		return
	}
	d.svc.UpdateNotifications(func(ns []model.Notification) []model.Notification {
		for i := range ns {
			if sent[ns[i].ID] {
				ns[i].Sent = true
			}
		}
		return ns
	})
}

// plan returns the notifications that should exist for the current state:
// one per open task with a reminder, and one per active habit with a
// reminder time today. Task reminders older than the storage retention
// window are skipped, since cleanup may already have dropped their sent
// notification.
func (d *Dispatcher) plan(tasks []model.Task, habits []model.Habit, now time.Time) []model.Notification {
	created := now.UTC()
	cutoff := now.Add(-store.CleanupRetention)
	var out []model.Notification

	for _, t := range tasks {
		if t.IsCompleted() || t.Reminder == nil || t.Reminder.Before(cutoff) {
			continue
		}
		out = append(out, model.Notification{
			ID:           uuid.New().String(),
			Type:         model.NotificationTask,
			Title:        t.Title,
			Message:      taskMessage(t),
			TargetID:     t.ID,
			ScheduledFor: t.Reminder.UTC(),
			CreatedAt:    created,
		})
	}

	for _, h := range habits {
		if !h.IsActive || h.ReminderTime == "" {
			continue
		}
		at, err := todayAt(h.ReminderTime, now)
		if err != nil {
			d.log.Warn("skipping habit with bad reminder time",
				zap.String("habit", h.ID),
				zap.String("reminder_time", h.ReminderTime),
			)
			continue
		}
		out = append(out, model.Notification{
			ID:           uuid.New().String(),
			Type:         model.NotificationHabit,
			Title:        h.Title,
			Message:      fmt.Sprintf("Time for %s", h.Title),
			TargetID:     h.ID,
			ScheduledFor: at.UTC(),
			CreatedAt:    created,
		})
	}
	return out
}

func taskMessage(t model.Task) string {
	if t.DueDate == nil {
		return "Reminder: " + t.Title
	}
	return fmt.Sprintf("Reminder: %s is due %s", t.Title, t.DueDate.Format("Jan 2 15:04"))
}

// todayAt returns the HH:MM clock time on now's day in now's location.
func todayAt(hhmm string, now time.Time) (time.Time, error) {
	clock, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing reminder time %q: %w", hhmm, err)
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, now.Location()), nil
}
