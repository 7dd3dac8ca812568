package reminder_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/nhle/productivity-tracker/internal/model"
	"github.com/nhle/productivity-tracker/internal/reminder"
	"github.com/nhle/productivity-tracker/internal/tracker"
	"github.com/nhle/productivity-tracker/tests/testutil"
)

type recordingNotifier struct {
	got  []model.Notification
	fail map[string]bool
}

func (r *recordingNotifier) Notify(_ context.Context, n model.Notification) error {
	if r.fail[n.TargetID] {
		return errors.New("delivery failed")
	}
	r.got = append(r.got, n)
	return nil
}

func setup(t *testing.T) (*tracker.Service, *time.Time, *recordingNotifier, *reminder.Dispatcher) {
	t.Helper()
	now := testutil.Now
	svc := testutil.NewTestService(t, testutil.Clock(&now))
	rec := &recordingNotifier{fail: map[string]bool{}}
	return svc, &now, rec, reminder.NewDispatcher(svc, rec, zaptest.NewLogger(t))
}

func TestDispatcher_DeliversDueTaskReminder(t *testing.T) {
	svc, now, rec, d := setup(t)

	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)
	due, err := svc.CreateTask(tracker.TaskInput{Title: "Pay rent", Reminder: &past})
	require.NoError(t, err)
	_, err = svc.CreateTask(tracker.TaskInput{Title: "Later", Reminder: &future})
	require.NoError(t, err)
	_, err = svc.CreateTask(tracker.TaskInput{Title: "No reminder"})
	require.NoError(t, err)

	sum, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, reminder.Summary{Scheduled: 2, Delivered: 1}, sum)

	require.Len(t, rec.got, 1)
	assert.Equal(t, due.ID, rec.got[0].TargetID)
	assert.Equal(t, model.NotificationTask, rec.got[0].Type)

	stored := svc.Notifications()
	require.Len(t, stored, 2)
	sent := 0
	for _, n := range stored {
		if n.Sent {
			sent++
		}
	}
	assert.Equal(t, 1, sent)

	t.Run("second pass is idempotent", func(t *testing.T) {
		sum, err := d.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, reminder.Summary{}, sum)
		assert.Len(t, rec.got, 1)
	})

	t.Run("later reminder fires once its time passes", func(t *testing.T) {
		*now = now.Add(2 * time.Hour)
		sum, err := d.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, sum.Delivered)
		assert.Len(t, rec.got, 2)
	})
}

func TestDispatcher_HabitReminderTime(t *testing.T) {
	svc, now, rec, d := setup(t)

	morning, err := svc.CreateHabit(tracker.HabitInput{Title: "Meditate", ReminderTime: "08:00"})
	require.NoError(t, err)
	_, err = svc.CreateHabit(tracker.HabitInput{Title: "Journal", ReminderTime: "22:00"})
	require.NoError(t, err)
	paused, err := svc.CreateHabit(tracker.HabitInput{Title: "Paused", ReminderTime: "07:00"})
	require.NoError(t, err)
	require.NoError(t, svc.UpdateHabit(paused.ID, func(h *model.Habit) { h.IsActive = false }))

	sum, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Scheduled)
	assert.Equal(t, 1, sum.Delivered)
	require.Len(t, rec.got, 1)
	assert.Equal(t, morning.ID, rec.got[0].TargetID)
	assert.Equal(t, time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC), rec.got[0].ScheduledFor)

	// Tomorrow gets a fresh slot.
	*now = now.AddDate(0, 0, 1)
	sum, err = d.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Scheduled)
	assert.Equal(t, 2, sum.Delivered, "yesterday's evening slot and today's morning slot")
}

func TestDispatcher_NotificationsDisabled(t *testing.T) {
	svc, now, rec, d := setup(t)
	require.NoError(t, svc.UpdatePreferences(func(p *model.Preferences) {
		p.NotificationsEnabled = false
	}))
	past := now.Add(-time.Minute)
	_, err := svc.CreateTask(tracker.TaskInput{Title: "Quiet", Reminder: &past})
	require.NoError(t, err)

	sum, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, reminder.Summary{Scheduled: 1}, sum)
	assert.Empty(t, rec.got)
	assert.False(t, svc.Notifications()[0].Sent)
}

func TestDispatcher_FailedDeliveryIsRetried(t *testing.T) {
	svc, now, rec, d := setup(t)
	past := now.Add(-time.Minute)
	task, err := svc.CreateTask(tracker.TaskInput{Title: "Flaky", Reminder: &past})
	require.NoError(t, err)

	rec.fail[task.ID] = true
	sum, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Failed)
	assert.False(t, svc.Notifications()[0].Sent)

	delete(rec.fail, task.ID)
	sum, err = d.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Delivered)
	assert.True(t, svc.Notifications()[0].Sent)
}

func TestDispatcher_CompletedTaskNotScheduled(t *testing.T) {
	svc, now, rec, d := setup(t)
	past := now.Add(-time.Minute)
	task, err := svc.CreateTask(tracker.TaskInput{Title: "Done", Reminder: &past})
	require.NoError(t, err)
	require.NoError(t, svc.ToggleTask(task.ID))

	sum, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, reminder.Summary{}, sum)
	assert.Empty(t, rec.got)
}

func TestDispatcher_CancelledContext(t *testing.T) {
	svc, now, _, d := setup(t)
	past := now.Add(-time.Minute)
	_, err := svc.CreateTask(tracker.TaskInput{Title: "x", Reminder: &past})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = d.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, svc.Notifications()[0].Sent)
}

func TestDispatcher_ReminderNotRepeatedAfterCleanup(t *testing.T) {
	svc, now, rec, d := setup(t)
	past := now.Add(-time.Hour)
	_, err := svc.CreateTask(tracker.TaskInput{Title: "Renew passport", Reminder: &past})
	require.NoError(t, err)

	sum, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, reminder.Summary{Scheduled: 1, Delivered: 1}, sum)

	*now = now.AddDate(0, 0, 31)
	svc.Manager().Cleanup()
	require.Empty(t, svc.Notifications())

	sum, err = d.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, reminder.Summary{}, sum)
	assert.Len(t, rec.got, 1)
}

func TestDispatcher_RescheduledReminderReplacesPending(t *testing.T) {
	svc, now, rec, d := setup(t)
	first := now.Add(time.Hour)
	task, err := svc.CreateTask(tracker.TaskInput{Title: "Call dentist", Reminder: &first})
	require.NoError(t, err)

	_, err = d.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, svc.Notifications(), 1)

	second := now.Add(2 * time.Hour)
	require.NoError(t, svc.UpdateTask(task.ID, func(tk *model.Task) { tk.Reminder = &second }))

	*now = now.Add(3 * time.Hour)
	sum, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, reminder.Summary{Scheduled: 1, Delivered: 1}, sum)

	require.Len(t, rec.got, 1)
	assert.Equal(t, second.UTC(), rec.got[0].ScheduledFor)
	stored := svc.Notifications()
	require.Len(t, stored, 1)
	assert.True(t, stored[0].Sent)
}

func TestDispatcher_DeletedTaskPendingReminderDropped(t *testing.T) {
	svc, now, rec, d := setup(t)
	later := now.Add(time.Hour)
	task, err := svc.CreateTask(tracker.TaskInput{Title: "Cancelled", Reminder: &later})
	require.NoError(t, err)

	_, err = d.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, svc.DeleteTask(task.ID))

	*now = now.Add(2 * time.Hour)
	sum, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, reminder.Summary{}, sum)
	assert.Empty(t, rec.got)
	assert.Empty(t, svc.Notifications())
}
