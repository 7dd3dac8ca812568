package tracker_test

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/productivity-tracker/internal/model"
	"github.com/nhle/productivity-tracker/internal/tracker"
)

func TestCategories(t *testing.T) {
	svc, _ := newService(t)
	require.Len(t, svc.Categories(), 4)

	c, err := svc.CreateCategory("Errands", "#000000", "")
	require.NoError(t, err)
	assert.Len(t, svc.Categories(), 5)

	_, err = svc.CreateCategory(" ", "", "")
	assert.ErrorIs(t, err, tracker.ErrInvalidInput)

	require.NoError(t, svc.DeleteCategory(c.ID))
	require.NoError(t, svc.DeleteCategory("1"))

	var names []string
	for _, c := range svc.Categories() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Study", "Health", "Personal"}, names)
}

func TestUpdatePreferences(t *testing.T) {
	svc, _ := newService(t)

	require.NoError(t, svc.UpdatePreferences(func(p *model.Preferences) {
		p.Theme = model.ThemeDark
		p.TimeFormat = "24h"
	}))
	prefs := svc.Preferences()
	assert.Equal(t, model.ThemeDark, prefs.Theme)
	assert.Equal(t, "24h", prefs.TimeFormat)
	assert.Equal(t, "en", prefs.Language)

	tests := []struct {
		name string
		fn   func(*model.Preferences)
	}{
		{name: "theme", fn: func(p *model.Preferences) { p.Theme = "neon" }},
		{name: "start of week", fn: func(p *model.Preferences) { p.StartOfWeek = 7 }},
		{name: "time format", fn: func(p *model.Preferences) { p.TimeFormat = "military" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, svc.UpdatePreferences(tt.fn), tracker.ErrInvalidInput)
		})
	}
	assert.Equal(t, prefs, svc.Preferences())
}

func TestUpdateNotifications(t *testing.T) {
	svc, _ := newService(t)

	svc.UpdateNotifications(func(ns []model.Notification) []model.Notification {
		return append(ns, model.Notification{ID: "n1", Type: model.NotificationTask})
	})
	require.Len(t, svc.Notifications(), 1)

	svc.UpdateNotifications(func(ns []model.Notification) []model.Notification {
		ns[0].Sent = true
		return ns
	})
	assert.True(t, svc.Notifications()[0].Sent)
}

func TestConcurrentMutationsAreSerialized(t *testing.T) {
	svc, _ := newService(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateTask(tracker.TaskInput{Title: "parallel"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, svc.Tasks(), 20)
}

func TestListFieldsExportAsArrays(t *testing.T) {
	svc, _ := newService(t)

	task, err := svc.CreateTask(tracker.TaskInput{Title: "Untagged"})
	require.NoError(t, err)
	assert.NotNil(t, task.Tags)
	habit, err := svc.CreateHabit(tracker.HabitInput{Title: "Stretch"})
	require.NoError(t, err)
	assert.NotNil(t, habit.Tags)
	c, err := svc.CreateChallenge(challengeInput(10))
	require.NoError(t, err)
	assert.NotNil(t, c.Rewards)

	require.NoError(t, svc.UpdateTask(task.ID, func(tk *model.Task) { tk.Tags = nil }))

	var buf bytes.Buffer
	require.NoError(t, svc.Manager().ExportJSON(&buf))
	doc := buf.String()
	assert.Contains(t, doc, `"tags": []`)
	assert.Contains(t, doc, `"rewards": []`)
	assert.NotContains(t, doc, `null`)
}
