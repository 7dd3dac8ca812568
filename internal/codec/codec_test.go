package codec

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/productivity-tracker/internal/model"
)

var (
	created = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	later   = time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
)

func roundTrip[T any](t *testing.T, records []T) {
	t.Helper()
	text, err := Encode(records)
	require.NoError(t, err)

	res := Decode[T](text)
	require.False(t, res.Recovered, "unexpected recovery: %v", res.Err)
	if diff := cmp.Diff(records, res.Records); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip_Task(t *testing.T) {
	due := later
	done := later.Add(time.Hour)
	remind := later.Add(-2 * time.Hour)

	t.Run("populated", func(t *testing.T) {
		roundTrip(t, []model.Task{{
			ID:          "t1",
			Title:       "Write report",
			Description: "Quarterly numbers",
			Category:    "1",
			Priority:    model.PriorityHigh,
			Status:      model.TaskCompleted,
			DueDate:     &due,
			CreatedAt:   created,
			UpdatedAt:   done,
			CompletedAt: &done,
			Reminder:    &remind,
			Tags:        []string{"work", "q1"},
		}})
	})

	t.Run("minimal", func(t *testing.T) {
		roundTrip(t, []model.Task{{
			ID:        "t2",
			Title:     "Call mum",
			Category:  "4",
			Priority:  model.PriorityLow,
			Status:    model.TaskPending,
			CreatedAt: created,
			UpdatedAt: created,
		}})
	})
}

func TestEncode_OmitsAbsentDates(t *testing.T) {
	text, err := Encode([]model.Task{{ID: "t", CreatedAt: created, UpdatedAt: created}})
	require.NoError(t, err)

	assert.NotContains(t, text, "dueDate")
	assert.NotContains(t, text, "completedAt")
	assert.NotContains(t, text, "reminder")
	assert.Contains(t, text, `"createdAt":"2026-03-01T09:30:00Z"`)
}

func TestRoundTrip_Habit(t *testing.T) {
	t.Run("populated", func(t *testing.T) {
		roundTrip(t, []model.Habit{{
			ID:           "h1",
			Title:        "Read",
			Description:  "20 pages",
			Frequency:    model.FrequencyDaily,
			TargetCount:  1,
			CreatedAt:    created,
			UpdatedAt:    later,
			IsActive:     true,
			Color:        "#10B981",
			Icon:         "book",
			ReminderTime: "21:00",
			Tags:         []string{"mind"},
		}})
	})

	t.Run("minimal", func(t *testing.T) {
		roundTrip(t, []model.Habit{{
			ID:        "h2",
			Title:     "Stretch",
			Frequency: model.FrequencyWeekly,
			CreatedAt: created,
			UpdatedAt: created,
		}})
	})
}

func TestRoundTrip_HabitEntry(t *testing.T) {
	roundTrip(t, []model.HabitEntry{
		{ID: "e1", HabitID: "h1", Date: "2026-03-01", Completed: true, Notes: "easy", CreatedAt: created},
		{ID: "e2", HabitID: "h1", Date: "2026-03-02", CreatedAt: created},
	})
}

func TestRoundTrip_Challenge(t *testing.T) {
	done := later

	t.Run("populated", func(t *testing.T) {
		roundTrip(t, []model.Challenge{{
			ID:           "c1",
			Title:        "Run 100km",
			Description:  "March distance",
			Status:       model.ChallengeCompleted,
			StartDate:    created,
			EndDate:      later,
			TargetValue:  100,
			CurrentValue: 102.5,
			Unit:         "km",
			Category:     "3",
			Color:        "#F59E0B",
			Icon:         "run",
			Rewards:      []string{"new shoes"},
			CreatedAt:    created,
			UpdatedAt:    later,
			CompletedAt:  &done,
		}})
	})

	t.Run("minimal", func(t *testing.T) {
		roundTrip(t, []model.Challenge{{
			ID:        "c2",
			Title:     "Meditate",
			Status:    model.ChallengeActive,
			StartDate: created,
			EndDate:   later,
			CreatedAt: created,
			UpdatedAt: created,
		}})
	})
}

func TestRoundTrip_ChallengeEntry(t *testing.T) {
	roundTrip(t, []model.ChallengeEntry{
		{ID: "ce1", ChallengeID: "c1", Date: "2026-03-02", Value: 5.5, Notes: "rainy", CreatedAt: created},
		{ID: "ce2", ChallengeID: "c1", Date: "2026-03-03", Value: 3, CreatedAt: created},
	})
}

func TestRoundTrip_CategoryAndNotification(t *testing.T) {
	roundTrip(t, model.DefaultCategories(created))
	roundTrip(t, []model.TaskCategory{{ID: "x", Name: "Errands", Color: "#000000", CreatedAt: created}})

	roundTrip(t, []model.Notification{{
		ID:           "n1",
		Type:         model.NotificationHabit,
		Title:        "Read",
		Message:      "Time to read",
		TargetID:     "h1",
		ScheduledFor: later,
		Sent:         true,
		CreatedAt:    created,
	}})
}

func TestDecode_EmptyAndCorrupt(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		recovered bool
	}{
		{name: "empty string", text: ""},
		{name: "whitespace", text: "  \n"},
		{name: "json null", text: "null"},
		{name: "empty array", text: "[]"},
		{name: "truncated", text: `[{"id":"t1"`, recovered: true},
		{name: "not an array", text: `{"id":"t1"}`, recovered: true},
		{name: "bad date", text: `[{"id":"t1","createdAt":"yesterday"}]`, recovered: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Decode[model.Task](tt.text)
			assert.NotNil(t, res.Records)
			assert.Empty(t, res.Records)
			assert.Equal(t, tt.recovered, res.Recovered)
			if tt.recovered {
				assert.Error(t, res.Err)
			} else {
				assert.NoError(t, res.Err)
			}
		})
	}
}

func TestEncode_NilIsEmptyArray(t *testing.T) {
	text, err := Encode[model.Habit](nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", text)
}

func TestDecodeValueInto(t *testing.T) {
	t.Run("merges over defaults", func(t *testing.T) {
		prefs := model.DefaultPreferences()
		require.NoError(t, DecodeValueInto(`{"theme":"dark","startOfWeek":0}`, &prefs))

		want := model.DefaultPreferences()
		want.Theme = model.ThemeDark
		want.StartOfWeek = 0
		assert.Equal(t, want, prefs)
	})

	t.Run("corrupt leaves destination unchanged", func(t *testing.T) {
		prefs := model.DefaultPreferences()
		err := DecodeValueInto(`{"theme":`, &prefs)
		require.Error(t, err)
		assert.Equal(t, model.DefaultPreferences(), prefs)
	})

	t.Run("round trip", func(t *testing.T) {
		in := model.Preferences{Theme: model.ThemeLight, TimeFormat: "24h", Language: "de"}
		text, err := EncodeValue(in)
		require.NoError(t, err)

		var out model.Preferences
		require.NoError(t, DecodeValueInto(text, &out))
		assert.Equal(t, in, out)
	})
}
