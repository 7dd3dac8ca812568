package theme

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/productivity-tracker/internal/model"
	"github.com/nhle/productivity-tracker/internal/stats"
)

var now = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "░░░░░░░░░░", ProgressBar(0, 10))
	assert.Equal(t, "█████░░░░░", ProgressBar(50, 10))
	assert.Equal(t, "██████████", ProgressBar(140, 10))
	assert.Equal(t, "░░░░", ProgressBar(-5, 4))
	assert.Equal(t, "", ProgressBar(50, 0))
}

func TestTasks(t *testing.T) {
	due := now.Add(-48 * time.Hour)
	out := Tasks([]model.Task{
		{ID: "aaaa-bbbb", Title: "File taxes", Priority: model.PriorityHigh, Status: model.TaskPending, Category: "1", DueDate: &due},
		{ID: "cccc-dddd", Title: "Walk dog", Priority: model.PriorityLow, Status: model.TaskCompleted},
	}, model.DefaultCategories(now), now)

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "File taxes")
	assert.Contains(t, lines[0], "overdue")
	assert.Contains(t, lines[0], "Work")
	assert.Contains(t, lines[0], "aaaa")
	assert.NotContains(t, lines[0], "bbbb")
	assert.Contains(t, lines[1], "[x]")
	assert.Contains(t, lines[1], "completed")

	assert.Contains(t, Tasks(nil, nil, now), "no tasks")
}

func TestHabitsAndChallenges(t *testing.T) {
	out := Habits([]stats.HabitProgress{{
		Habit:          model.Habit{ID: "h", Title: "Read"},
		CompletedToday: true,
		Streak:         4,
		CompletionRate: 80,
	}})
	assert.Contains(t, out, "[x] Read streak 4")
	assert.Contains(t, out, "80%")

	c := model.Challenge{
		ID:           "c",
		Title:        "Pushups",
		StartDate:    now.AddDate(0, 0, -1),
		EndDate:      now.AddDate(0, 0, 5),
		TargetValue:  100,
		CurrentValue: 25,
		Unit:         "reps",
	}
	out = Challenges(stats.ChallengesWithProgress([]model.Challenge{c}, nil, now), now)
	assert.Contains(t, out, "25/100 reps")
	assert.Contains(t, out, "active")
	assert.Contains(t, out, "5 days left")
}

func TestDashboard(t *testing.T) {
	out := Dashboard(
		stats.TaskStats{Total: 3, Overdue: 1, CompletionRate: 33},
		stats.HabitStats{Total: 2, CompletedToday: 1},
		stats.ChallengeStats{Total: 1, Active: 1, AverageProgress: 40},
	)
	for _, want := range []string{"Tasks", "Habits", "Challenges", "overdue    1", "today      1/2", "avg        40%"} {
		assert.Contains(t, out, want)
	}
}
