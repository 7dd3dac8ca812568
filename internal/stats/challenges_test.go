package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/productivity-tracker/internal/model"
)

func challenge(start, end time.Duration, target, current float64) model.Challenge {
	return model.Challenge{
		ID:           "c",
		Status:       model.ChallengeActive,
		StartDate:    now.Add(start),
		EndDate:      now.Add(end),
		TargetValue:  target,
		CurrentValue: current,
	}
}

func TestChallengeProgress(t *testing.T) {
	tests := []struct {
		name            string
		target, current float64
		want            float64
	}{
		{name: "half way", target: 10, current: 5, want: 50},
		{name: "clamped above", target: 10, current: 25, want: 100},
		{name: "clamped below", target: 10, current: -4, want: 0},
		{name: "zero target", target: 0, current: 5, want: 0},
		{name: "negative target", target: -10, current: 5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := challenge(-time.Hour, time.Hour, tt.target, tt.current)
			assert.InDelta(t, tt.want, ChallengeProgress(c), 0.001)
		})
	}
}

func TestChallengeStatus(t *testing.T) {
	day := 24 * time.Hour

	tests := []struct {
		name string
		c    model.Challenge
		want model.ChallengeStatus
	}{
		{name: "running", c: challenge(-day, day, 10, 2), want: model.ChallengeActive},
		{name: "not started", c: challenge(day, 2*day, 10, 0), want: model.ChallengeUpcoming},
		{name: "ended short", c: challenge(-2*day, -day, 10, 2), want: model.ChallengeOverdue},
		{name: "target reached", c: challenge(-2*day, -day, 10, 10), want: model.ChallengeCompleted},
		{name: "zero target never completes", c: challenge(-day, day, 0, 0), want: model.ChallengeActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChallengeStatus(tt.c, now))
		})
	}

	t.Run("persisted status ignored", func(t *testing.T) {
		c := challenge(-day, day, 10, 2)
		c.Status = model.ChallengeCompleted
		assert.Equal(t, model.ChallengeActive, ChallengeStatus(c, now))
	})
}

func TestDaysUntil(t *testing.T) {
	day := 24 * time.Hour
	assert.Equal(t, 3, DaysUntil(challenge(3*day, 10*day, 1, 0), now))
	assert.Equal(t, 5, DaysUntil(challenge(-day, 5*day, 1, 0), now))
	assert.Equal(t, -2, DaysUntil(challenge(-5*day, -2*day, 1, 0), now))
}

func TestChallenges(t *testing.T) {
	day := 24 * time.Hour
	list := []model.Challenge{
		challenge(-day, day, 10, 2),
		challenge(-day, day, 10, 7),
		challenge(-2*day, -day, 4, 4),
		challenge(day, 2*day, 10, 0),
	}

	s := Challenges(list, now)

	assert.Equal(t, ChallengeStats{
		Total:           4,
		Active:          2,
		Completed:       1,
		CompletionRate:  25,
		AverageProgress: 45,
	}, s)
}

func TestChallengesWithProgress(t *testing.T) {
	a := challenge(-time.Hour, time.Hour, 10, 5)
	a.ID = "a"
	b := challenge(-time.Hour, time.Hour, 10, 0)
	b.ID = "b"
	entries := []model.ChallengeEntry{
		{ID: "1", ChallengeID: "a", Value: 2},
		{ID: "2", ChallengeID: "a", Value: 3},
		{ID: "3", ChallengeID: "gone", Value: 1},
	}

	views := ChallengesWithProgress([]model.Challenge{a, b}, entries, now)

	assert.Len(t, views, 2)
	assert.InDelta(t, 50.0, views[0].Progress, 0.001)
	assert.Len(t, views[0].Entries, 2)
	assert.Empty(t, views[1].Entries)
	assert.Equal(t, model.ChallengeActive, views[1].Status)
}
