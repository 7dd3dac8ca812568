package tracker_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/productivity-tracker/internal/model"
	"github.com/nhle/productivity-tracker/internal/tracker"
	"github.com/nhle/productivity-tracker/tests/testutil"
)

func challengeInput(target float64) tracker.ChallengeInput {
	return tracker.ChallengeInput{
		Title:       "Run 50km",
		StartDate:   testutil.Now.AddDate(0, 0, -1),
		EndDate:     testutil.Now.AddDate(0, 0, 29),
		TargetValue: target,
		Unit:        "km",
	}
}

func TestCreateChallenge(t *testing.T) {
	svc, _ := newService(t)

	c, err := svc.CreateChallenge(challengeInput(50))
	require.NoError(t, err)
	assert.Equal(t, model.ChallengeActive, c.Status)
	assert.Zero(t, c.CurrentValue)

	for _, target := range []float64{0, -5, math.NaN()} {
		_, err := svc.CreateChallenge(challengeInput(target))
		assert.ErrorIs(t, err, tracker.ErrInvalidInput, "target %v", target)
	}

	in := challengeInput(10)
	in.EndDate = in.StartDate.Add(-time.Hour)
	_, err = svc.CreateChallenge(in)
	assert.ErrorIs(t, err, tracker.ErrInvalidInput)

	assert.Len(t, svc.Challenges(), 1)
}

func TestAddChallengeProgress(t *testing.T) {
	svc, now := newService(t)
	c, err := svc.CreateChallenge(challengeInput(10))
	require.NoError(t, err)

	require.NoError(t, svc.AddChallengeProgress(c.ID, 4, "morning"))
	got := svc.Challenges()[0]
	assert.InDelta(t, 4.0, got.CurrentValue, 0.001)
	assert.Equal(t, model.ChallengeActive, got.Status)

	*now = now.Add(2 * time.Hour)
	require.NoError(t, svc.AddChallengeProgress(c.ID, 6.5, ""))
	got = svc.Challenges()[0]
	assert.InDelta(t, 10.5, got.CurrentValue, 0.001)
	assert.Equal(t, model.ChallengeCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, *now, *got.CompletedAt)

	entries := svc.ChallengeEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "morning", entries[0].Notes)
	assert.Equal(t, "2026-03-15", entries[1].Date)

	assert.ErrorIs(t, svc.AddChallengeProgress(c.ID, math.Inf(1), ""), tracker.ErrInvalidInput)
}

func TestDeleteChallenge_CascadesToEntries(t *testing.T) {
	svc, _ := newService(t)
	gone, err := svc.CreateChallenge(challengeInput(10))
	require.NoError(t, err)
	kept, err := svc.CreateChallenge(challengeInput(10))
	require.NoError(t, err)

	require.NoError(t, svc.AddChallengeProgress(gone.ID, 1, ""))
	require.NoError(t, svc.AddChallengeProgress(gone.ID, 2, ""))
	require.NoError(t, svc.AddChallengeProgress(kept.ID, 3, ""))

	require.NoError(t, svc.DeleteChallenge(gone.ID))

	challenges := svc.Challenges()
	require.Len(t, challenges, 1)
	assert.Equal(t, kept.ID, challenges[0].ID)

	entries := svc.ChallengeEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, kept.ID, entries[0].ChallengeID)
}

func TestUpdateChallenge(t *testing.T) {
	svc, _ := newService(t)
	c, err := svc.CreateChallenge(challengeInput(10))
	require.NoError(t, err)

	require.NoError(t, svc.UpdateChallenge(c.ID, func(c *model.Challenge) {
		c.Status = model.ChallengePaused
	}))
	assert.Equal(t, model.ChallengePaused, svc.Challenges()[0].Status)

	require.NoError(t, svc.UpdateChallenge(c.ID, func(c *model.Challenge) {
		c.Status = model.ChallengeCompleted
	}))
	assert.NotNil(t, svc.Challenges()[0].CompletedAt)

	err = svc.UpdateChallenge(c.ID, func(c *model.Challenge) { c.TargetValue = 0 })
	assert.ErrorIs(t, err, tracker.ErrInvalidInput)
}
