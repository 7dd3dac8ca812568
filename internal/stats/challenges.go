package stats

import (
	"math"
	"time"

	"github.com/nhle/productivity-tracker/internal/model"
)

// ChallengeProgress returns the percentage of the target reached, clamped
// to [0, 100]. A challenge without a positive target has no progress.
func ChallengeProgress(c model.Challenge) float64 {
	if c.TargetValue <= 0 {
		return 0
	}
	p := c.CurrentValue / c.TargetValue * 100
	return math.Max(0, math.Min(p, 100))
}

// ChallengeStatus derives the status shown for a challenge from its dates
// and progress. The persisted status is not consulted.
func ChallengeStatus(c model.Challenge, now time.Time) model.ChallengeStatus {
	switch {
	case c.TargetValue > 0 && c.CurrentValue >= c.TargetValue:
		return model.ChallengeCompleted
	case c.StartDate.After(now):
		return model.ChallengeUpcoming
	case c.EndDate.Before(now):
		return model.ChallengeOverdue
	default:
		return model.ChallengeActive
	}
}

// DaysUntil returns whole days until the challenge starts, or until it
// ends once started. Past end dates yield negative values.
func DaysUntil(c model.Challenge, now time.Time) int {
	target := c.EndDate
	if c.StartDate.After(now) {
		target = c.StartDate
	}
	return int(target.Sub(now).Hours() / 24)
}

// ChallengeView is a challenge annotated with its derived figures.
type ChallengeView struct {
	Challenge model.Challenge
	Progress  float64
	Status    model.ChallengeStatus
	Entries   []model.ChallengeEntry
}

// ChallengesWithProgress annotates every challenge with progress, derived
// status and its entries.
func ChallengesWithProgress(challenges []model.Challenge, entries []model.ChallengeEntry, now time.Time) []ChallengeView {
	byChallenge := make(map[string][]model.ChallengeEntry)
	for _, e := range entries {
		byChallenge[e.ChallengeID] = append(byChallenge[e.ChallengeID], e)
	}
	out := make([]ChallengeView, 0, len(challenges))
	for _, c := range challenges {
		out = append(out, ChallengeView{
			Challenge: c,
			Progress:  ChallengeProgress(c),
			Status:    ChallengeStatus(c, now),
			Entries:   byChallenge[c.ID],
		})
	}
	return out
}

// ChallengeStats summarises challenges by derived status.
type ChallengeStats struct {
	Total     int
	Active    int
	Completed int

	// CompletionRate and AverageProgress are rounded percentages.
	CompletionRate  int
	AverageProgress int
}

// Challenges computes ChallengeStats. AverageProgress is taken over the
// active challenges only.
func Challenges(challenges []model.Challenge, now time.Time) ChallengeStats {
	s := ChallengeStats{Total: len(challenges)}
	progressSum := 0.0
	for _, c := range challenges {
		switch ChallengeStatus(c, now) {
		case model.ChallengeCompleted:
			s.Completed++
		case model.ChallengeActive:
			s.Active++
			progressSum += ChallengeProgress(c)
		}
	}
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	if s.Active > 0 {
		s.AverageProgress = int(math.Round(progressSum / float64(s.Active)))
	}
	return s
}
