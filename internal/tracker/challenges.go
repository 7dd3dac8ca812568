package tracker

import (
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/productivity-tracker/internal/model"
)

// ChallengeInput holds the user-supplied fields of a new challenge.
type ChallengeInput struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	TargetValue float64
	Unit        string
	Category    string
	Color       string
	Icon        string
	Rewards     []string
}

func challengeID(c model.Challenge) string { return c.ID }

func validateChallenge(c model.Challenge) error {
	if c.Title == "" {
		return fmt.Errorf("%w: challenge title must not be empty", ErrInvalidInput)
	}
	if !(c.TargetValue > 0) || math.IsInf(c.TargetValue, 1) {
		return fmt.Errorf("%w: challenge target must be positive", ErrInvalidInput)
	}
	if c.EndDate.Before(c.StartDate) {
		return fmt.Errorf("%w: challenge ends before it starts", ErrInvalidInput)
	}
	return nil
}

// Challenges returns every stored challenge.
func (s *Service) Challenges() []model.Challenge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.LoadChallenges().Records
}

// ChallengeEntries returns every stored challenge entry.
func (s *Service) ChallengeEntries() []model.ChallengeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.LoadChallengeEntries().Records
}

// CreateChallenge stores a new active challenge with no progress.
func (s *Service) CreateChallenge(in ChallengeInput) (model.Challenge, error) {
	now := s.stamp()
	c := model.Challenge{
		ID:          newID(),
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Status:      model.ChallengeActive,
		StartDate:   in.StartDate.UTC(),
		EndDate:     in.EndDate.UTC(),
		TargetValue: in.TargetValue,
		Unit:        in.Unit,
		Category:    in.Category,
		Color:       in.Color,
		Icon:        in.Icon,
		Rewards:     orEmpty(in.Rewards),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validateChallenge(c); err != nil {
		return model.Challenge{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	challenges := s.m.LoadChallenges().Records
	s.m.SaveChallenges(append(challenges, c))
	s.log.Debug("created challenge", zap.String("id", c.ID))
	return c, nil
}

// UpdateChallenge applies fn to the challenge with the given id.
func (s *Service) UpdateChallenge(id string, fn func(*model.Challenge)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	challenges := s.m.LoadChallenges().Records
	i := indexOf(challenges, id, challengeID)
	if i < 0 {
		s.missing("challenge", id)
		return nil
	}

	updated := challenges[i]
	fn(&updated)
	updated.ID = challenges[i].ID
	updated.CreatedAt = challenges[i].CreatedAt
	updated.Rewards = orEmpty(updated.Rewards)
	updated.Title = strings.TrimSpace(updated.Title)
	if err := validateChallenge(updated); err != nil {
		return err
	}
	now := s.stamp()
	if updated.Status == model.ChallengeCompleted && updated.CompletedAt == nil {
		updated.CompletedAt = &now
	} else if updated.Status != model.ChallengeCompleted {
		updated.CompletedAt = nil
	}
	updated.UpdatedAt = now
	challenges[i] = updated

	s.m.SaveChallenges(challenges)
	return nil
}

// DeleteChallenge removes the challenge and every entry recorded for it.
func (s *Service) DeleteChallenge(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	challenges := s.m.LoadChallenges().Records
	i := indexOf(challenges, id, challengeID)
	if i < 0 {
		s.missing("challenge", id)
		return nil
	}

	entries := s.m.LoadChallengeEntries().Records
	kept := entries[:0]
	for _, e := range entries {
		if e.ChallengeID != id {
			kept = append(kept, e)
		}
	}
	removed := len(entries) - len(kept)

	s.m.SaveChallenges(append(challenges[:i], challenges[i+1:]...))
	if removed > 0 {
		s.m.SaveChallengeEntries(kept)
	}
	s.log.Debug("deleted challenge",
		zap.String("id", id),
		zap.Int("entries", removed),
	)
	return nil
}

// AddChallengeProgress records value against the challenge for today and
// adds it to the running total. Reaching the target marks the challenge
// completed.
func (s *Service) AddChallengeProgress(id string, value float64, notes string) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: progress must be a finite number", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	challenges := s.m.LoadChallenges().Records
	i := indexOf(challenges, id, challengeID)
	if i < 0 {
		s.missing("challenge", id)
		return nil
	}

	now := s.stamp()
	entry := model.ChallengeEntry{
		ID:          newID(),
		ChallengeID: id,
		Date:        model.DateKey(s.now()),
		Value:       value,
		Notes:       notes,
		CreatedAt:   now,
	}

	c := &challenges[i]
	c.CurrentValue += value
	c.UpdatedAt = now
	if c.CurrentValue >= c.TargetValue && c.Status != model.ChallengeCompleted {
		c.Status = model.ChallengeCompleted
		c.CompletedAt = &now
	}

	entries := s.m.LoadChallengeEntries().Records
	s.m.SaveChallengeEntries(append(entries, entry))
	s.m.SaveChallenges(challenges)
	return nil
}
