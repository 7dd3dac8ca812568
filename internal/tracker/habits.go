package tracker

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/productivity-tracker/internal/model"
)

// DefaultHabitColor is used when a habit is created without a color.
const DefaultHabitColor = "#10B981"

// reminderLayout is the HH:MM form of Habit.ReminderTime.
const reminderLayout = "15:04"

// HabitInput holds the user-supplied fields of a new habit.
type HabitInput struct {
	Title       string
	Description string

	// Frequency defaults to daily.
	Frequency model.Frequency

	// TargetCount defaults to 1.
	TargetCount int

	Color        string
	Icon         string
	ReminderTime string
	Tags         []string
}

func habitID(h model.Habit) string { return h.ID }

func validateHabit(h model.Habit) error {
	if h.Title == "" {
		return fmt.Errorf("%w: habit title must not be empty", ErrInvalidInput)
	}
	if h.Frequency != model.FrequencyDaily && h.Frequency != model.FrequencyWeekly {
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, h.Frequency)
	}
	if h.TargetCount <= 0 {
		return fmt.Errorf("%w: habit target must be positive", ErrInvalidInput)
	}
	if h.ReminderTime != "" {
		if _, err := time.Parse(reminderLayout, h.ReminderTime); err != nil {
			return fmt.Errorf("%w: reminder time %q is not HH:MM", ErrInvalidInput, h.ReminderTime)
		}
	}
	return nil
}

// Habits returns every stored habit.
func (s *Service) Habits() []model.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.LoadHabits().Records
}

// HabitEntries returns every stored habit entry.
func (s *Service) HabitEntries() []model.HabitEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.LoadHabitEntries().Records
}

// CreateHabit stores a new active habit and returns it.
func (s *Service) CreateHabit(in HabitInput) (model.Habit, error) {
	now := s.stamp()
	h := model.Habit{
		ID:           newID(),
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Frequency:    in.Frequency,
		TargetCount:  in.TargetCount,
		IsActive:     true,
		Color:        in.Color,
		Icon:         in.Icon,
		ReminderTime: in.ReminderTime,
		Tags:         orEmpty(in.Tags),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if h.Frequency == "" {
		h.Frequency = model.FrequencyDaily
	}
	if h.TargetCount == 0 {
		h.TargetCount = 1
	}
	if h.Color == "" {
		h.Color = DefaultHabitColor
	}
	if err := validateHabit(h); err != nil {
		return model.Habit{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	habits := s.m.LoadHabits().Records
	s.m.SaveHabits(append(habits, h))
	s.log.Debug("created habit", zap.String("id", h.ID))
	return h, nil
}

// UpdateHabit applies fn to the habit with the given id.
func (s *Service) UpdateHabit(id string, fn func(*model.Habit)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	habits := s.m.LoadHabits().Records
	i := indexOf(habits, id, habitID)
	if i < 0 {
		s.missing("habit", id)
		return nil
	}

	updated := habits[i]
	fn(&updated)
	updated.ID = habits[i].ID
	updated.CreatedAt = habits[i].CreatedAt
	updated.Tags = orEmpty(updated.Tags)
	updated.Title = strings.TrimSpace(updated.Title)
	if err := validateHabit(updated); err != nil {
		return err
	}
	updated.UpdatedAt = s.stamp()
	habits[i] = updated

	s.m.SaveHabits(habits)
	return nil
}

// DeleteHabit removes the habit and every entry recorded for it.
func (s *Service) DeleteHabit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	habits := s.m.LoadHabits().Records
	i := indexOf(habits, id, habitID)
	if i < 0 {
		s.missing("habit", id)
		return nil
	}

	log, _ := model.NewHabitLog(s.m.LoadHabitEntries().Records)
	removed := log.RemoveHabit(id)

	s.m.SaveHabits(append(habits[:i], habits[i+1:]...))
	if removed > 0 {
		s.m.SaveHabitEntries(log.Entries())
	}
	s.log.Debug("deleted habit",
		zap.String("id", id),
		zap.Int("entries", removed),
	)
	return nil
}

// ToggleHabit flips the completion of the habit on the given day,
// creating a completed entry if the day has none.
func (s *Service) ToggleHabit(id string, day time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.m.LoadHabits().Records, id, habitID) < 0 {
		s.missing("habit", id)
		return nil
	}

	log, _ := model.NewHabitLog(s.m.LoadHabitEntries().Records)
	date := model.DateKey(day)
	if e, ok := log.Get(id, date); ok {
		e.Completed = !e.Completed
		log.Put(e)
	} else {
		log.Put(model.HabitEntry{
			ID:        newID(),
			HabitID:   id,
			Date:      date,
			Completed: true,
			CreatedAt: s.stamp(),
		})
	}

	s.m.SaveHabitEntries(log.Entries())
	return nil
}

// HabitCompleted reports whether the habit was completed on the given day.
func (s *Service) HabitCompleted(id string, day time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, _ := model.NewHabitLog(s.m.LoadHabitEntries().Records)
	e, ok := log.Get(id, model.DateKey(day))
	return ok && e.Completed
}
