package tracker

import (
	"fmt"
	"strings"

	"github.com/nhle/productivity-tracker/internal/model"
)

// Categories returns the task categories.
func (s *Service) Categories() []model.TaskCategory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.LoadTaskCategories().Records
}

// CreateCategory stores a new task category.
func (s *Service) CreateCategory(name, color, icon string) (model.TaskCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.TaskCategory{}, fmt.Errorf("%w: category name must not be empty", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := model.TaskCategory{
		ID:        newID(),
		Name:      name,
		Color:     color,
		Icon:      icon,
		CreatedAt: s.stamp(),
	}
	categories := s.m.LoadTaskCategories().Records
	s.m.SaveTaskCategories(append(categories, c))
	return c, nil
}

// DeleteCategory removes a category. Tasks keep their category id.
func (s *Service) DeleteCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories := s.m.LoadTaskCategories().Records
	i := indexOf(categories, id, func(c model.TaskCategory) string { return c.ID })
	if i < 0 {
		s.missing("category", id)
		return nil
	}
	s.m.SaveTaskCategories(append(categories[:i], categories[i+1:]...))
	return nil
}

// Preferences returns the user preferences.
func (s *Service) Preferences() model.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.LoadPreferences()
}

// UpdatePreferences applies fn to the stored preferences.
func (s *Service) UpdatePreferences(fn func(*model.Preferences)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs := s.m.LoadPreferences()
	fn(&prefs)

	switch prefs.Theme {
	case model.ThemeLight, model.ThemeDark, model.ThemeSystem:
	default:
		return fmt.Errorf("%w: unknown theme %q", ErrInvalidInput, prefs.Theme)
	}
	if prefs.StartOfWeek < 0 || prefs.StartOfWeek > 6 {
		return fmt.Errorf("%w: start of week must be 0-6", ErrInvalidInput)
	}
	if prefs.TimeFormat != "12h" && prefs.TimeFormat != "24h" {
		return fmt.Errorf("%w: unknown time format %q", ErrInvalidInput, prefs.TimeFormat)
	}

	s.m.SavePreferences(prefs)
	return nil
}

// Notifications returns every stored notification.
func (s *Service) Notifications() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.LoadNotifications().Records
}

// UpdateNotifications replaces the stored notifications with the result of
// fn, which receives the current list.
func (s *Service) UpdateNotifications(fn func([]model.Notification) []model.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m.SaveNotifications(fn(s.m.LoadNotifications().Records))
}
