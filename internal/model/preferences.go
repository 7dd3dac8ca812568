package model

// Theme choices for rendering.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// Preferences is the singleton user settings record.
type Preferences struct {
	Theme                string `json:"theme"`
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	DefaultTaskCategory  string `json:"defaultTaskCategory"`

	// StartOfWeek is 0 for Sunday through 6 for Saturday.
	StartOfWeek int    `json:"startOfWeek"`
	TimeFormat  string `json:"timeFormat"`
	DateFormat  string `json:"dateFormat"`
	Language    string `json:"language"`
}

// DefaultPreferences returns the settings written on first run and used
// to fill fields missing from stored preferences.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:                ThemeSystem,
		NotificationsEnabled: true,
		DefaultTaskCategory:  "4", // Personal
		StartOfWeek:          1,   // Monday
		TimeFormat:           "12h",
		DateFormat:           "MM/dd/yyyy",
		Language:             "en",
	}
}
