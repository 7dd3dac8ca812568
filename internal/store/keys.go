package store

// DefaultKeyPrefix namespaces stored keys when no prefix is configured.
const DefaultKeyPrefix = "productivity"

// Keys is the persisted key layout. Every key shares a common prefix.
type Keys struct {
	Tasks            string
	Habits           string
	HabitEntries     string
	Challenges       string
	ChallengeEntries string
	TaskCategories   string
	Notifications    string
	Preferences      string
	Version          string
	LastSync         string
}

// NewKeys returns the key layout under prefix.
func NewKeys(prefix string) Keys {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return Keys{
		Tasks:            prefix + "_tasks",
		Habits:           prefix + "_habits",
		HabitEntries:     prefix + "_habit_entries",
		Challenges:       prefix + "_challenges",
		ChallengeEntries: prefix + "_challenge_entries",
		TaskCategories:   prefix + "_task_categories",
		Notifications:    prefix + "_notifications",
		Preferences:      prefix + "_preferences",
		Version:          prefix + "_app_version",
		LastSync:         prefix + "_last_sync",
	}
}

// All returns every key in the layout.
func (k Keys) All() []string {
	return []string{
		k.Tasks, k.Habits, k.HabitEntries,
		k.Challenges, k.ChallengeEntries,
		k.TaskCategories, k.Notifications, k.Preferences,
		k.Version, k.LastSync,
	}
}
