package model

import "time"

// Frequency is how often a habit is expected to be performed.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// Habit is a recurring activity tracked by daily entries.
type Habit struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Frequency   Frequency `json:"frequency"`

	// TargetCount is the number of completions expected per period.
	TargetCount int       `json:"targetCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	IsActive    bool      `json:"isActive"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon,omitempty"`

	// ReminderTime is a local time of day in HH:MM form.
	ReminderTime string   `json:"reminderTime,omitempty"`
	Tags         []string `json:"tags"`
}

// HabitEntry records whether a habit was done on a given day.
type HabitEntry struct {
	ID        string    `json:"id"`
	HabitID   string    `json:"habitId"`
	Date      string    `json:"date"`
	Completed bool      `json:"completed"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// EntryKey identifies the single entry allowed per habit and day.
type EntryKey struct {
	HabitID string
	Date    string
}

// Key returns the composite key of the entry.
func (e HabitEntry) Key() EntryKey {
	return EntryKey{HabitID: e.HabitID, Date: e.Date}
}

// HabitLog holds habit entries keyed by (habit, day) so that duplicates
// cannot exist. Insertion order is preserved for persistence.
type HabitLog struct {
	order   []EntryKey
	entries map[EntryKey]HabitEntry
}

// NewHabitLog builds a log from a persisted entry list. Later duplicates of
// an already-seen (habit, day) pair are dropped and counted.
func NewHabitLog(entries []HabitEntry) (*HabitLog, int) {
	l := &HabitLog{entries: make(map[EntryKey]HabitEntry, len(entries))}
	dropped := 0
	for _, e := range entries {
		if _, ok := l.entries[e.Key()]; ok {
			dropped++
			continue
		}
		l.Put(e)
	}
	return l, dropped
}

// Get returns the entry for a habit on a day.
func (l *HabitLog) Get(habitID, date string) (HabitEntry, bool) {
	e, ok := l.entries[EntryKey{HabitID: habitID, Date: date}]
	return e, ok
}

// Put inserts or replaces the entry for its (habit, day) pair.
func (l *HabitLog) Put(e HabitEntry) {
	k := e.Key()
	if _, ok := l.entries[k]; !ok {
		l.order = append(l.order, k)
	}
	l.entries[k] = e
}

// RemoveHabit drops every entry belonging to habitID and returns how many
// were removed.
func (l *HabitLog) RemoveHabit(habitID string) int {
	kept := l.order[:0]
	removed := 0
	for _, k := range l.order {
		if k.HabitID == habitID {
			delete(l.entries, k)
			removed++
			continue
		}
		kept = append(kept, k)
	}
	l.order = kept
	return removed
}

// Len returns the number of entries.
func (l *HabitLog) Len() int { return len(l.order) }

// Entries returns the entries in insertion order.
func (l *HabitLog) Entries() []HabitEntry {
	out := make([]HabitEntry, 0, len(l.order))
	for _, k := range l.order {
		out = append(out, l.entries[k])
	}
	return out
}
