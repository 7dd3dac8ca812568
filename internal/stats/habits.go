package stats

import (
	"time"

	"github.com/nhle/productivity-tracker/internal/model"
)

// DefaultCompletionWindow is the window, in days, used when callers have
// no preference.
const DefaultCompletionWindow = 30

// Streak counts consecutive completed days for habitID ending today.
// The walk starts at today's date, so a habit not yet done today has a
// streak of 0 even if yesterday was completed.
func Streak(habitID string, entries []model.HabitEntry, now time.Time) int {
	done := make(map[string]bool)
	for _, e := range entries {
		if e.HabitID == habitID && e.Completed {
			done[e.Date] = true
		}
	}
	if len(done) == 0 {
		return 0
	}

	streak := 0
	day := model.StartOfDay(now)
	for done[model.DateKey(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// CompletionRate returns the percentage of completed entries among the
// entries for habitID dated within the last windowDays days, today
// included. It is 0 when no entries fall in the window.
func CompletionRate(habitID string, entries []model.HabitEntry, windowDays int, now time.Time) float64 {
	if windowDays <= 0 {
		return 0
	}
	today := model.StartOfDay(now)
	from := model.DateKey(today.AddDate(0, 0, -(windowDays - 1)))
	to := model.DateKey(today)

	present, completed := 0, 0
	for _, e := range entries {
		// Date keys sort lexically in calendar order.
		if e.HabitID != habitID || e.Date < from || e.Date > to {
			continue
		}
		present++
		if e.Completed {
			completed++
		}
	}
	if present == 0 {
		return 0
	}
	return float64(completed) / float64(present) * 100
}

// CompletedOn reports whether habitID has a completed entry on day.
func CompletedOn(habitID string, entries []model.HabitEntry, day time.Time) bool {
	key := model.DateKey(day)
	for _, e := range entries {
		if e.HabitID == habitID && e.Date == key {
			return e.Completed
		}
	}
	return false
}

// HabitProgress is a habit annotated with its derived figures for today.
type HabitProgress struct {
	Habit          model.Habit
	CompletedToday bool
	Streak         int
	CompletionRate float64
}

// TodaysHabits annotates every active habit with today's completion,
// streak and default-window completion rate.
func TodaysHabits(habits []model.Habit, entries []model.HabitEntry, now time.Time) []HabitProgress {
	var out []HabitProgress
	for _, h := range habits {
		if !h.IsActive {
			continue
		}
		out = append(out, HabitProgress{
			Habit:          h,
			CompletedToday: CompletedOn(h.ID, entries, now),
			Streak:         Streak(h.ID, entries, now),
			CompletionRate: CompletionRate(h.ID, entries, DefaultCompletionWindow, now),
		})
	}
	return out
}

// HabitStats summarises active habits for today.
type HabitStats struct {
	Total                 int
	CompletedToday        int
	PendingToday          int
	AverageCompletionRate float64
	TotalStreaks          int
	LongestStreak         int
}

// Habits computes HabitStats over the active habits.
func Habits(habits []model.Habit, entries []model.HabitEntry, now time.Time) HabitStats {
	today := TodaysHabits(habits, entries, now)

	var s HabitStats
	s.Total = len(today)
	rateSum := 0.0
	for _, p := range today {
		if p.CompletedToday {
			s.CompletedToday++
		}
		s.TotalStreaks += p.Streak
		if p.Streak > s.LongestStreak {
			s.LongestStreak = p.Streak
		}
		rateSum += p.CompletionRate
	}
	s.PendingToday = s.Total - s.CompletedToday
	if s.Total > 0 {
		s.AverageCompletionRate = rateSum / float64(s.Total)
	}
	return s
}
