package theme

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/productivity-tracker/internal/model"
	"github.com/nhle/productivity-tracker/internal/stats"
)

// dueLayout is how due dates are shown in task lists.
const dueLayout = "Mon Jan 2 15:04"

// ProgressBar draws percent (0 to 100) as a bar width cells wide.
func ProgressBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	p := math.Max(0, math.Min(percent, 100))
	filled := int(math.Round(p / 100 * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Tasks renders one line per task with its derived status, priority,
// category and due date.
func Tasks(tasks []model.Task, categories []model.TaskCategory, now time.Time) string {
	if len(tasks) == 0 {
		return MutedStyle.Render("no tasks")
	}
	byID := make(map[string]model.TaskCategory, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	var b strings.Builder
	for _, t := range tasks {
		status := stats.TaskStatus(t, now)
		mark := "[ ]"
		if status == model.TaskCompleted {
			mark = "[x]"
		}
		fmt.Fprintf(&b, "%s %s %s %s",
			mark,
			t.Title,
			PriorityStyle(t.Priority).Render(string(t.Priority)),
			TaskStatusStyle(status).Render(string(status)),
		)
		if c, ok := byID[t.Category]; ok {
			b.WriteString(" " + LabelStyle(c.Color).Render(c.Name))
		}
		if t.DueDate != nil {
			b.WriteString(" " + MutedStyle.Render("due "+t.DueDate.In(now.Location()).Format(dueLayout)))
		}
		b.WriteString(" " + MutedStyle.Render(shortID(t.ID)))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

// Habits renders one line per habit with today's completion and streak.
func Habits(habits []stats.HabitProgress) string {
	if len(habits) == 0 {
		return MutedStyle.Render("no active habits")
	}

	var b strings.Builder
	for _, h := range habits {
		mark := "[ ]"
		if h.CompletedToday {
			mark = "[x]"
		}
		fmt.Fprintf(&b, "%s %s streak %d %s %3.0f%% %s\n",
			mark,
			LabelStyle(h.Habit.Color).Render(h.Habit.Title),
			h.Streak,
			ProgressBar(h.CompletionRate, 10),
			h.CompletionRate,
			MutedStyle.Render(shortID(h.Habit.ID)),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Challenges renders one line per challenge with progress and status.
func Challenges(views []stats.ChallengeView, now time.Time) string {
	if len(views) == 0 {
		return MutedStyle.Render("no challenges")
	}

	var b strings.Builder
	for _, v := range views {
		c := v.Challenge
		fmt.Fprintf(&b, "%s %s %3.0f%% %g/%g %s %s",
			LabelStyle(c.Color).Render(c.Title),
			ProgressBar(v.Progress, 20),
			v.Progress,
			c.CurrentValue,
			c.TargetValue,
			c.Unit,
			ChallengeStatusStyle(v.Status).Render(string(v.Status)),
		)
		switch v.Status {
		case model.ChallengeActive:
			b.WriteString(" " + MutedStyle.Render(fmt.Sprintf("%d days left", stats.DaysUntil(c, now))))
		case model.ChallengeUpcoming:
			b.WriteString(" " + MutedStyle.Render(fmt.Sprintf("starts in %d days", stats.DaysUntil(c, now))))
		}
		b.WriteString(" " + MutedStyle.Render(shortID(c.ID)))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

// Dashboard renders the three summary panels side by side.
func Dashboard(ts stats.TaskStats, hs stats.HabitStats, cs stats.ChallengeStats) string {
	tasks := section("Tasks",
		fmt.Sprintf("total      %d", ts.Total),
		fmt.Sprintf("pending    %d", ts.Pending),
		fmt.Sprintf("completed  %d", ts.Completed),
		fmt.Sprintf("overdue    %d", ts.Overdue),
		fmt.Sprintf("due today  %d", ts.DueToday),
		fmt.Sprintf("done       %d%%", ts.CompletionRate),
	)
	habits := section("Habits",
		fmt.Sprintf("active     %d", hs.Total),
		fmt.Sprintf("today      %d/%d", hs.CompletedToday, hs.Total),
		fmt.Sprintf("avg rate   %.0f%%", hs.AverageCompletionRate),
		fmt.Sprintf("streaks    %d", hs.TotalStreaks),
		fmt.Sprintf("longest    %d", hs.LongestStreak),
	)
	challenges := section("Challenges",
		fmt.Sprintf("total      %d", cs.Total),
		fmt.Sprintf("active     %d", cs.Active),
		fmt.Sprintf("completed  %d", cs.Completed),
		fmt.Sprintf("done       %d%%", cs.CompletionRate),
		fmt.Sprintf("avg        %d%%", cs.AverageProgress),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, tasks, habits, challenges)
}

func section(title string, lines ...string) string {
	body := HeaderStyle.Render(title) + "\n" + strings.Join(lines, "\n")
	return PanelStyle.Render(body)
}

// shortID trims a UUID to its first block, enough to address it from
// the command line.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
