package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/productivity-tracker/internal/model"
	"github.com/nhle/productivity-tracker/internal/stats"
	"github.com/nhle/productivity-tracker/internal/tags"
	"github.com/nhle/productivity-tracker/internal/theme"
	"github.com/nhle/productivity-tracker/internal/tracker"
)

var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Manage habits",
}

var (
	habitDesc      string
	habitFrequency string
	habitTarget    int
	habitColor     string
	habitIcon      string
	habitRemind    string
	habitTags      []string
	habitDate      string
	habitQuery     string
)

var habitAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Create a habit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := svc.CreateHabit(tracker.HabitInput{
			Title:        args[0],
			Description:  habitDesc,
			Frequency:    model.Frequency(habitFrequency),
			TargetCount:  habitTarget,
			Color:        habitColor,
			Icon:         habitIcon,
			ReminderTime: habitRemind,
			Tags:         tags.Merge(habitTags, args[0]),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created habit %s\n", h.ID)
		return nil
	},
}

func resolveHabit(ref string) (string, error) {
	return resolveID("habit", ref, idsOf(svc.Habits(), func(h model.Habit) string { return h.ID }))
}

var habitCheckCmd = &cobra.Command{
	Use:   "check [id]",
	Short: "Toggle a habit's completion for a day (default today)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveHabit(args[0])
		if err != nil {
			return err
		}
		day := svc.Now()
		if habitDate != "" {
			d, err := parseWhen(habitDate, day)
			if err != nil {
				return fmt.Errorf("--date: %w", err)
			}
			day = *d
		}
		if err := svc.ToggleHabit(id, day); err != nil {
			return err
		}
		state := "not done"
		if svc.HabitCompleted(id, day) {
			state = "done"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", model.DateKey(day), state)
		return nil
	},
}

var habitRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a habit and its history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveHabit(args[0])
		if err != nil {
			return err
		}
		return svc.DeleteHabit(id)
	},
}

var habitLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List active habits with today's progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		habits := stats.Search(svc.Habits(), habitQuery, stats.HabitFields)
		progress := stats.TodaysHabits(habits, svc.HabitEntries(), svc.Now())
		fmt.Fprintln(cmd.OutOrStdout(), theme.Habits(progress))
		return nil
	},
}

func init() {
	habitAddCmd.Flags().StringVarP(&habitDesc, "desc", "d", "", "Description")
	habitAddCmd.Flags().StringVarP(&habitFrequency, "frequency", "f", "", "daily or weekly")
	habitAddCmd.Flags().IntVar(&habitTarget, "target", 0, "Completions per period")
	habitAddCmd.Flags().StringVar(&habitColor, "color", "", "Hex color")
	habitAddCmd.Flags().StringVar(&habitIcon, "icon", "", "Icon name")
	habitAddCmd.Flags().StringVar(&habitRemind, "remind", "", "Daily reminder time (HH:MM)")
	habitAddCmd.Flags().StringSliceVarP(&habitTags, "tag", "t", nil, "Tag (repeatable)")

	habitCheckCmd.Flags().StringVar(&habitDate, "date", "", "Day to toggle (YYYY-MM-DD)")
	habitLsCmd.Flags().StringVarP(&habitQuery, "query", "q", "", "Search title, description and tags")

	habitCmd.AddCommand(habitAddCmd)
	habitCmd.AddCommand(habitCheckCmd)
	habitCmd.AddCommand(habitRmCmd)
	habitCmd.AddCommand(habitLsCmd)
}
