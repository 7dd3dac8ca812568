package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nhle/productivity-tracker/internal/model"
	"github.com/nhle/productivity-tracker/internal/stats"
	"github.com/nhle/productivity-tracker/internal/theme"
	"github.com/nhle/productivity-tracker/internal/tracker"
)

var challengeCmd = &cobra.Command{
	Use:   "challenge",
	Short: "Manage challenges",
}

var (
	challengeDesc     string
	challengeTarget   float64
	challengeUnit     string
	challengeStart    string
	challengeEnd      string
	challengeDays     int
	challengeCategory string
	challengeColor    string
	challengeRewards  []string
	challengeNote     string
)

var challengeAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Create a challenge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		now := svc.Now()
		start := model.StartOfDay(now)
		if challengeStart != "" {
			s, err := parseWhen(challengeStart, now)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			start = *s
		}
		end := model.EndOfDay(start.AddDate(0, 0, challengeDays-1))
		if challengeEnd != "" {
			e, err := parseWhen(challengeEnd, now)
			if err != nil {
				return fmt.Errorf("--end: %w", err)
			}
			end = model.EndOfDay(*e)
		}

		c, err := svc.CreateChallenge(tracker.ChallengeInput{
			Title:       args[0],
			Description: challengeDesc,
			StartDate:   start,
			EndDate:     end,
			TargetValue: challengeTarget,
			Unit:        challengeUnit,
			Category:    challengeCategory,
			Color:       challengeColor,
			Rewards:     challengeRewards,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created challenge %s\n", c.ID)
		return nil
	},
}

func resolveChallenge(ref string) (string, error) {
	return resolveID("challenge", ref, idsOf(svc.Challenges(), func(c model.Challenge) string { return c.ID }))
}

var challengeProgressCmd = &cobra.Command{
	Use:   "progress [id] [value]",
	Short: "Record progress towards a challenge",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveChallenge(args[0])
		if err != nil {
			return err
		}
		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("parsing value %q: %w", args[1], err)
		}
		if err := svc.AddChallengeProgress(id, value, challengeNote); err != nil {
			return err
		}
		for _, c := range svc.Challenges() {
			if c.ID == id {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %.0f%%\n",
					theme.ProgressBar(stats.ChallengeProgress(c), 20),
					stats.ChallengeProgress(c),
				)
			}
		}
		return nil
	},
}

var challengeRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a challenge and its progress entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveChallenge(args[0])
		if err != nil {
			return err
		}
		return svc.DeleteChallenge(id)
	},
}

var challengeLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List challenges with progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		now := svc.Now()
		views := stats.ChallengesWithProgress(svc.Challenges(), svc.ChallengeEntries(), now)
		fmt.Fprintln(cmd.OutOrStdout(), theme.Challenges(views, now))
		return nil
	},
}

func init() {
	challengeAddCmd.Flags().StringVarP(&challengeDesc, "desc", "d", "", "Description")
	challengeAddCmd.Flags().Float64Var(&challengeTarget, "target", 0, "Target value (required)")
	challengeAddCmd.Flags().StringVar(&challengeUnit, "unit", "", "Unit of the target, e.g. km")
	challengeAddCmd.Flags().StringVar(&challengeStart, "start", "", "Start date (default today)")
	challengeAddCmd.Flags().StringVar(&challengeEnd, "end", "", "Last day (overrides --days)")
	challengeAddCmd.Flags().IntVar(&challengeDays, "days", 30, "Length in days")
	challengeAddCmd.Flags().StringVarP(&challengeCategory, "category", "c", "", "Category label")
	challengeAddCmd.Flags().StringVar(&challengeColor, "color", "", "Hex color")
	challengeAddCmd.Flags().StringSliceVar(&challengeRewards, "reward", nil, "Reward (repeatable)")
	_ = challengeAddCmd.MarkFlagRequired("target")

	challengeProgressCmd.Flags().StringVarP(&challengeNote, "note", "n", "", "Note for this entry")

	challengeCmd.AddCommand(challengeAddCmd)
	challengeCmd.AddCommand(challengeProgressCmd)
	challengeCmd.AddCommand(challengeRmCmd)
	challengeCmd.AddCommand(challengeLsCmd)
}
