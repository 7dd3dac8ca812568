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

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var (
	taskDesc     string
	taskCategory string
	taskPriority string
	taskDue      string
	taskRemind   string
	taskTags     []string

	taskFilterCategory string
	taskFilterPriority string
	taskFilterTags     []string
	taskFilterStatus   string
	taskFilterQuery    string
	taskFilterUpcoming int
	taskSortPriority   bool
)

var taskAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Create a task (#hashtags in the title become tags)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		now := svc.Now()
		due, err := parseWhen(taskDue, now)
		if err != nil {
			return fmt.Errorf("--due: %w", err)
		}
		remind, err := parseWhen(taskRemind, now)
		if err != nil {
			return fmt.Errorf("--remind: %w", err)
		}

		t, err := svc.CreateTask(tracker.TaskInput{
			Title:       args[0],
			Description: taskDesc,
			Category:    taskCategory,
			Priority:    model.Priority(taskPriority),
			DueDate:     due,
			Reminder:    remind,
			Tags:        tags.Merge(taskTags, args[0]),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created task %s\n", t.ID)
		return nil
	},
}

func resolveTask(ref string) (string, error) {
	return resolveID("task", ref, idsOf(svc.Tasks(), func(t model.Task) string { return t.ID }))
}

var taskDoneCmd = &cobra.Command{
	Use:   "done [id]",
	Short: "Toggle a task between pending and completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveTask(args[0])
		if err != nil {
			return err
		}
		return svc.ToggleTask(id)
	},
}

var taskRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveTask(args[0])
		if err != nil {
			return err
		}
		return svc.DeleteTask(id)
	},
}

var taskLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		now := svc.Now()
		tasks := svc.Tasks()
		if taskFilterUpcoming > 0 {
			tasks = stats.UpcomingTasks(tasks, taskFilterUpcoming, now)
		}
		tasks = stats.FilterTasks(tasks, stats.TaskFilter{
			Query:    taskFilterQuery,
			Category: taskFilterCategory,
			Priority: model.Priority(taskFilterPriority),
			Status:   model.TaskStatus(taskFilterStatus),
			Tags:     taskFilterTags,
		}, now)
		if taskSortPriority {
			tasks = stats.SortByPriority(tasks)
		}
		fmt.Fprintln(cmd.OutOrStdout(), theme.Tasks(tasks, svc.Categories(), now))
		return nil
	},
}

func init() {
	taskAddCmd.Flags().StringVarP(&taskDesc, "desc", "d", "", "Description")
	taskAddCmd.Flags().StringVarP(&taskCategory, "category", "c", "", "Category id (default from preferences)")
	taskAddCmd.Flags().StringVarP(&taskPriority, "priority", "p", "", "high, medium or low")
	taskAddCmd.Flags().StringVar(&taskDue, "due", "", "Due date (YYYY-MM-DD [HH:MM], today, tomorrow)")
	taskAddCmd.Flags().StringVar(&taskRemind, "remind", "", "Reminder time (YYYY-MM-DD HH:MM)")
	taskAddCmd.Flags().StringSliceVarP(&taskTags, "tag", "t", nil, "Tag (repeatable)")

	taskLsCmd.Flags().StringVarP(&taskFilterCategory, "category", "c", "", "Only this category id")
	taskLsCmd.Flags().StringVarP(&taskFilterPriority, "priority", "p", "", "Only this priority")
	taskLsCmd.Flags().StringVarP(&taskFilterStatus, "status", "s", "", "pending, completed or overdue")
	taskLsCmd.Flags().StringVarP(&taskFilterQuery, "query", "q", "", "Search title, description and tags")
	taskLsCmd.Flags().StringSliceVarP(&taskFilterTags, "tag", "t", nil, "Any of these tags")
	taskLsCmd.Flags().IntVar(&taskFilterUpcoming, "upcoming", 0, "Only open tasks due within this many days")
	taskLsCmd.Flags().BoolVar(&taskSortPriority, "by-priority", false, "Sort high to low priority")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskRmCmd)
	taskCmd.AddCommand(taskLsCmd)
}
