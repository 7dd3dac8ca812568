package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhle/productivity-tracker/internal/stats"
	"github.com/nhle/productivity-tracker/internal/theme"
)

var (
	exportOut string
	resetYes  bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task, habit and challenge summaries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		now := svc.Now()
		snap := svc.Snapshot()
		fmt.Fprintln(cmd.OutOrStdout(), theme.Dashboard(
			stats.Tasks(snap.Tasks, now),
			stats.Habits(snap.Habits, snap.HabitEntries, now),
			stats.Challenges(snap.Challenges, now),
		))
		if at, ok := manager.LastSyncAt(); ok {
			fmt.Fprintln(cmd.OutOrStdout(), theme.MutedStyle.Render("last import "+at.Local().Format("2006-01-02 15:04")))
		}
		fmt.Fprintln(cmd.OutOrStdout(), theme.MutedStyle.Render(
			fmt.Sprintf("%d of %d bytes used", manager.StorageSize(), cfg.Storage.QuotaBytes)))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all data as a JSON document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if exportOut != "" && exportOut != "-" {
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("creating %s: %w", exportOut, err)
			}
			defer f.Close()
			w = f
		}
		return manager.ExportJSON(w)
	},
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Restore data from a JSON document (- for stdin)",
	Long: `Restore data from a document written by "tracker export".

Collections present in the document replace the stored ones, even when
empty. Collections missing from the document are left as they are.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()
			r = f
		}
		if err := manager.ImportJSON(r); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "import complete")
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all data and restore defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("refusing to delete all data without --yes")
		}
		manager.ClearAll()
		if err := manager.Init(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "all data deleted")
		return nil
	},
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Drop completed tasks and sent notifications older than 30 days",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		before := manager.StorageSize()
		manager.Cleanup()
		fmt.Fprintf(cmd.OutOrStdout(), "freed %d bytes\n", before-manager.StorageSize())
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default stdout)")
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "Confirm deleting all data")
}
