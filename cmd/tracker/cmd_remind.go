package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nhle/productivity-tracker/internal/reminder"
)

var remindWatch bool

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Deliver due reminders",
	Long: `Schedules notifications for task reminders and habit reminder times,
then delivers the ones that are due. With --watch it keeps running and
checks again every reminders.interval_sec seconds.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		d := reminder.NewDispatcher(svc, reminder.NewLogNotifier(logger.Named("notify")), logger.Named("reminder"))
		if !remindWatch {
			sum, err := d.Run(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "scheduled %d, delivered %d\n", sum.Scheduled, sum.Delivered)
			return nil
		}
		return watch(ctx, d, time.Duration(cfg.Reminders.IntervalSec)*time.Second)
	},
}

func watch(ctx context.Context, d *reminder.Dispatcher, interval time.Duration) error {
	run := func() {
		if _, err := d.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("reminder pass failed", zap.Error(err))
		}
	}

	s := reminder.NewScheduler(time.Local)
	if _, err := s.Every(interval, run); err != nil {
		return err
	}

	logger.Info("watching reminders", zap.Duration("interval", interval))
	run()
	s.Start()
	<-ctx.Done()
	s.Stop()
	return nil
}

func init() {
	remindCmd.Flags().BoolVarP(&remindWatch, "watch", "w", false, "Keep running and check periodically")
}
