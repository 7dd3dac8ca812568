package reminder

import (
	"context"

	"go.uber.org/zap"

	"github.com/nhle/productivity-tracker/internal/model"
)

// Notifier delivers a due notification to the user.
type Notifier interface {
	Notify(ctx context.Context, n model.Notification) error
}

// LogNotifier delivers notifications as log entries.
type LogNotifier struct {
	log *zap.Logger
}

// NewLogNotifier returns a notifier writing to log.
func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogNotifier{log: log}
}

func (l *LogNotifier) Notify(_ context.Context, n model.Notification) error {
	l.log.Info(n.Title,
		zap.String("message", n.Message),
		zap.String("type", string(n.Type)),
		zap.String("target", n.TargetID),
		zap.Time("scheduled_for", n.ScheduledFor),
	)
	return nil
}
