package store

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/productivity-tracker/internal/codec"
	"github.com/nhle/productivity-tracker/internal/model"
)

// CleanupRetention is how long cleanup keeps completed tasks and sent
// notifications.
const CleanupRetention = 30 * 24 * time.Hour

// Adapter wraps a Substrate so that storage failures degrade to "no data"
// instead of reaching the caller. Writes that hit the quota trigger one
// cleanup pass and exactly one retry.
type Adapter struct {
	sub  Substrate
	keys Keys
	log  *zap.Logger
	now  func() time.Time
}

// NewAdapter returns an adapter over sub. keys tells the cleanup pass where
// tasks and notifications live.
func NewAdapter(sub Substrate, keys Keys, log *zap.Logger, now func() time.Time) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Adapter{sub: sub, keys: keys, log: log, now: now}
}

// Get returns the value for key. Read failures are logged and reported as
// absent.
func (a *Adapter) Get(key string) (string, bool) {
	v, ok, err := a.sub.Get(key)
	if err != nil {
		a.log.Error("reading from storage", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return v, ok
}

// Set writes value under key. Any failure remaining after quota recovery is
// logged and dropped.
func (a *Adapter) Set(key, value string) {
	_ = a.Put(key, value)
}

// Put writes value under key like Set but returns the failure that remains
// after quota recovery.
func (a *Adapter) Put(key, value string) error {
	err := a.sub.Set(key, value)
	if err == nil {
		return nil
	}
	a.log.Error("writing to storage", zap.String("key", key), zap.Error(err))
	if !errors.Is(err, ErrQuotaExceeded) {
		return fmt.Errorf("writing %s: %w", key, err)
	}

	a.cleanup()
	if err := a.sub.Set(key, value); err != nil {
		a.log.Error("failed to save after cleanup", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("writing %s after cleanup: %w", key, err)
	}
	return nil
}

// Remove deletes key, logging any failure.
func (a *Adapter) Remove(key string) {
	if err := a.sub.Remove(key); err != nil {
		a.log.Error("removing from storage", zap.String("key", key), zap.Error(err))
	}
}

// Clear deletes everything in the substrate, logging any failure.
func (a *Adapter) Clear() {
	if err := a.sub.Clear(); err != nil {
		a.log.Error("clearing storage", zap.Error(err))
	}
}

// cleanup drops completed tasks and sent notifications older than the
// retention window. It writes straight to the substrate so that a failing
// cleanup write cannot recurse into another cleanup.
func (a *Adapter) cleanup() {
	cutoff := a.now().Add(-CleanupRetention)

	if text, ok := a.Get(a.keys.Tasks); ok {
		res := codec.Decode[model.Task](text)
		if !res.Recovered {
			kept := make([]model.Task, 0, len(res.Records))
			for _, t := range res.Records {
				if t.Status == model.TaskCompleted && (t.CompletedAt == nil || !t.CompletedAt.After(cutoff)) {
					continue
				}
				kept = append(kept, t)
			}
			rewrite(a, a.keys.Tasks, kept, len(res.Records))
		}
	}

	if text, ok := a.Get(a.keys.Notifications); ok {
		res := codec.Decode[model.Notification](text)
		if !res.Recovered {
			kept := make([]model.Notification, 0, len(res.Records))
			for _, n := range res.Records {
				if n.Sent && !n.ScheduledFor.After(cutoff) {
					continue
				}
				kept = append(kept, n)
			}
			rewrite(a, a.keys.Notifications, kept, len(res.Records))
		}
	}
}

// rewrite stores kept under key when cleanup removed anything.
func rewrite[T any](a *Adapter, key string, kept []T, before int) {
	if len(kept) == before {
		return
	}
	text, err := codec.Encode(kept)
	if err != nil {
		a.log.Error("encoding during cleanup", zap.String("key", key), zap.Error(err))
		return
	}
	if err := a.sub.Set(key, text); err != nil {
		a.log.Error("writing during cleanup", zap.String("key", key), zap.Error(err))
		return
	}
	a.log.Info("storage cleanup",
		zap.String("key", key),
		zap.Int("removed", before-len(kept)),
	)
}
