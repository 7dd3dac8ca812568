// Package tracker is the single-writer layer over the storage manager.
// Every mutation loads the affected collections, applies the change and
// saves them back while holding one lock, so two operations in the same
// process can never interleave their read-modify-write cycles.
package tracker

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nhle/productivity-tracker/internal/model"
	"github.com/nhle/productivity-tracker/internal/store"
)

// ErrInvalidInput is returned when a create or update would store an
// entity that violates its constraints.
var ErrInvalidInput = errors.New("invalid input")

// Option configures a Service.
type Option func(*Service)

// WithClock sets the time source for timestamps and date keys.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) { s.log = log }
}

// Service exposes entity operations backed by a store.Manager.
//
// Operations addressing an id that does not exist are silent no-ops and
// return nil.
type Service struct {
	mu  sync.Mutex
	m   *store.Manager
	log *zap.Logger
	now func() time.Time
}

// New returns a service over an initialized manager.
func New(m *store.Manager, opts ...Option) *Service {
	s := &Service{
		m:   m,
		log: zap.NewNop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time { return s.now() }

// Manager returns the underlying storage manager.
func (s *Service) Manager() *store.Manager { return s.m }

func newID() string { return uuid.New().String() }

// stamp returns the current time in UTC for persisted timestamps.
func (s *Service) stamp() time.Time { return s.now().UTC() }

func (s *Service) missing(kind, id string) {
	s.log.Debug("ignoring operation on unknown id",
		zap.String("kind", kind),
		zap.String("id", id),
	)
}

// orEmpty keeps list fields encoding as [] rather than null.
func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

// indexOf returns the position of the element whose id matches, or -1.
func indexOf[T any](items []T, id string, idOf func(T) string) int {
	for i, it := range items {
		if idOf(it) == id {
			return i
		}
	}
	return -1
}

// Snapshot returns every collection as currently stored.
func (s *Service) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.ExportData()
}
