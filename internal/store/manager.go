package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/productivity-tracker/internal/codec"
	"github.com/nhle/productivity-tracker/internal/model"
)

// CurrentVersion is the schema version written to the version key.
const CurrentVersion = "1.0.0"

// ErrImportFailed wraps every failure of ImportData and ImportJSON.
var ErrImportFailed = errors.New("failed to import data")

// MigrationFunc upgrades stored data written by an older version.
type MigrationFunc func(m *Manager) error

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. The default discards output.
func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// WithClock sets the time source used for timestamps and cleanup.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithKeyPrefix sets the prefix shared by every stored key.
func WithKeyPrefix(prefix string) Option {
	return func(m *Manager) { m.keys = NewKeys(prefix) }
}

// WithMigration registers fn to run when the stored version equals from.
func WithMigration(from string, fn MigrationFunc) Option {
	return func(m *Manager) { m.migrations[from] = fn }
}

// Manager loads and saves every entity collection through an Adapter,
// versions the stored schema and bootstraps default data.
//
// Manager does no locking. Callers that mutate collections must serialize
// their load-mutate-save sequences themselves.
type Manager struct {
	adapter    *Adapter
	keys       Keys
	log        *zap.Logger
	now        func() time.Time
	migrations map[string]MigrationFunc
}

// NewManager returns a manager over sub. Call Init before use.
func NewManager(sub Substrate, opts ...Option) *Manager {
	m := &Manager{
		keys:       NewKeys(DefaultKeyPrefix),
		log:        zap.NewNop(),
		now:        time.Now,
		migrations: make(map[string]MigrationFunc),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.adapter = NewAdapter(sub, m.keys, m.log, m.now)
	return m
}

// Keys returns the key layout in use.
func (m *Manager) Keys() Keys { return m.keys }

// Init runs pending migrations, records the current version and seeds
// default categories and preferences when absent. It is safe to call more
// than once.
func (m *Manager) Init() error {
	stored, _ := m.adapter.Get(m.keys.Version)
	if stored != CurrentVersion {
		if err := m.runMigrations(stored); err != nil {
			return fmt.Errorf("migrating from %q: %w", stored, err)
		}
		m.adapter.Set(m.keys.Version, CurrentVersion)
	}

	if _, ok := m.adapter.Get(m.keys.TaskCategories); !ok {
		m.SaveTaskCategories(model.DefaultCategories(m.now().UTC()))
	}
	if _, ok := m.adapter.Get(m.keys.Preferences); !ok {
		m.SavePreferences(model.DefaultPreferences())
	}
	return nil
}

func (m *Manager) runMigrations(from string) error {
	m.log.Info("migrating storage",
		zap.String("from", from),
		zap.String("to", CurrentVersion),
	)
	// First run: nothing to migrate.
	if from == "" {
		return nil
	}
	fn, ok := m.migrations[from]
	if !ok {
		return nil
	}
	return fn(m)
}

// load reads and decodes the collection stored under key.
func load[T any](m *Manager, key string) codec.Result[T] {
	text, ok := m.adapter.Get(key)
	if !ok {
		return codec.Result[T]{Records: []T{}}
	}
	res := codec.Decode[T](text)
	if res.Recovered {
		m.log.Warn("stored collection is corrupt, treating as empty",
			zap.String("key", key),
			zap.Error(res.Err),
		)
	}
	return res
}

// encode serializes records, logging encode failures.
func encode[T any](m *Manager, key string, records []T) (string, error) {
	text, err := codec.Encode(records)
	if err != nil {
		m.log.Error("encoding collection", zap.String("key", key), zap.Error(err))
		return "", err
	}
	return text, nil
}

func save[T any](m *Manager, key string, records []T) {
	if text, err := encode(m, key, records); err == nil {
		m.adapter.Set(key, text)
	}
}

func put[T any](m *Manager, key string, records []T) error {
	text, err := encode(m, key, records)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return m.adapter.Put(key, text)
}

// LoadTasks returns the stored tasks.
func (m *Manager) LoadTasks() codec.Result[model.Task] {
	return load[model.Task](m, m.keys.Tasks)
}

// SaveTasks replaces the stored tasks.
func (m *Manager) SaveTasks(tasks []model.Task) {
	save(m, m.keys.Tasks, tasks)
}

// LoadHabits returns the stored habits.
func (m *Manager) LoadHabits() codec.Result[model.Habit] {
	return load[model.Habit](m, m.keys.Habits)
}

// SaveHabits replaces the stored habits.
func (m *Manager) SaveHabits(habits []model.Habit) {
	save(m, m.keys.Habits, habits)
}

// LoadHabitEntries returns the stored habit entries with duplicate
// (habit, day) pairs collapsed to their first occurrence.
func (m *Manager) LoadHabitEntries() codec.Result[model.HabitEntry] {
	res := load[model.HabitEntry](m, m.keys.HabitEntries)
	entries, dropped := model.NewHabitLog(res.Records)
	if dropped > 0 {
		m.log.Warn("dropped duplicate habit entries", zap.Int("count", dropped))
		res.Records = entries.Entries()
	}
	return res
}

// SaveHabitEntries replaces the stored habit entries.
func (m *Manager) SaveHabitEntries(entries []model.HabitEntry) {
	save(m, m.keys.HabitEntries, entries)
}

// LoadChallenges returns the stored challenges.
func (m *Manager) LoadChallenges() codec.Result[model.Challenge] {
	return load[model.Challenge](m, m.keys.Challenges)
}

// SaveChallenges replaces the stored challenges.
func (m *Manager) SaveChallenges(challenges []model.Challenge) {
	save(m, m.keys.Challenges, challenges)
}

// LoadChallengeEntries returns the stored challenge entries.
func (m *Manager) LoadChallengeEntries() codec.Result[model.ChallengeEntry] {
	return load[model.ChallengeEntry](m, m.keys.ChallengeEntries)
}

// SaveChallengeEntries replaces the stored challenge entries.
func (m *Manager) SaveChallengeEntries(entries []model.ChallengeEntry) {
	save(m, m.keys.ChallengeEntries, entries)
}

// LoadTaskCategories returns the stored categories, falling back to the
// defaults when none are stored or the stored data is corrupt.
func (m *Manager) LoadTaskCategories() codec.Result[model.TaskCategory] {
	if _, ok := m.adapter.Get(m.keys.TaskCategories); !ok {
		return codec.Result[model.TaskCategory]{Records: model.DefaultCategories(m.now().UTC())}
	}
	res := load[model.TaskCategory](m, m.keys.TaskCategories)
	if res.Recovered {
		res.Records = model.DefaultCategories(m.now().UTC())
	}
	return res
}

// SaveTaskCategories replaces the stored categories.
func (m *Manager) SaveTaskCategories(categories []model.TaskCategory) {
	save(m, m.keys.TaskCategories, categories)
}

// LoadNotifications returns the stored notifications.
func (m *Manager) LoadNotifications() codec.Result[model.Notification] {
	return load[model.Notification](m, m.keys.Notifications)
}

// SaveNotifications replaces the stored notifications.
func (m *Manager) SaveNotifications(notifications []model.Notification) {
	save(m, m.keys.Notifications, notifications)
}

// LoadPreferences returns the stored preferences merged over the defaults.
func (m *Manager) LoadPreferences() model.Preferences {
	prefs := model.DefaultPreferences()
	text, ok := m.adapter.Get(m.keys.Preferences)
	if !ok {
		return prefs
	}
	if err := codec.DecodeValueInto(text, &prefs); err != nil {
		m.log.Warn("stored preferences are corrupt, using defaults", zap.Error(err))
		return model.DefaultPreferences()
	}
	return prefs
}

// SavePreferences replaces the stored preferences.
func (m *Manager) SavePreferences(prefs model.Preferences) {
	text, err := codec.EncodeValue(prefs)
	if err != nil {
		m.log.Error("encoding preferences", zap.Error(err))
		return
	}
	m.adapter.Set(m.keys.Preferences, text)
}

// ExportData reads every collection into a snapshot stamped with the
// current version and time.
func (m *Manager) ExportData() model.Snapshot {
	prefs := m.LoadPreferences()
	now := m.now().UTC()
	return model.Snapshot{
		Tasks:            m.LoadTasks().Records,
		Habits:           m.LoadHabits().Records,
		HabitEntries:     m.LoadHabitEntries().Records,
		Challenges:       m.LoadChallenges().Records,
		ChallengeEntries: m.LoadChallengeEntries().Records,
		TaskCategories:   m.LoadTaskCategories().Records,
		Notifications:    m.LoadNotifications().Records,
		Preferences:      &prefs,
		Version:          CurrentVersion,
		LastSyncAt:       &now,
	}
}

// ExportJSON writes ExportData as an indented JSON document.
func (m *Manager) ExportJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m.ExportData()); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

// ImportData overwrites every collection present in snap. Collections that
// are nil in snap are left untouched. Any failure is wrapped in
// ErrImportFailed.
func (m *Manager) ImportData(snap model.Snapshot) error {
	if err := m.importData(snap); err != nil {
		m.log.Error("importing data", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrImportFailed, err)
	}
	return nil
}

func (m *Manager) importData(snap model.Snapshot) error {
	if snap.Tasks != nil {
		if err := put(m, m.keys.Tasks, snap.Tasks); err != nil {
			return err
		}
	}
	if snap.Habits != nil {
		if err := put(m, m.keys.Habits, snap.Habits); err != nil {
			return err
		}
	}
	if snap.HabitEntries != nil {
		if err := put(m, m.keys.HabitEntries, snap.HabitEntries); err != nil {
			return err
		}
	}
	if snap.Challenges != nil {
		if err := put(m, m.keys.Challenges, snap.Challenges); err != nil {
			return err
		}
	}
	if snap.ChallengeEntries != nil {
		if err := put(m, m.keys.ChallengeEntries, snap.ChallengeEntries); err != nil {
			return err
		}
	}
	if snap.TaskCategories != nil {
		if err := put(m, m.keys.TaskCategories, snap.TaskCategories); err != nil {
			return err
		}
	}
	if snap.Notifications != nil {
		if err := put(m, m.keys.Notifications, snap.Notifications); err != nil {
			return err
		}
	}
	if snap.Preferences != nil {
		text, err := codec.EncodeValue(*snap.Preferences)
		if err != nil {
			return fmt.Errorf("encoding preferences: %w", err)
		}
		if err := m.adapter.Put(m.keys.Preferences, text); err != nil {
			return err
		}
	}

	return m.adapter.Put(m.keys.LastSync, m.now().UTC().Format(time.RFC3339Nano))
}

// ImportJSON decodes a snapshot document from r and imports it. Stored
// preferences missing fields are filled from the defaults.
func (m *Manager) ImportJSON(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: reading document: %w", ErrImportFailed, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		m.log.Error("decoding import document", zap.Error(err))
		return fmt.Errorf("%w: decoding document: %w", ErrImportFailed, err)
	}
	if fields == nil {
		m.log.Error("import document is not an object")
		return fmt.Errorf("%w: document is not an object", ErrImportFailed)
	}

	prefs := model.DefaultPreferences()
	snap := model.Snapshot{Preferences: &prefs}
	if err := json.Unmarshal(data, &snap); err != nil {
		m.log.Error("decoding import document", zap.Error(err))
		return fmt.Errorf("%w: decoding document: %w", ErrImportFailed, err)
	}
	if _, ok := fields["preferences"]; !ok {
		snap.Preferences = nil
	}
	return m.ImportData(snap)
}

// LastSyncAt returns when data was last imported.
func (m *Manager) LastSyncAt() (time.Time, bool) {
	text, ok := m.adapter.Get(m.keys.LastSync)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, text)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// StorageSize returns the total length of every stored value in bytes.
func (m *Manager) StorageSize() int {
	total := 0
	for _, key := range m.keys.All() {
		if v, ok := m.adapter.Get(key); ok {
			total += len(v)
		}
	}
	return total
}

// Cleanup drops completed tasks and sent notifications past the retention
// window. Writes that exceed the quota run the same pass automatically.
func (m *Manager) Cleanup() {
	m.adapter.cleanup()
}

// ClearAll removes every known key. It cannot be undone.
func (m *Manager) ClearAll() {
	for _, key := range m.keys.All() {
		m.adapter.Remove(key)
	}
}
