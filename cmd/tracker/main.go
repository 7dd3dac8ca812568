package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nhle/productivity-tracker/internal/logging"
	"github.com/nhle/productivity-tracker/internal/model"
	"github.com/nhle/productivity-tracker/internal/store"
	"github.com/nhle/productivity-tracker/internal/theme"
	"github.com/nhle/productivity-tracker/internal/tracker"
)

var (
	// Global flags
	verbose    bool
	configPath string
	backend    string

	// Set up by PersistentPreRunE for every subcommand.
	cfg     *model.AppConfig
	logger  *zap.Logger
	manager *store.Manager
	svc     *tracker.Service
	closeDB func() error
)

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Local tasks, habits and challenges",
	Long: `tracker keeps tasks, daily habits and time-boxed challenges in a local
store and derives streaks, completion rates and progress from them.

Data lives in a single SQLite file by default. Use "tracker export" to take
a JSON backup and "tracker import" to restore one.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = model.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if backend != "" {
			cfg.Storage.Backend = backend
		}

		logger, err = logging.New(cfg.Log, verbose)
		if err != nil {
			return err
		}

		sub, closer, err := openSubstrate(cfg.Storage)
		if err != nil {
			return err
		}
		closeDB = closer

		manager = store.NewManager(sub,
			store.WithLogger(logger.Named("store")),
			store.WithKeyPrefix(cfg.Storage.KeyPrefix),
		)
		if err := manager.Init(); err != nil {
			return fmt.Errorf("initializing storage: %w", err)
		}
		svc = tracker.New(manager, tracker.WithLogger(logger.Named("tracker")))

		theme.Apply(svc.Preferences().Theme)
		return nil
	},
}

// release closes the store and flushes the logger. Cobra skips
// PersistentPostRun when a command fails, so it runs after Execute instead.
func release() {
	if closeDB != nil {
		if err := closeDB(); err != nil {
			logger.Warn("closing storage", zap.Error(err))
		}
		closeDB = nil
	}
	if logger != nil {
		_ = logger.Sync()
	}
}

// openSubstrate opens the configured backend and returns a function that
// releases it.
func openSubstrate(sc model.StorageConfig) (store.Substrate, func() error, error) {
	switch sc.Backend {
	case model.BackendMemory:
		return store.NewMemorySubstrate(sc.QuotaBytes), func() error { return nil }, nil
	case model.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(sc.Path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating data directory: %w", err)
		}
		s, err := store.NewSQLiteSubstrate(sc.Path, sc.QuotaBytes)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", sc.Backend)
	}
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file and prepare the data store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			if err := model.SaveConfig(configPath, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", configPath)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "storage ready (%s, schema %s)\n", cfg.Storage.Backend, store.CurrentVersion)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", model.DefaultConfigPath(), "Config file")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Storage backend override (sqlite or memory)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(habitCmd)
	rootCmd.AddCommand(challengeCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(cleanupCmd)
	rootCmd.AddCommand(remindCmd)
}

func main() {
	err := rootCmd.Execute()
	release()
	if err != nil {
		os.Exit(1)
	}
}
