package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"dirsnap/internal/config"
	"dirsnap/internal/console"
	"dirsnap/internal/history"
	"dirsnap/internal/snap"
)

// App is the application layer between the CLI and the snap.Service.
// It constructs all dependencies from config and manages the history
// store and log file lifecycle on Close.
type App struct {
	cfg     *config.Config
	store   history.Store
	service *snap.Service
	clock   snap.Clock
	logger  snap.Logger
	logFile *os.File
}

// LoadConfig reads the config file from its default (or DIRSNAP_CONFIG_PATH)
// location. A missing config file is not an error: built-in defaults are
// used so `dirsnap backup` works without `dirsnap config init`.
func LoadConfig() (*config.Config, error) {
	defaults, err := GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config.NewConfig(defaults["base_dir"]), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

// NewApp creates a fully wired App from the given config.
// operation identifies the CLI command being run (e.g. "Backup", "History").
// The caller must call Close when done.
func NewApp(cfg *config.Config, operation string) (*App, error) {
	opID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	store, err := history.NewStoreFromConfig(cfg.History)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating history store: %w", err)
	}

	logger.Info("operation started", "operation", operation)

	adapter := &slogAdapter{l: logger}
	svc := snap.NewService(console.New(), adapter, snap.RealClock{}, snap.UUIDGenerator{})

	return &App{
		cfg:     cfg,
		store:   store,
		service: svc,
		clock:   snap.RealClock{},
		logger:  adapter,
		logFile: logFile,
	}, nil
}

// Backup executes one backup run and records it in the history store.
// History recording is best-effort: a store failure is logged but never
// fails the backup.
func (a *App) Backup(opts snap.Options) (*snap.Summary, error) {
	// The running binary must never copy or delete itself when it lives
	// inside the source tree.
	if exe, err := os.Executable(); err == nil {
		opts.ExcludeNames = append(opts.ExcludeNames, filepath.Base(exe))
	}

	startedAt := a.clock.Now()
	summary, err := a.service.Run(opts)
	if err != nil {
		a.logger.Error("backup failed", "error", err)
		return nil, err
	}

	status := history.StatusSuccess
	if len(summary.Failures) > 0 {
		status = history.StatusPartial
	}
	run := &history.Run{
		ID:              summary.RunID,
		SourceRoot:      summary.SourceRoot,
		BackupRoot:      summary.BackupRoot,
		Recursive:       summary.Recursive,
		DeleteRequested: summary.DeleteRequested,
		UseDigest:       summary.UseDigest,
		PruneEmptyDirs:  summary.PruneEmptyDirs,
		Copied:          int64(summary.Copied),
		Deleted:         int64(summary.Deleted),
		Failed:          int64(len(summary.Failures)),
		Status:          status,
		StartedAt:       startedAt,
		FinishedAt:      a.clock.Now(),
	}
	if err := a.store.Record(run); err != nil {
		a.logger.Warn("recording run history", "error", err)
	}

	return summary, nil
}

// History returns the most recent backup runs.
func (a *App) History(limit int) ([]*history.Run, error) {
	return a.store.ListRuns(limit)
}

// DefaultBaseName returns the configured backup directory base name.
func (a *App) DefaultBaseName() string {
	if a.cfg.BaseName != "" {
		return a.cfg.BaseName
	}
	return "backup"
}

// BackupDefaults returns the configured per-run mode defaults.
func (a *App) BackupDefaults() config.BackupConfig {
	return a.cfg.Backup
}

// Close closes the history store and the log file.
func (a *App) Close() error {
	var firstErr error

	if err := a.store.Close(); err != nil {
		firstErr = fmt.Errorf("closing history store: %w", err)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}
