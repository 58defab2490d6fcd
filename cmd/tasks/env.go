package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/amonks/tasklist/internal/config"
	"github.com/amonks/tasklist/internal/kv"
	"github.com/amonks/tasklist/internal/logging"
	"github.com/amonks/tasklist/internal/paths"
	"github.com/amonks/tasklist/storage"
	"github.com/amonks/tasklist/task"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	settings = &config.Config{}
	logger   = logging.Discard()
)

// loadSettings reads config files and sets up logging before any command
// runs. Flags override config values.
func loadSettings(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("backend") {
		cfg.Storage.Backend = rootBackend
	}
	if cmd.Flags().Changed("data") {
		cfg.Storage.Path = rootDataPath
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = rootLogLevel
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	settings = cfg
	logger = logging.New(os.Stderr, level)
	return nil
}

func loadConfig() (*config.Config, error) {
	if rootConfigPath == "" {
		cwd, err := paths.WorkingDir()
		if err != nil {
			return nil, err
		}
		return config.Load(cwd)
	}

	globalPath, err := paths.GlobalConfigPath()
	if err != nil {
		return nil, err
	}
	return config.LoadFiles(globalPath, rootConfigPath)
}

// dataPath returns the backing file for backend, honoring the configured
// path override.
func dataPath(backend kv.Backend) (string, error) {
	path, err := paths.ResolveWithDefault(settings.Storage.Path, func() (string, error) {
		dir, err := paths.DefaultDataDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, kv.DefaultFilename(backend)), nil
	})
	if err != nil {
		return "", fmt.Errorf("resolve data path: %w", err)
	}
	return path, nil
}

// taskStore is an open task store together with its backing key-value
// store.
type taskStore struct {
	*task.Store
	backing kv.Store
}

// Release stops the undo timer and closes the backend.
func (s *taskStore) Release() {
	s.Store.Close()
	if err := s.backing.Close(); err != nil {
		logger.Debug("close storage", "err", err)
	}
}

// openTaskStore opens the configured backend and loads the task store,
// logging to the command logger.
func openTaskStore() (*taskStore, error) {
	return openTaskStoreWith(logger)
}

// openTaskStoreWith is openTaskStore with the storage and store warnings
// sent to storeLogger.
func openTaskStoreWith(storeLogger *log.Logger) (*taskStore, error) {
	backend, err := kv.ParseBackend(settings.Storage.Backend)
	if err != nil {
		return nil, err
	}
	path, err := dataPath(backend)
	if err != nil {
		return nil, err
	}

	backing, err := kv.Open(backend, path)
	if err != nil {
		return nil, err
	}
	logger.Debug("opened storage", "backend", backend, "path", path)

	store, err := task.Open(storage.New(backing, storage.Options{Logger: storeLogger}), task.OpenOptions{
		UndoWindow: settings.Undo.Window.Duration,
		Logger:     storeLogger,
	})
	if err != nil {
		backing.Close()
		return nil, err
	}
	return &taskStore{Store: store, backing: backing}, nil
}
