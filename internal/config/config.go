// Package config handles loading tasklist.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/amonks/tasklist/internal/paths"
)

// ProjectFilename is the per-directory config file name.
const ProjectFilename = "tasklist.toml"

// Config represents the tasklist.toml configuration file.
type Config struct {
	Storage Storage `toml:"storage"`
	Undo    Undo    `toml:"undo"`
	View    View    `toml:"view"`
	Log     Log     `toml:"log"`
}

// Storage selects where tasks are kept.
type Storage struct {
	// Backend is one of file, sqlite, or memory. Empty means file.
	Backend string `toml:"backend"`

	// Path overrides the data file location. Empty means a file named for
	// the backend inside the data directory.
	Path string `toml:"path"`
}

// Undo configures deletion undo.
type Undo struct {
	// Window is how long a deleted task can be restored, e.g. "5s".
	Window Duration `toml:"window"`
}

// View holds the default projections for the list and dates views.
type View struct {
	Filter string `toml:"filter"`
	Range  string `toml:"range"`
}

// Log configures logging.
type Log struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration written as a string like "5s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	if parsed < 0 {
		return fmt.Errorf("duration %q is negative", text)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Load loads configuration from dir and the global config file. Returns an
// empty config if no config files exist.
func Load(dir string) (*Config, error) {
	globalPath, err := paths.GlobalConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFiles(globalPath, filepath.Join(dir, ProjectFilename))
}

// LoadFiles merges the config at projectPath over the one at globalPath.
// Missing files are treated as empty.
func LoadFiles(globalPath, projectPath string) (*Config, error) {
	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(projectPath)
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	return merged, nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Storage.Backend = mergeString(projectMeta.IsDefined("storage", "backend"), projectCfg.Storage.Backend, globalCfg.Storage.Backend)
	merged.Storage.Path = mergeString(projectMeta.IsDefined("storage", "path"), projectCfg.Storage.Path, globalCfg.Storage.Path)
	merged.View.Filter = mergeString(projectMeta.IsDefined("view", "filter"), projectCfg.View.Filter, globalCfg.View.Filter)
	merged.View.Range = mergeString(projectMeta.IsDefined("view", "range"), projectCfg.View.Range, globalCfg.View.Range)
	merged.Log.Level = mergeString(projectMeta.IsDefined("log", "level"), projectCfg.Log.Level, globalCfg.Log.Level)
	if projectMeta.IsDefined("undo", "window") {
		merged.Undo.Window = projectCfg.Undo.Window
	} else if globalMeta.IsDefined("undo", "window") {
		merged.Undo.Window = globalCfg.Undo.Window
	}

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}
