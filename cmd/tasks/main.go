// Package main implements the tasks CLI tool.
package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "tasks",
	Short:             "A local task list with due dates and a calendar",
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

var (
	rootConfigPath string
	rootBackend    string
	rootDataPath   string
	rootLogLevel   string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Project config file (default ./tasklist.toml)")
	rootCmd.PersistentFlags().StringVar(&rootBackend, "backend", "", "Storage backend (file, sqlite, memory)")
	rootCmd.PersistentFlags().StringVar(&rootDataPath, "data", "", "Data file path (default in $TASKLIST_DATA_DIR or ~/.local/share/tasklist)")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Log level (debug, info, warn, error, fatal)")
}
