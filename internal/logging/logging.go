// Package logging builds the leveled console logger used across tasklist.
package logging

import (
	"fmt"
	"io"
	"slices"

	internalstrings "github.com/amonks/tasklist/internal/strings"
	"github.com/amonks/tasklist/internal/validation"
	"github.com/charmbracelet/log"
)

// Prefix is shown before every log line.
const Prefix = "tasks"

// DefaultLevel is used when no level is configured.
const DefaultLevel = log.WarnLevel

// ValidLevels returns the accepted level names.
func ValidLevels() []string {
	return []string{"debug", "info", "warn", "error", "fatal"}
}

// ParseLevel maps a configured level name to a log.Level. The empty string
// yields DefaultLevel.
func ParseLevel(value string) (log.Level, error) {
	normalized := internalstrings.NormalizeLowerTrimSpace(value)
	if normalized == "" {
		return DefaultLevel, nil
	}
	if !slices.Contains(ValidLevels(), normalized) {
		return DefaultLevel, fmt.Errorf("invalid log level %q: must be one of %s", value, validation.FormatValidValues(ValidLevels()))
	}
	return log.ParseLevel(normalized)
}

// New returns a logger writing to w at level.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
		ReportCaller:    false,
		Prefix:          Prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return New(io.Discard, log.FatalLevel)
}
