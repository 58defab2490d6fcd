package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
	internalstrings "github.com/amonks/tasklist/internal/strings"
	"github.com/amonks/tasklist/internal/validation"
	"github.com/amonks/tasklist/task"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all tasks and the theme preference to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var exportFormat string

var exportFormats = []string{"json", "yaml", "toml"}

var errInvalidFormat = errors.New("invalid export format")

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format (json, yaml, toml)")
}

type exportDocument struct {
	DarkMode bool         `json:"darkMode" yaml:"darkMode" toml:"darkMode"`
	Tasks    []exportTask `json:"tasks" yaml:"tasks" toml:"tasks"`
}

type exportTask struct {
	ID            string     `json:"id" yaml:"id" toml:"id"`
	Text          string     `json:"text" yaml:"text" toml:"text"`
	Completed     bool       `json:"completed" yaml:"completed" toml:"completed"`
	CreatedAt     time.Time  `json:"createdAt" yaml:"createdAt" toml:"createdAt"`
	DueDate       string     `json:"dueDate,omitempty" yaml:"dueDate,omitempty" toml:"dueDate,omitempty"`
	DateCompleted *time.Time `json:"dateCompleted,omitempty" yaml:"dateCompleted,omitempty" toml:"dateCompleted,omitempty"`
}

func newExportDocument(tasks []task.Task, darkMode bool) exportDocument {
	doc := exportDocument{DarkMode: darkMode, Tasks: make([]exportTask, 0, len(tasks))}
	for _, t := range tasks {
		doc.Tasks = append(doc.Tasks, exportTask{
			ID:            t.ID,
			Text:          task.PlainText(t.Text),
			Completed:     t.Completed,
			CreatedAt:     t.CreatedAt,
			DueDate:       string(t.Due()),
			DateCompleted: t.DateCompleted,
		})
	}
	return doc
}

func runExport(cmd *cobra.Command, args []string) error {
	format := internalstrings.NormalizeLowerTrimSpace(exportFormat)
	if !slices.Contains(exportFormats, format) {
		return validation.FormatInvalidValueError(errInvalidFormat, exportFormat, exportFormats)
	}

	store, err := openTaskStore()
	if err != nil {
		return err
	}
	defer store.Release()

	doc := newExportDocument(store.Tasks(), store.DarkMode())
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "toml":
		if err := toml.NewEncoder(os.Stdout).Encode(doc); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	default:
		return encodeJSONToStdout(doc)
	}
}
