package main

import (
	"fmt"

	"github.com/amonks/tasklist/task"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:       "theme [dark|light|toggle]",
	Short:     "Show or change the color theme",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"dark", "light", "toggle"},
	RunE:      runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	store, err := openTaskStore()
	if err != nil {
		return err
	}
	defer store.Release()

	if len(args) == 0 {
		fmt.Println(themeName(store.DarkMode()))
		return nil
	}

	dark := store.DarkMode()
	switch args[0] {
	case "dark":
		dark = true
	case "light":
		dark = false
	case "toggle":
		dark = !dark
	}
	err = store.SetDarkMode(dark)
	if err != nil && !task.IsSaveWarning(err) {
		return err
	}
	fmt.Printf("Theme set to %s\n", themeName(dark))
	return err
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
