package tui

import "github.com/charmbracelet/lipgloss"

var borderASCII = lipgloss.Border{
	Top:         "-",
	Bottom:      "-",
	Left:        "|",
	Right:       "|",
	TopLeft:     "+",
	TopRight:    "+",
	BottomLeft:  "+",
	BottomRight: "+",
}

// palette holds the colors that differ between light and dark mode.
type palette struct {
	fg, muted, bar, barFg, accent, accentFg lipgloss.Color
	overdue, today, future, success, errorC  lipgloss.Color
}

var (
	lightPalette = palette{
		fg: "235", muted: "244", bar: "254", barFg: "236", accent: "24", accentFg: "230",
		overdue: "160", today: "130", future: "25", success: "28", errorC: "160",
	}
	darkPalette = palette{
		fg: "252", muted: "244", bar: "236", barFg: "252", accent: "33", accentFg: "230",
		overdue: "203", today: "214", future: "75", success: "78", errorC: "203",
	}
)

// theme is the set of styles used to draw one frame.
type theme struct {
	dark bool

	tabBar      lipgloss.Style
	tabActive   lipgloss.Style
	tabInactive lipgloss.Style
	pane        lipgloss.Style

	text      lipgloss.Style
	done      lipgloss.Style
	muted     lipgloss.Style
	label     lipgloss.Style
	cursor    lipgloss.Style
	section   lipgloss.Style
	overdue   lipgloss.Style
	today     lipgloss.Style
	future    lipgloss.Style
	otherDay  lipgloss.Style
	todayCell lipgloss.Style

	statusInfo  lipgloss.Style
	statusError lipgloss.Style
}

func newTheme(dark bool) theme {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	return theme{
		dark:        dark,
		tabBar:      lipgloss.NewStyle().Foreground(p.barFg).Background(p.bar),
		tabActive:   lipgloss.NewStyle().Foreground(p.accentFg).Background(p.accent).Bold(true).Padding(0, 1),
		tabInactive: lipgloss.NewStyle().Foreground(p.barFg).Background(p.bar).Padding(0, 1),
		pane:        lipgloss.NewStyle().Border(borderASCII).BorderForeground(p.muted).Padding(0, 1),
		text:        lipgloss.NewStyle().Foreground(p.fg),
		done:        lipgloss.NewStyle().Foreground(p.muted).Strikethrough(true),
		muted:       lipgloss.NewStyle().Foreground(p.muted),
		label:       lipgloss.NewStyle().Bold(true),
		cursor:      lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		section:     lipgloss.NewStyle().Bold(true).Underline(true),
		overdue:     lipgloss.NewStyle().Foreground(p.overdue),
		today:       lipgloss.NewStyle().Foreground(p.today),
		future:      lipgloss.NewStyle().Foreground(p.future),
		otherDay:    lipgloss.NewStyle().Foreground(p.muted).Faint(true),
		todayCell:   lipgloss.NewStyle().Foreground(p.accentFg).Background(p.accent).Bold(true),
		statusInfo:  lipgloss.NewStyle().Foreground(p.success),
		statusError: lipgloss.NewStyle().Foreground(p.errorC),
	}
}
