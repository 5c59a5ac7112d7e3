// Package styles holds the lipgloss styles shared by the CLI output, the
// renderer and the viewer.
package styles

import "github.com/charmbracelet/lipgloss"

// Colors read outside this package.
const (
	ColorAccent = "205"
	ColorFaint  = "238"
)

const (
	colorOK       = "171"
	colorFailure  = "196"
	colorCursorBg = "62"
	colorCursorFg = "230"
	colorCell     = "252"
	colorNull     = "241"
	colorKeyword  = "86"
	colorLiteral  = "220"
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent))

	Success = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorOK))

	Error = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorFailure))

	Faint = lipgloss.NewStyle().Faint(true)

	Separator = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorFaint))
)

// Result tables, both rendered and interactive.
var (
	TableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorAccent))

	TableCell = lipgloss.NewStyle().Foreground(lipgloss.Color(colorCell))

	// TableNull marks SQL NULL so it is not mistaken for the string "NULL".
	TableNull = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color(colorNull))

	TableBorder = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorFaint))

	TableSelected = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color(colorCursorBg)).
			Foreground(lipgloss.Color(colorCursorFg))
)

// Saved query listings.
var (
	SQLKeyword = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorKeyword))

	SQLString = lipgloss.NewStyle().Foreground(lipgloss.Color(colorLiteral))
)

// SetAccent recolors the accent styles. An empty color keeps the default.
func SetAccent(color string) {
	if color == "" {
		return
	}
	Title = Title.Foreground(lipgloss.Color(color))
	TableHeader = TableHeader.Foreground(lipgloss.Color(color))
}
