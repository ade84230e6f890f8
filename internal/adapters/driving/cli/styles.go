package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// palette holds the report colours.
type palette struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

func defaultPalette() palette {
	return palette{
		Primary: lipgloss.Color("#7C3AED"), // Purple
		Muted:   lipgloss.Color("#6C7086"), // Medium gray
		Success: lipgloss.Color("#A6E3A1"), // Green
		Warning: lipgloss.Color("#F9E2AF"), // Yellow
		Error:   lipgloss.Color("#F38BA8"), // Red
	}
}

// styles are the lipgloss styles used when rendering reports.
type styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Added   lipgloss.Style
	Exists  lipgloss.Style
	Warning lipgloss.Style
	DiffAdd lipgloss.Style
	DiffDel lipgloss.Style
}

// stylesFor returns coloured styles when w is a terminal and plain ones
// otherwise.
func stylesFor(w io.Writer) styles {
	if !isTerminal(w) {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain, plain}
	}
	p := defaultPalette()
	return styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Muted:   lipgloss.NewStyle().Foreground(p.Muted),
		Added:   lipgloss.NewStyle().Foreground(p.Success),
		Exists:  lipgloss.NewStyle().Foreground(p.Muted),
		Warning: lipgloss.NewStyle().Foreground(p.Warning),
		DiffAdd: lipgloss.NewStyle().Foreground(p.Success),
		DiffDel: lipgloss.NewStyle().Foreground(p.Error),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
