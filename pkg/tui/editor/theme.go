package editor

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/daybook/pkg/store"
)

// Theme derives the editor palette from the app settings. A terminal cell
// has one size, so diverging font sizes are shown as a color ramp toward the
// accent instead.
type Theme struct {
	Title     lipgloss.Style
	Tags      lipgloss.Style
	Status    lipgloss.Style
	StatusHot lipgloss.Style
	Selection lipgloss.Style
	Caret     lipgloss.Style
	Help      lipgloss.Style

	text   colorful.Color
	accent colorful.Color
}

// NewTheme builds the palette for the given settings.
func NewTheme(cfg store.Settings) Theme {
	text, err := colorful.Hex(cfg.EditorColor)
	if err != nil {
		text, _ = colorful.Hex(store.DefaultSettings().EditorColor)
	}
	accent, _ := colorful.Hex("#7d56f4")
	if cfg.DarkMode {
		accent, _ = colorful.Hex("#a88bfa")
	}

	return Theme{
		Title:     lipgloss.NewStyle().Bold(true).Underline(true),
		Tags:      lipgloss.NewStyle().Faint(true),
		Status:    lipgloss.NewStyle().Faint(true),
		StatusHot: lipgloss.NewStyle().Foreground(lipgloss.Color(accent.Hex())).Bold(true),
		Selection: lipgloss.NewStyle().Reverse(true),
		Caret:     lipgloss.NewStyle().Reverse(true).Blink(true),
		Help:      lipgloss.NewStyle().Faint(true),
		text:      text,
		accent:    accent,
	}
}

// RunStyle maps a run's effective size to a style: text at the default size
// keeps the base color, larger sizes blend toward the accent, smaller
// toward a dimmed shade.
func (t Theme) RunStyle(size, defaultSize int) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(t.text.Hex()))
	if size == 0 || size == defaultSize || defaultSize == 0 {
		return s
	}
	ratio := float64(size-defaultSize) / float64(defaultSize)
	if ratio > 1 {
		ratio = 1
	}
	if ratio < -1 {
		ratio = -1
	}
	if ratio > 0 {
		return s.Foreground(lipgloss.Color(t.text.BlendLab(t.accent, ratio).Hex())).Bold(ratio > 0.4)
	}
	dim, _ := colorful.Hex("#808080")
	return s.Foreground(lipgloss.Color(t.text.BlendLab(dim, -ratio).Hex()))
}

// SizeLabel renders the toolbar's active size, e.g. "16px".
func SizeLabel(size int) string {
	if size == 0 {
		return "–"
	}
	return fmt.Sprintf("%dpx", size)
}
