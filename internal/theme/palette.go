package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/lyricbook/internal/models"
)

// Colors is the colour set of one theme, as hex strings.
type Colors struct {
	Background    string
	Surface       string
	Text          string
	SecondaryText string
	Header        string
	HeaderText    string
	Primary       string
	Accent        string
	Error         string
	Border        string
	Placeholder   string
}

var (
	LightColors = Colors{
		Background:    "#F8F9FF",
		Surface:       "#FFFFFF",
		Text:          "#1A1A1A",
		SecondaryText: "#666666",
		Header:        "#5B21B6",
		HeaderText:    "#FFFFFF",
		Primary:       "#6200EE",
		Accent:        "#03DAC6",
		Error:         "#DC2626",
		Border:        "#E5E7EB",
		Placeholder:   "#9CA3AF",
	}
	DarkColors = Colors{
		Background:    "#1A1A1A",
		Surface:       "#242424",
		Text:          "#FFFFFF",
		SecondaryText: "#CCCCCC",
		Header:        "#2D1B69",
		HeaderText:    "#E0B0FF",
		Primary:       "#B388FF",
		Accent:        "#00E5FF",
		Error:         "#FF5C8D",
		Border:        "#404040",
		Placeholder:   "#888888",
	}
)

// Palette is a stylesheet built from [Colors] with named [lipgloss.Style] fields.
type Palette struct {
	Colors Colors

	Title     lipgloss.Style
	Header    lipgloss.Style
	Text      lipgloss.Style
	Secondary lipgloss.Style
	Accent    lipgloss.Style
	OK        lipgloss.Style
	Err       lipgloss.Style
	Help      lipgloss.Style
	Border    lipgloss.Style
	Selected  lipgloss.Style
}

// NewPalette builds a palette from c
func NewPalette(c Colors) *Palette {
	return &Palette{
		Colors:    c,
		Title:     NewBold(c.Primary),
		Header:    NewBold(c.HeaderText).Background(lipgloss.Color(c.Header)).Padding(0, 1),
		Text:      NewStyle(c.Text),
		Secondary: NewStyle(c.SecondaryText),
		Accent:    NewStyle(c.Accent),
		OK:        NewBold(c.Accent),
		Err:       NewBold(c.Error),
		Help:      NewEm(c.Placeholder),
		Border:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(c.Border)).Padding(0, 1),
		Selected:  NewBold(c.Primary).Underline(true),
	}
}

var (
	lightPalette = NewPalette(LightColors)
	darkPalette  = NewPalette(DarkColors)
)

// PaletteFor returns the shared palette of theme
func PaletteFor(theme models.Theme) *Palette {
	if theme == models.ThemeDark {
		return darkPalette
	}
	return lightPalette
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
