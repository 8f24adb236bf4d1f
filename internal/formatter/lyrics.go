package formatter

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/lyricbook/internal/models"
)

var (
	chordToken  = regexp.MustCompile(`^\(?[A-G][#b]?(m|maj|min|dim|aug|sus|add)?[0-9]*(sus[0-9]*|add[0-9]*)?(/[A-G][#b]?)?\)?$`)
	inlineChord = regexp.MustCompile(`\[[A-G][#b]?[^\]\s]{0,8}\]`)
)

// IsChordLine reports whether every token of line is a chord symbol, e.g. "Am  F  C/G".
func IsChordLine(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if !chordToken.MatchString(f) {
			return false
		}
	}
	return true
}

// StripChords removes chord-only lines and inline [Am] markers.
func StripChords(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if IsChordLine(line) {
			continue
		}
		out = append(out, strings.TrimRight(inlineChord.ReplaceAllString(line, ""), " "))
	}
	return strings.Join(out, "\n")
}

// LyricBody renders lyric content for a terminal of the given width, honouring the
// chord and alignment preferences. A non-positive width skips alignment.
func LyricBody(content string, prefs models.Preferences, width int) string {
	if !prefs.ShowChords {
		content = StripChords(content)
	}
	if width <= 0 {
		return content
	}

	align := lipgloss.Left
	switch prefs.Alignment {
	case "center":
		align = lipgloss.Center
	case "right":
		align = lipgloss.Right
	}

	// extra blank lines approximate line heights above single spacing
	if prefs.LineHeight >= 2 {
		content = strings.ReplaceAll(content, "\n", "\n\n")
	}
	return lipgloss.NewStyle().Width(width).Align(align).Render(content)
}
