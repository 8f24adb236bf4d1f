package models

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Alignment values accepted by [Preferences].
var Alignments = []string{"left", "center", "right"}

// Preferences controls how lyrics are rendered.
type Preferences struct {
	FontSize   int     `json:"fontSize"`
	LineHeight float64 `json:"lineHeight"`
	ShowChords bool    `json:"showChords"`
	FontFamily string  `json:"fontFamily"`
	Alignment  string  `json:"alignment"`
}

// DefaultPreferences is used when nothing has been stored.
func DefaultPreferences() Preferences {
	return Preferences{FontSize: 16, LineHeight: 1.5, ShowChords: true, FontFamily: "System", Alignment: "left"}
}

func (p Preferences) Validate() error {
	if p.FontSize < 8 || p.FontSize > 72 {
		return NewValidationError("fontSize", "must be between 8 and 72")
	}
	if p.LineHeight < 1 || p.LineHeight > 3 {
		return NewValidationError("lineHeight", "must be between 1 and 3")
	}
	if strings.TrimSpace(p.FontFamily) == "" {
		return NewValidationError("fontFamily", "is required")
	}
	if !slices.Contains(Alignments, p.Alignment) {
		return NewValidationError("alignment", "must be one of "+strings.Join(Alignments, ", "))
	}
	return nil
}

// With returns a copy with the named setting changed.
//
// Names match the JSON keys, e.g. "fontSize" or "showChords".
func (p Preferences) With(name, value string) (Preferences, error) {
	switch name {
	case "fontSize":
		n, err := strconv.Atoi(value)
		if err != nil {
			return p, NewValidationError(name, "must be an integer")
		}
		p.FontSize = n
	case "lineHeight":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return p, NewValidationError(name, "must be a number")
		}
		p.LineHeight = f
	case "showChords":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return p, NewValidationError(name, "must be true or false")
		}
		p.ShowChords = b
	case "fontFamily":
		p.FontFamily = strings.TrimSpace(value)
	case "alignment":
		p.Alignment = strings.ToLower(strings.TrimSpace(value))
	default:
		return p, NewValidationError(name, fmt.Sprintf("is not a known setting %q", name))
	}
	return p, p.Validate()
}
