// package formatter renders lyrics and playlists to the export formats (CSV, Markdown, plain text, JSON, YAML)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/desertthunder/lyricbook/internal/catalog"
	"github.com/desertthunder/lyricbook/internal/models"
	"github.com/desertthunder/lyricbook/internal/shared"
)

// Format is an export format
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// Formats lists every supported format
var Formats = []Format{FormatCSV, FormatMarkdown, FormatText, FormatJSON, FormatYAML}

// ParseFormat accepts a format name or a common alias ("md", "txt", "yml").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, s)
}

// Ext returns the file extension for f, without the dot
func (f Format) Ext() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatText:
		return "txt"
	}
	return string(f)
}

// ExportEntry is one lyric in an export.
type ExportEntry struct {
	ID      string    `json:"id" yaml:"id"`
	Title   string    `json:"title" yaml:"title"`
	Artist  string    `json:"artist" yaml:"artist"`
	Genre   string    `json:"genre" yaml:"genre"`
	Date    time.Time `json:"date,omitzero" yaml:"date,omitempty"`
	Content string    `json:"content" yaml:"content"`
}

// PlaylistExport is a playlist with its lyrics resolved.
type PlaylistExport struct {
	ID        string        `json:"id" yaml:"id"`
	Name      string        `json:"name" yaml:"name"`
	CreatedAt time.Time     `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt" yaml:"updatedAt"`
	Lyrics    []ExportEntry `json:"lyrics" yaml:"lyrics"`
}

// NewPlaylistExport builds an export from a playlist and the joined entries of its lyrics.
func NewPlaylistExport(p models.Playlist, entries []catalog.Entry) *PlaylistExport {
	export := &PlaylistExport{
		ID:        p.ID.String(),
		Name:      p.Name,
		CreatedAt: p.CreatedAt.Time,
		UpdatedAt: p.UpdatedAt.Time,
		Lyrics:    make([]ExportEntry, len(entries)),
	}
	for i, e := range entries {
		export.Lyrics[i] = ExportEntry{
			ID:      e.ID.String(),
			Title:   e.Title,
			Artist:  e.Artist,
			Genre:   e.GenreName,
			Date:    e.Date.Time,
			Content: e.Content,
		}
	}
	return export
}

// ExportToCSV converts a PlaylistExport to CSV format with columns: ID, Title, Artist, Genre, Date, Content
func ExportToCSV(export *PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Genre", "Date", "Content"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, l := range export.Lyrics {
		date := ""
		if !l.Date.IsZero() {
			date = l.Date.Format(time.DateOnly)
		}
		if err := writer.Write([]string{l.ID, l.Title, l.Artist, l.Genre, date, l.Content}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportToMarkdown converts a PlaylistExport to Markdown, one section per lyric
func ExportToMarkdown(export *PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", export.Name)
	fmt.Fprintf(&buf, "**Lyrics**: %d\n", len(export.Lyrics))
	if !export.UpdatedAt.IsZero() {
		fmt.Fprintf(&buf, "**Updated**: %s\n", export.UpdatedAt.Format(time.DateOnly))
	}
	buf.WriteString("\n")

	for i, l := range export.Lyrics {
		fmt.Fprintf(&buf, "## %d. %s\n\n", i+1, l.Title)
		fmt.Fprintf(&buf, "*%s* · %s\n\n", l.Artist, l.Genre)
		for _, line := range strings.Split(l.Content, "\n") {
			if line == "" {
				buf.WriteString("\n")
				continue
			}
			fmt.Fprintf(&buf, "%s  \n", line)
		}
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// ExportToText converts a PlaylistExport to plain text, separating lyrics with their share text
func ExportToText(export *PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Playlist: %s\n", export.Name)
	fmt.Fprintf(&buf, "Lyrics: %d\n", len(export.Lyrics))

	for _, l := range export.Lyrics {
		buf.WriteString("\n" + strings.Repeat("-", 40) + "\n\n")
		buf.WriteString(models.Lyric{Title: l.Title, Artist: l.Artist, Content: l.Content}.ShareText())
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// ExportToJSON converts a PlaylistExport to indented JSON
func ExportToJSON(export *PlaylistExport) ([]byte, error) {
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportToYAML converts a PlaylistExport to YAML
func ExportToYAML(export *PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(export); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// Render dispatches to the exporter for f
func Render(export *PlaylistExport, f Format) ([]byte, error) {
	switch f {
	case FormatCSV:
		return ExportToCSV(export)
	case FormatMarkdown:
		return ExportToMarkdown(export)
	case FormatText:
		return ExportToText(export)
	case FormatJSON:
		return ExportToJSON(export)
	case FormatYAML:
		return ExportToYAML(export)
	}
	return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, f)
}

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// Slug turns a playlist name into a file name stem.
func Slug(name string) string {
	s := strings.Trim(slugUnsafe.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if s == "" {
		return "playlist"
	}
	return s
}

// WriteExport renders export as f and writes it to path.
//
// Defaults to {slug(name)}.{ext} in the current directory. When path is a directory the default name is placed inside it.
func WriteExport(export *PlaylistExport, f Format, path string) (string, error) {
	name := fmt.Sprintf("%s.%s", Slug(export.Name), f.Ext())
	switch info, err := os.Stat(path); {
	case path == "":
		path = name
	case err == nil && info.IsDir():
		path = filepath.Join(path, name)
	}

	data, err := Render(export, f)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}
