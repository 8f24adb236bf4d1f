package formatter

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/desertthunder/lyricbook/internal/catalog"
	"github.com/desertthunder/lyricbook/internal/models"
	"github.com/desertthunder/lyricbook/internal/shared"
	tu "github.com/desertthunder/lyricbook/internal/testing"
)

func sampleExport() *PlaylistExport {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	playlist := models.Playlist{
		ID:        "p1",
		Name:      "Road Trip, Vol. 1",
		LyricsIDs: []models.ID{"l1", "l2"},
		CreatedAt: models.At(created),
		UpdatedAt: models.At(created.Add(time.Hour)),
	}
	lyrics := []models.Lyric{
		{ID: "l1", Title: "Song One", Artist: "Artist One", GenreID: "1", Content: "first line\nsecond line", Date: models.At(created)},
		{ID: "l2", Title: "Song Two", Artist: "Artist Two", GenreID: "42", Content: "only, with a comma"},
	}
	entries := catalog.Entries(catalog.Resolve(playlist, lyrics), models.DefaultGenres(), nil)
	return NewPlaylistExport(playlist, entries)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"csv", FormatCSV},
		{"MD", FormatMarkdown},
		{"markdown", FormatMarkdown},
		{"txt", FormatText},
		{" json ", FormatJSON},
		{"yml", FormatYAML},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil {
			t.Fatalf("ParseFormat(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	if _, err := ParseFormat("pdf"); !errors.Is(err, shared.ErrInvalidFlag) {
		t.Errorf("expected ErrInvalidFlag, got %v", err)
	}
}

func TestExporters(t *testing.T) {
	export := sampleExport()

	t.Run("NewPlaylistExport", func(t *testing.T) {
		if len(export.Lyrics) != 2 {
			t.Fatalf("expected 2 lyrics, got %d", len(export.Lyrics))
		}
		if export.Lyrics[0].Genre != "Pop" {
			t.Errorf("expected genre Pop, got %s", export.Lyrics[0].Genre)
		}
		if export.Lyrics[1].Genre != models.UnknownGenre {
			t.Errorf("expected unknown genre, got %s", export.Lyrics[1].Genre)
		}
	})

	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(export)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("output is not valid CSV: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected header and 2 rows, got %d", len(records))
		}
		if strings.Join(records[0], ",") != "ID,Title,Artist,Genre,Date,Content" {
			t.Errorf("unexpected headers: %v", records[0])
		}
		if records[1][4] != "2024-03-01" {
			t.Errorf("expected date 2024-03-01, got %q", records[1][4])
		}
		if records[2][4] != "" {
			t.Errorf("expected empty date for undated lyric, got %q", records[2][4])
		}
		if records[1][5] != "first line\nsecond line" {
			t.Errorf("content should survive quoting, got %q", records[1][5])
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(export)
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}
		md := string(data)
		for _, want := range []string{"# Road Trip, Vol. 1", "**Lyrics**: 2", "## 1. Song One", "## 2. Song Two", "*Artist One* · Pop", "first line  \n"} {
			if !strings.Contains(md, want) {
				t.Errorf("markdown missing %q", want)
			}
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(export)
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}
		text := string(data)
		if !strings.HasPrefix(text, "Playlist: Road Trip, Vol. 1\nLyrics: 2\n") {
			t.Errorf("unexpected header: %q", text)
		}
		if !strings.Contains(text, "Song One by Artist One\n\nfirst line") {
			t.Errorf("text missing share block")
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(export)
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}
		var decoded PlaylistExport
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.Name != export.Name || len(decoded.Lyrics) != 2 {
			t.Errorf("unexpected decoded export: %+v", decoded)
		}
		if strings.Contains(string(data), `"date":"0001`) {
			t.Errorf("zero dates should be omitted")
		}
	})

	t.Run("ExportToYAML", func(t *testing.T) {
		data, err := ExportToYAML(export)
		if err != nil {
			t.Fatalf("ExportToYAML failed: %v", err)
		}
		var decoded map[string]any
		if err := yaml.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid YAML: %v", err)
		}
		if decoded["name"] != "Road Trip, Vol. 1" {
			t.Errorf("unexpected name %v", decoded["name"])
		}
		if lyrics, ok := decoded["lyrics"].([]any); !ok || len(lyrics) != 2 {
			t.Errorf("expected 2 lyrics, got %v", decoded["lyrics"])
		}
	})

	t.Run("Render unknown format", func(t *testing.T) {
		if _, err := Render(export, Format("pdf")); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

func TestWriteExport(t *testing.T) {
	export := sampleExport()

	t.Run("WithDefaultPath", func(t *testing.T) {
		tempDir := t.TempDir()
		originalDir := tu.MustGetwd(t)
		tu.MustChdir(t, tempDir)
		defer tu.MustChdir(t, originalDir)

		path, err := WriteExport(export, FormatMarkdown, "")
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if path != "road-trip-vol-1.md" {
			t.Errorf("expected road-trip-vol-1.md, got %s", path)
		}
		tu.AssertFileExists(t, path)
	})

	t.Run("IntoDirectory", func(t *testing.T) {
		dir := t.TempDir()
		path, err := WriteExport(export, FormatCSV, dir)
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if path != filepath.Join(dir, "road-trip-vol-1.csv") {
			t.Errorf("unexpected path %s", path)
		}
		if !strings.Contains(tu.MustReadFile(t, path), "Song Two") {
			t.Errorf("export missing lyric data")
		}
	})

	t.Run("WithCustomPath", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.yaml")
		got, err := WriteExport(export, FormatYAML, path)
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if got != path {
			t.Errorf("expected %s, got %s", path, got)
		}
		tu.AssertFileExists(t, path)
	})
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"My Playlist":       "my-playlist",
		"  Rock & Roll!! ":  "rock-roll",
		"★★★":               "playlist",
		"Already-slugged-1": "already-slugged-1",
	}
	for in, want := range tests {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestChords(t *testing.T) {
	t.Run("IsChordLine", func(t *testing.T) {
		for _, line := range []string{"Am  F  C/G", "G", "Dsus4 Cadd9", "(Em)"} {
			if !IsChordLine(line) {
				t.Errorf("expected %q to be a chord line", line)
			}
		}
		for _, line := range []string{"", "A long time ago", "Amazing grace", "C is for cookie"} {
			if IsChordLine(line) {
				t.Errorf("expected %q not to be a chord line", line)
			}
		}
	})

	t.Run("StripChords", func(t *testing.T) {
		in := "Am     F\nHello [C]darkness my old [G]friend\n\nC\nI've come to talk"
		want := "Hello darkness my old friend\n\nI've come to talk"
		if got := StripChords(in); got != want {
			t.Errorf("StripChords() = %q, want %q", got, want)
		}
	})

	t.Run("LyricBody respects ShowChords", func(t *testing.T) {
		content := "G  D\nline one"
		prefs := models.DefaultPreferences()

		if got := LyricBody(content, prefs, 0); got != content {
			t.Errorf("chords should be kept, got %q", got)
		}

		prefs.ShowChords = false
		if got := LyricBody(content, prefs, 0); got != "line one" {
			t.Errorf("chords should be stripped, got %q", got)
		}
	})

	t.Run("LyricBody alignment", func(t *testing.T) {
		prefs := models.DefaultPreferences()
		prefs.Alignment = "right"
		got := LyricBody("abc", prefs, 10)
		if !strings.HasSuffix(strings.TrimRight(got, "\n"), "abc") || !strings.HasPrefix(got, " ") {
			t.Errorf("expected right aligned text, got %q", got)
		}
	})
}
