package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhowden/tag"

	"github.com/desertthunder/lyricbook/internal/models"
	"github.com/desertthunder/lyricbook/internal/shared"
	tu "github.com/desertthunder/lyricbook/internal/testing"
)

// fakeTags overrides the fields AudioTags reads; other methods are unused.
type fakeTags struct {
	tag.Metadata
	title, artist, genre, lyrics string
}

func (f fakeTags) Title() string      { return f.title }
func (f fakeTags) Artist() string     { return f.artist }
func (f fakeTags) Genre() string      { return f.genre }
func (f fakeTags) Lyrics() string     { return f.lyrics }
func (f fakeTags) Format() tag.Format { return tag.ID3v2_3 }

func TestAudioTags_Lyric(t *testing.T) {
	genres := models.DefaultGenres()

	t.Run("genre from tag name", func(t *testing.T) {
		tags := tagsFrom(fakeTags{title: " Hello ", artist: "Adele", genre: "pop", lyrics: "Hello, it's me\n"})
		l, err := tags.Lyric(genres, "")
		if err != nil {
			t.Fatalf("Lyric() error = %v", err)
		}
		if l.GenreID != "1" || l.Title != "Hello" || l.Content != "Hello, it's me" {
			t.Errorf("unexpected lyric %+v", l)
		}
		if tags.Format != string(tag.ID3v2_3) {
			t.Errorf("unexpected format %s", tags.Format)
		}
	})

	t.Run("explicit genre wins", func(t *testing.T) {
		l, err := tagsFrom(fakeTags{title: "x", artist: "y", genre: "Pop", lyrics: "z"}).Lyric(genres, "6")
		if err != nil {
			t.Fatalf("Lyric() error = %v", err)
		}
		if l.GenreID != "6" {
			t.Errorf("expected genre 6, got %s", l.GenreID)
		}
	})

	t.Run("unknown genre", func(t *testing.T) {
		_, err := tagsFrom(fakeTags{title: "x", artist: "y", genre: "Polka", lyrics: "z"}).Lyric(genres, "")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("no lyrics", func(t *testing.T) {
		_, err := tagsFrom(fakeTags{title: "x", artist: "y"}).Lyric(genres, "1")
		if !errors.Is(err, shared.ErrLyricNotFound) {
			t.Errorf("expected ErrLyricNotFound, got %v", err)
		}
	})
}

func TestImporter_ImportAudio(t *testing.T) {
	repos, _ := setupRepos(t)
	im := NewImporter(nil, repos, tu.QuietLogger())

	t.Run("not an audio file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.mp3")
		if err := os.WriteFile(path, []byte(strings.Repeat("plain text ", 20)), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := im.ImportAudio(context.Background(), nil, path, "1")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if len(repos.Lyrics.List(context.Background())) != 0 {
			t.Error("nothing should be saved")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := im.ImportAudio(context.Background(), nil, filepath.Join(t.TempDir(), "nope.mp3"), "1"); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
