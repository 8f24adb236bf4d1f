package tasks

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"

	"github.com/desertthunder/lyricbook/internal/models"
	"github.com/desertthunder/lyricbook/internal/shared"
)

// AudioTags are the fields read from an audio file's metadata.
type AudioTags struct {
	Title  string
	Artist string
	Genre  string
	Lyrics string
	Format string
}

// ReadAudioTags reads ID3, MP4, FLAC or OGG metadata from r.
func ReadAudioTags(r io.ReadSeeker) (AudioTags, error) {
	m, err := tag.ReadFrom(r)
	if err != nil {
		return AudioTags{}, fmt.Errorf("%w: failed to read audio tags: %w", shared.ErrInvalidInput, err)
	}
	return tagsFrom(m), nil
}

func tagsFrom(m tag.Metadata) AudioTags {
	return AudioTags{
		Title:  strings.TrimSpace(m.Title()),
		Artist: strings.TrimSpace(m.Artist()),
		Genre:  strings.TrimSpace(m.Genre()),
		Lyrics: strings.TrimSpace(m.Lyrics()),
		Format: string(m.Format()),
	}
}

// Lyric builds a lyric from the tags. genreID wins over the tag's genre name, which is matched
// against genres ignoring case and extra whitespace.
func (t AudioTags) Lyric(genres []models.Genre, genreID models.ID) (models.Lyric, error) {
	if t.Lyrics == "" {
		return models.Lyric{}, fmt.Errorf("%w: the file has no embedded lyrics", shared.ErrLyricNotFound)
	}

	if genreID.IsZero() && t.Genre != "" {
		want := shared.NormalizeText(t.Genre)
		for _, g := range genres {
			if shared.NormalizeText(g.Name) == want {
				genreID = g.ID
				break
			}
		}
	}
	if genreID.IsZero() {
		return models.Lyric{}, fmt.Errorf("%w: genre (tag genre %q matches no genre)", shared.ErrMissingArgument, t.Genre)
	}

	return models.Lyric{
		Title:   t.Title,
		Artist:  t.Artist,
		Content: t.Lyrics,
		GenreID: genreID,
	}, nil
}

// ImportAudio saves the lyrics embedded in the audio file at path.
//
// A missing title falls back to the file name.
func (im *Importer) ImportAudio(ctx context.Context, progress chan<- ProgressUpdate, path string, genreID models.ID) (models.Lyric, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Lyric{}, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	sendProgress(progress, ProgressUpdate{Phase: FetchLyrics, Step: 1, Total: 1, Message: fmt.Sprintf("Reading tags: %s", filepath.Base(path))})
	tags, err := ReadAudioTags(f)
	if err != nil {
		return models.Lyric{}, err
	}
	if tags.Title == "" {
		tags.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	genres, _ := im.repos.Genres.Load(ctx)
	lyric, err := tags.Lyric(genres, genreID)
	if err != nil {
		return lyric, err
	}
	lyric.Source = path

	lyric, err = im.repos.Lyrics.Create(ctx, lyric)
	if err != nil {
		return lyric, err
	}
	sendProgress(progress, savedLyricUpdate(lyric))
	im.logger.Info("imported lyric from audio tags", "id", lyric.ID, "title", lyric.Title, "format", tags.Format)
	return lyric, nil
}
