package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/desertthunder/lyricbook/internal/catalog"
	"github.com/desertthunder/lyricbook/internal/formatter"
	"github.com/desertthunder/lyricbook/internal/models"
	"github.com/desertthunder/lyricbook/internal/repositories"
	"github.com/desertthunder/lyricbook/internal/shared"
)

// ManifestFile is written into the output directory after a bulk export.
const ManifestFile = "export_manifest.json"

// BulkExportOpts contains configuration for bulk playlist exports.
type BulkExportOpts struct {
	Format     formatter.Format // Export format (default: markdown)
	OutputDir  string           // Base output directory (default: lyricbook_export_{epoch})
	NumWorkers int              // Concurrent workers (default: 4, max: 10)
	RateLimit  float64          // Files written per second; zero means unlimited
}

// PlaylistExportResult is the outcome for one playlist.
type PlaylistExportResult struct {
	PlaylistID   models.ID `json:"playlistId"`
	PlaylistName string    `json:"playlistName"`
	Lyrics       int       `json:"lyrics"`
	File         string    `json:"file,omitempty"`
	Success      bool      `json:"success"`
	Error        error     `json:"-"`
	ErrorMessage string    `json:"error,omitempty"`
}

// BulkExportResult summarizes a bulk export and is written as the manifest.
type BulkExportResult struct {
	Format            formatter.Format       `json:"format"`
	ExportedAt        time.Time              `json:"exportedAt"`
	TotalPlaylists    int                    `json:"totalPlaylists"`
	SuccessfulExports int                    `json:"successfulExports"`
	FailedExports     int                    `json:"failedExports"`
	OutputDirectory   string                 `json:"outputDirectory"`
	ManifestPath      string                 `json:"-"`
	Results           []PlaylistExportResult `json:"results"`
}

type exportJob struct {
	step   int
	export *formatter.PlaylistExport
}

// Exporter writes playlists and their lyrics to files.
type Exporter struct {
	repos  *repositories.Repositories
	logger *log.Logger
}

// NewExporter creates an Exporter. A nil logger writes to stderr.
func NewExporter(repos *repositories.Repositories, logger *log.Logger) *Exporter {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Exporter{repos: repos, logger: logger}
}

// Playlist builds the export for one playlist, resolving its lyrics against the library.
func (e *Exporter) Playlist(ctx context.Context, id models.ID) (*formatter.PlaylistExport, error) {
	p, err := e.repos.Playlists.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	genres, _ := e.repos.Genres.LoadOrDefault(ctx)
	lyrics := catalog.Resolve(p, e.repos.Lyrics.List(ctx))
	return formatter.NewPlaylistExport(p, catalog.Entries(lyrics, genres, e.repos.Favorites.List(ctx))), nil
}

// BulkExport writes the playlists named by ids (every playlist when ids is empty) into
// opts.OutputDir with a pool of workers, then writes [ManifestFile].
//
// A failing playlist is recorded in the result and does not stop the others.
func (e *Exporter) BulkExport(ctx context.Context, prog chan<- ProgressUpdate, ids []models.ID, opts BulkExportOpts) (*BulkExportResult, error) {
	if opts.Format == "" {
		opts.Format = formatter.FormatMarkdown
	}
	if _, err := formatter.ParseFormat(string(opts.Format)); err != nil {
		return nil, err
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("lyricbook_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	playlists, _ := e.repos.Playlists.LoadOrDefault(ctx)
	genres, _ := e.repos.Genres.LoadOrDefault(ctx)
	lyrics := e.repos.Lyrics.List(ctx)
	favorites := e.repos.Favorites.List(ctx)
	sendProgress(prog, loadingLibraryUpdate(len(playlists)))

	if len(ids) == 0 {
		for _, p := range playlists {
			ids = append(ids, p.ID)
		}
	}

	result := &BulkExportResult{
		Format:          opts.Format,
		ExportedAt:      time.Now().UTC(),
		TotalPlaylists:  len(ids),
		OutputDirectory: opts.OutputDir,
		Results:         make([]PlaylistExportResult, 0, len(ids)),
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}
	limiter := rate.NewLimiter(limit, 1)

	jobs := make(chan exportJob, len(ids))
	results := make(chan PlaylistExportResult, len(ids))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, limiter, opts)
	}

	go func() {
		defer close(jobs)
		for i, id := range ids {
			select {
			case <-ctx.Done():
				return
			default:
			}

			p, ok := models.Find(playlists, id)
			if !ok {
				results <- PlaylistExportResult{
					PlaylistID:   id,
					PlaylistName: fmt.Sprintf("Unknown (%s)", id),
					Error:        fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id),
				}
				continue
			}

			export := formatter.NewPlaylistExport(p, catalog.Entries(catalog.Resolve(p, lyrics), genres, favorites))
			sendProgress(prog, exportingPlaylistUpdate(i+1, len(ids), p.Name))
			jobs <- exportJob{step: i + 1, export: export}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		if res.Error != nil {
			res.ErrorMessage = res.Error.Error()
		}
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			sendProgress(prog, exportCompletedUpdate(completed, len(ids), res.PlaylistName, res.File))
		} else {
			result.FailedExports++
			sendProgress(prog, exportFailedUpdate(completed, len(ids), res.PlaylistName, res.Error))
			e.logger.Warn("playlist export failed", "playlist", res.PlaylistID, "error", res.Error)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	manifestPath := filepath.Join(opts.OutputDir, ManifestFile)
	if err := writeManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker writes playlists from the jobs channel until it closes or ctx ends.
func (e *Exporter) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan exportJob,
	results chan<- PlaylistExportResult,
	limiter *rate.Limiter,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		res := PlaylistExportResult{
			PlaylistID:   models.ID(job.export.ID),
			PlaylistName: job.export.Name,
			Lyrics:       len(job.export.Lyrics),
		}

		if err := limiter.Wait(ctx); err != nil {
			res.Error = err
			results <- res
			continue
		}

		// ids keep file names unique when two playlists share a name
		name := fmt.Sprintf("%s_%s.%s", formatter.Slug(job.export.Name), job.export.ID, opts.Format.Ext())
		path, err := formatter.WriteExport(job.export, opts.Format, filepath.Join(opts.OutputDir, name))
		if err != nil {
			res.Error = err
		} else {
			res.File = path
			res.Success = true
		}
		results <- res
	}
}

func writeManifest(result *BulkExportResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
