// Package tasks runs the multi-step operations that report progress while they work.
//
// # Operations
//
//  1. [Importer.Import] : online search to saved lyric
//     - Records the query in the search history
//     - Searches the [services.LyricsSource] and picks one hit
//     - Fetches the song page and extracts its lyrics
//     - Saves a new lyric, optionally adding it to a playlist
//
//  2. [Importer.ImportAudio] : audio file to saved lyric
//     - Reads the embedded tags (ID3, MP4, FLAC, OGG) with github.com/dhowden/tag
//     - Uses the lyrics tag as content, the file name when the title is missing
//     - Matches the tag's genre by name unless a genre id is given
//
//  3. [Exporter.BulkExport] : every playlist to a directory
//     - Resolves each playlist's lyrics once
//     - Renders them with a pool of workers through [formatter.WriteExport]
//     - Writes export_manifest.json summarizing successes and failures
//
// # Progress Reporting
//
// Every operation accepts an optional channel of [ProgressUpdate]. Sends never block: when the
// channel is full the update is dropped.
package tasks
