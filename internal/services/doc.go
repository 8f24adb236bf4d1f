// Package services defines the [LyricsSource] interface for finding lyrics online and implements it for Genius.
//
// # Genius Implementation
//
// [GeniusService] calls the Genius search API with a bearer token. The token is attached by an
// [oauth2.Client] built from a static token source, and requests are throttled by a
// [rate.Limiter] configured from genius.requests_per_second.
//
// Search hits are only metadata. The lyrics themselves are scraped from the song page, which is
// fetched by [APIService] without credentials and handed to [extract.Lyrics].
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrMissingCredentials] : no access token configured
//   - [shared.ErrInvalidCredentials] : the API rejected the token
//   - [shared.ErrRateLimited] : the API answered 429
//   - [shared.ErrAPIRequest] : HTTP request failed or returned a non-2xx status
//
// A page without lyrics is not an error: FetchLyrics returns the [extract.NotFound] or
// [extract.ParseError] sentinel text instead.
package services
