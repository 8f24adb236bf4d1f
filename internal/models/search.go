package models

// MaxSearchHistory is the number of search terms kept.
const MaxSearchHistory = 10

// SearchResult is one hit from online lyrics search.
type SearchResult struct {
	ID     ID     `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	URL    string `json:"url"`
}

func (r SearchResult) Identity() ID { return r.ID }

func (r SearchResult) Validate() error {
	if r.URL == "" {
		return NewValidationError("url", "is required")
	}
	return nil
}
