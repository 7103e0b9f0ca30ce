package models

import (
	"errors"
	"strings"
)

// Source is a citation supporting a problem's existence: a URL with optional
// title and excerpt. URLs are globally unique at the storage level.
type Source struct {
	ID      string `json:"id" db:"id"`
	Title   string `json:"title" db:"title"`
	URL     string `json:"url" db:"url"`
	Snippet string `json:"snippet" db:"snippet"`
}

// ErrInvalidSourceURL is returned when a source URL is missing or relative.
var ErrInvalidSourceURL = errors.New("source url must be an absolute http(s) url")

// DisplayTitle returns the title, falling back to the URL when the scraper
// stored an empty one.
func (s Source) DisplayTitle() string {
	if strings.TrimSpace(s.Title) != "" {
		return s.Title
	}
	return s.URL
}

// Validate checks the source invariants.
func (s Source) Validate() error {
	if !validURL(s.URL) {
		return ErrInvalidSourceURL
	}
	return nil
}
