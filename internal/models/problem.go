// Package models defines the entities served by the problem-finder UI.
package models

import (
	"errors"
	"strings"
	"time"
)

// Problem is a discovered pain-point record, the primary display entity.
// Problems are written exclusively by the external scraping pipeline; this
// service only reads them.
type Problem struct {
	ID                 string    `json:"id" db:"id"`
	Statement          string    `json:"statement" db:"statement"`
	Solution           string    `json:"solution" db:"solution"` // empty = no solution recorded yet
	SolutionURL        string    `json:"solution_url" db:"solution_url"`
	HasNegativeReviews bool      `json:"has_negative_reviews" db:"has_negative_reviews"`
	ReviewURL          string    `json:"review_url" db:"review_url"` // meaningful only with HasNegativeReviews
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
	Sources            []Source  `json:"sources"`
}

// Solved reports whether a solution has been recorded. Absence of a solution
// is modeled as the empty string, not null.
func (p Problem) Solved() bool {
	return p.Solution != ""
}

// HasSolutionLink reports whether the solution URL is usable for display:
// non-empty and scheme-prefixed.
func (p Problem) HasSolutionLink() bool {
	return validURL(p.SolutionURL)
}

var (
	ErrEmptyStatement = errors.New("problem statement is required")
	ErrBadTimestamps  = errors.New("updated_at precedes created_at")
)

// Validate checks the invariants the scraper is supposed to uphold.
func (p Problem) Validate() error {
	if strings.TrimSpace(p.Statement) == "" {
		return ErrEmptyStatement
	}
	if !p.UpdatedAt.IsZero() && !p.CreatedAt.IsZero() && p.UpdatedAt.Before(p.CreatedAt) {
		return ErrBadTimestamps
	}
	return nil
}

func validURL(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}
