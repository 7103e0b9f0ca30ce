// Package fixtures holds the static fallback dataset served when the live
// backing store is missing, unreachable, or empty.
//
// The dataset ships embedded in the binary. Operators can override it with an
// on-disk file (fixtures.path) which is hot-reloaded on change; a broken
// override keeps the last good dataset in place.
package fixtures

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/jonesrussell/problem-finder/internal/logger"
	"github.com/jonesrussell/problem-finder/internal/models"
)

//go:embed problems.json
var embeddedProblems []byte

// Store serves the fallback dataset. Safe for concurrent use; the reload path
// swaps the dataset under a write lock.
type Store struct {
	mu       sync.RWMutex
	problems []models.Problem
	logger   logger.Logger
}

// New builds a Store from the embedded dataset. The embedded file is
// versioned with the binary, so a decode failure is a build defect.
func New(log logger.Logger) (*Store, error) {
	problems, err := decode(embeddedProblems)
	if err != nil {
		return nil, fmt.Errorf("decode embedded fixtures: %w", err)
	}
	return &Store{
		problems: problems,
		logger:   log,
	}, nil
}

// Problems returns a copy of the current dataset. Callers may reorder the
// returned slice freely.
func (s *Store) Problems() []models.Problem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Problem, len(s.problems))
	copy(out, s.problems)
	return out
}

// Len returns the number of fixture problems.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.problems)
}

// LoadFile replaces the dataset with the contents of path. The previous
// dataset is kept on any failure.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read fixture override: %w", err)
	}
	problems, err := decode(data)
	if err != nil {
		return fmt.Errorf("decode fixture override: %w", err)
	}

	s.mu.Lock()
	s.problems = problems
	s.mu.Unlock()

	s.logger.Info("Fixture dataset replaced",
		logger.String("path", path),
		logger.Int("problems", len(problems)),
	)
	return nil
}

func decode(data []byte) ([]models.Problem, error) {
	var problems []models.Problem
	if err := json.Unmarshal(data, &problems); err != nil {
		return nil, err
	}
	if len(problems) == 0 {
		return nil, fmt.Errorf("fixture dataset is empty")
	}
	for i := range problems {
		if problems[i].Sources == nil {
			problems[i].Sources = []models.Source{}
		}
		if err := problems[i].Validate(); err != nil {
			return nil, fmt.Errorf("fixture problem %q: %w", problems[i].ID, err)
		}
	}
	return problems, nil
}
