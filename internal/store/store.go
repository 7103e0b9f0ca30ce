// Package store resolves the problem collection from a live backing store.
//
// A Store is one strategy in the catalog's fallback chain: it either returns
// a fully resolved live collection or an error, and the catalog decides
// whether to degrade to fixture data. Source (child) resolution failures are
// absorbed here per problem rather than failing the whole call.
package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"

	"github.com/jonesrussell/problem-finder/internal/models"
)

// ErrNotFound indicates that no problem matches the requested id. It is an
// outcome, not a store failure, and must not trigger fixture fallback.
var ErrNotFound = errors.New("problem not found")

// Store is the read surface the catalog consumes.
type Store interface {
	// Resolve returns the full problem collection ordered by updated_at
	// descending, each problem with a non-nil Sources slice.
	Resolve(ctx context.Context) ([]models.Problem, error)
	// ResolveByID returns a single problem, filtered server-side.
	// Returns ErrNotFound when no row matches.
	ResolveByID(ctx context.Context, id string) (*models.Problem, error)
}

// flexID scans an id column that may be uuid/text in one schema variant and
// numeric in another, coercing both to string.
type flexID string

func (f *flexID) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*f = ""
	case string:
		*f = flexID(v)
	case []byte:
		*f = flexID(v)
	case int64:
		*f = flexID(strconv.FormatInt(v, 10))
	default:
		return fmt.Errorf("unsupported id type %T", value)
	}
	return nil
}

func (f flexID) Value() (driver.Value, error) {
	return string(f), nil
}
