// Package catalog is the read surface the presentation layer consumes.
//
// A Catalog resolves problems from the live store when one is configured and
// degrades to the fixture dataset on any failure: missing configuration, a
// store error, or an empty result set. Degradation is all-or-nothing per
// call; a response never mixes live and fixture records. The only condition
// surfaced to callers is ErrNotFound from the single-entity lookup.
package catalog

import (
	"context"
	"errors"
	"sort"

	"github.com/jonesrussell/problem-finder/internal/events"
	"github.com/jonesrussell/problem-finder/internal/fixtures"
	"github.com/jonesrussell/problem-finder/internal/logger"
	"github.com/jonesrussell/problem-finder/internal/models"
	"github.com/jonesrussell/problem-finder/internal/store"
)

// ErrNotFound indicates the requested problem does not exist in the current
// dataset. Distinct from any store failure, which callers never see.
var ErrNotFound = store.ErrNotFound

// Fallback reasons recorded in logs and events.
const (
	reasonConfigMissing = "config_missing"
	reasonStoreError    = "store_error"
	reasonEmptyResult   = "empty_result"
)

// Catalog resolves the normalized problem collection.
type Catalog struct {
	store     store.Store // nil when no backing store is configured
	fixtures  *fixtures.Store
	publisher *events.Publisher // optional
	logger    logger.Logger
}

// New builds a Catalog. store may be nil (fixture-only mode); publisher may
// be nil (no events).
func New(st store.Store, fx *fixtures.Store, pub *events.Publisher, log logger.Logger) *Catalog {
	return &Catalog{
		store:     st,
		fixtures:  fx,
		publisher: pub,
		logger:    log,
	}
}

// Live reports whether a backing store is configured.
func (c *Catalog) Live() bool {
	return c.store != nil
}

// Problems returns the full collection, ordered by updated_at descending,
// every problem with a non-nil Sources slice. It never fails: all failure
// paths resolve to the fixture dataset.
func (c *Catalog) Problems(ctx context.Context) []models.Problem {
	if c.store == nil {
		return c.fallback(reasonConfigMissing, nil)
	}

	problems, err := c.store.Resolve(ctx)
	if err != nil {
		return c.fallback(reasonStoreError, err)
	}
	if len(problems) == 0 {
		// an empty live store almost always means the configuration points
		// at the wrong place; fixture content beats a blank page
		return c.fallback(reasonEmptyResult, nil)
	}

	normalize(problems)
	return problems
}

// ProblemByID resolves a single problem. Live mode filters server-side; a
// store failure degrades to a fixture lookup. A missing id yields ErrNotFound
// in either mode.
func (c *Catalog) ProblemByID(ctx context.Context, id string) (*models.Problem, error) {
	if c.store == nil {
		return c.fixtureByID(id)
	}

	p, err := c.store.ResolveByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		c.logger.Warn("Single-problem resolution failed, searching fixtures",
			logger.String("problem_id", id),
			logger.Error(err),
		)
		c.publishFallback(reasonStoreError)
		return c.fixtureByID(id)
	}

	if p.Sources == nil {
		p.Sources = []models.Source{}
	}
	return p, nil
}

func (c *Catalog) fixtureByID(id string) (*models.Problem, error) {
	for _, p := range c.fixtures.Problems() {
		if p.ID == id {
			if p.Sources == nil {
				p.Sources = []models.Source{}
			}
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

// fallback logs the degradation, emits an event, and returns the normalized
// fixture dataset.
func (c *Catalog) fallback(reason string, cause error) []models.Problem {
	fields := []logger.Field{logger.String("reason", reason)}
	if cause != nil {
		fields = append(fields, logger.Error(cause))
	}
	c.logger.Warn("Serving fixture dataset", fields...)
	c.publishFallback(reason)

	problems := c.fixtures.Problems()
	normalize(problems)
	return problems
}

func (c *Catalog) publishFallback(reason string) {
	c.publisher.PublishAsync(events.Event{
		EventType: events.EventCatalogFallback,
		Reason:    reason,
	})
}

// normalize enforces the output contract in place: non-nil Sources and a
// stable updated_at-descending order.
func normalize(problems []models.Problem) {
	for i := range problems {
		if problems[i].Sources == nil {
			problems[i].Sources = []models.Source{}
		}
	}
	sort.SliceStable(problems, func(i, j int) bool {
		return problems[i].UpdatedAt.After(problems[j].UpdatedAt)
	})
}
