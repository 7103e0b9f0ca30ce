package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonesrussell/problem-finder/internal/config"
	"github.com/jonesrussell/problem-finder/internal/logger"
	"github.com/jonesrussell/problem-finder/internal/models"
)

// ProblemStore reads problems and their sources from PostgreSQL. The sources
// side can be resolved either with a batched junction join (QueryModeJoin) or
// through the problems_with_sources() stored function (QueryModeProc), which
// returns each problem's sources pre-aggregated as JSON.
type ProblemStore struct {
	db        *sql.DB
	queryMode string
	logger    logger.Logger
}

func NewProblemStore(db *sql.DB, queryMode string, log logger.Logger) *ProblemStore {
	if queryMode == "" {
		queryMode = config.QueryModeJoin
	}
	return &ProblemStore{
		db:        db,
		queryMode: queryMode,
		logger:    log,
	}
}

const problemColumns = `id, statement, solution, solution_url,
		       has_negative_reviews, review_url, created_at, updated_at`

// Resolve implements Store.
func (s *ProblemStore) Resolve(ctx context.Context) ([]models.Problem, error) {
	if s.queryMode == config.QueryModeProc {
		return s.resolveProc(ctx)
	}
	return s.resolveJoin(ctx)
}

// resolveJoin fetches the problem rows, then attaches sources with a single
// batched junction query. A failure on the sources side leaves the affected
// problems with empty Sources instead of failing the call.
func (s *ProblemStore) resolveJoin(ctx context.Context) ([]models.Problem, error) {
	query := `
		SELECT ` + problemColumns + `
		FROM problems
		ORDER BY updated_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query problems: %w", err)
	}
	defer rows.Close()

	problems, err := scanProblemRows(rows)
	if err != nil {
		return nil, err
	}

	s.attachSources(ctx, problems)
	return problems, nil
}

// attachSources runs the batched junction query and distributes the rows onto
// the given problems. Any failure here is logged and absorbed: the problems
// keep their empty Sources slices.
func (s *ProblemStore) attachSources(ctx context.Context, problems []models.Problem) {
	if len(problems) == 0 {
		return
	}

	query := `
		SELECT ps.problem_id, s.id, s.title, s.url, s.snippet
		FROM problem_sources ps
		JOIN sources s ON s.id = ps.source_id
		ORDER BY ps.problem_id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		s.logger.Warn("Source resolution failed, serving problems without sources",
			logger.Error(err),
		)
		return
	}
	defer rows.Close()

	byProblem := make(map[string][]models.Source, len(problems))
	for rows.Next() {
		var problemID, sourceID flexID
		var source models.Source
		if scanErr := rows.Scan(&problemID, &sourceID, &source.Title, &source.URL, &source.Snippet); scanErr != nil {
			s.logger.Warn("Skipping unreadable source row", logger.Error(scanErr))
			continue
		}
		source.ID = string(sourceID)
		byProblem[string(problemID)] = append(byProblem[string(problemID)], source)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		s.logger.Warn("Source iteration aborted", logger.Error(rowsErr))
	}

	for i := range problems {
		if attached, ok := byProblem[problems[i].ID]; ok {
			problems[i].Sources = attached
		}
	}
}

// resolveProc calls the server-side aggregation function. Each row carries
// the problem's sources as a JSON document; a per-row document that fails to
// decode degrades that one problem to empty Sources.
func (s *ProblemStore) resolveProc(ctx context.Context) ([]models.Problem, error) {
	query := `
		SELECT ` + problemColumns + `, sources
		FROM problems_with_sources()
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query problems_with_sources: %w", err)
	}
	defer rows.Close()

	problems := make([]models.Problem, 0)
	for rows.Next() {
		var p models.Problem
		var id flexID
		var sourcesJSON []byte
		if scanErr := rows.Scan(
			&id,
			&p.Statement,
			&p.Solution,
			&p.SolutionURL,
			&p.HasNegativeReviews,
			&p.ReviewURL,
			&p.CreatedAt,
			&p.UpdatedAt,
			&sourcesJSON,
		); scanErr != nil {
			return nil, fmt.Errorf("scan problem: %w", scanErr)
		}
		p.ID = string(id)
		p.Sources = decodeSources(sourcesJSON, s.logger, p.ID)
		problems = append(problems, p)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate problems: %w", rowsErr)
	}
	return problems, nil
}

// decodeSources unmarshals an aggregated sources document. json_agg yields
// SQL NULL for problems without sources; both that and a broken document
// resolve to an empty slice.
func decodeSources(data []byte, log logger.Logger, problemID string) []models.Source {
	if len(data) == 0 || string(data) == "null" {
		return []models.Source{}
	}
	var sources []models.Source
	if err := json.Unmarshal(data, &sources); err != nil {
		log.Warn("Discarding undecodable sources for problem",
			logger.String("problem_id", problemID),
			logger.Error(err),
		)
		return []models.Source{}
	}
	if sources == nil {
		sources = []models.Source{}
	}
	return sources
}

// ResolveByID implements Store. The id comparison is done as text so the
// numeric-id schema variant filters the same way.
func (s *ProblemStore) ResolveByID(ctx context.Context, id string) (*models.Problem, error) {
	query := `
		SELECT ` + problemColumns + `
		FROM problems
		WHERE id::text = $1
	`

	var p models.Problem
	var pid flexID
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&pid,
		&p.Statement,
		&p.Solution,
		&p.SolutionURL,
		&p.HasNegativeReviews,
		&p.ReviewURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query problem %s: %w", id, err)
	}
	p.ID = string(pid)
	p.Sources = s.sourcesForProblem(ctx, p.ID)

	return &p, nil
}

// sourcesForProblem fetches the sources of one problem; failures degrade to
// an empty slice.
func (s *ProblemStore) sourcesForProblem(ctx context.Context, problemID string) []models.Source {
	query := `
		SELECT s.id, s.title, s.url, s.snippet
		FROM problem_sources ps
		JOIN sources s ON s.id = ps.source_id
		WHERE ps.problem_id::text = $1
	`

	rows, err := s.db.QueryContext(ctx, query, problemID)
	if err != nil {
		s.logger.Warn("Source resolution failed for problem",
			logger.String("problem_id", problemID),
			logger.Error(err),
		)
		return []models.Source{}
	}
	defer rows.Close()

	sources := make([]models.Source, 0)
	for rows.Next() {
		var id flexID
		var source models.Source
		if scanErr := rows.Scan(&id, &source.Title, &source.URL, &source.Snippet); scanErr != nil {
			s.logger.Warn("Skipping unreadable source row",
				logger.String("problem_id", problemID),
				logger.Error(scanErr),
			)
			continue
		}
		source.ID = string(id)
		sources = append(sources, source)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		s.logger.Warn("Source iteration aborted",
			logger.String("problem_id", problemID),
			logger.Error(rowsErr),
		)
	}
	return sources
}

func scanProblemRows(rows *sql.Rows) ([]models.Problem, error) {
	problems := make([]models.Problem, 0)
	for rows.Next() {
		var p models.Problem
		var id flexID
		if err := rows.Scan(
			&id,
			&p.Statement,
			&p.Solution,
			&p.SolutionURL,
			&p.HasNegativeReviews,
			&p.ReviewURL,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan problem: %w", err)
		}
		p.ID = string(id)
		p.Sources = []models.Source{}
		problems = append(problems, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate problems: %w", err)
	}
	return problems, nil
}
