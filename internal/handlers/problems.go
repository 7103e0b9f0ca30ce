// Package handlers contains the Gin handlers for the JSON API and the
// rendered pages.
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/problem-finder/internal/catalog"
	"github.com/jonesrussell/problem-finder/internal/events"
	"github.com/jonesrussell/problem-finder/internal/export"
	"github.com/jonesrussell/problem-finder/internal/logger"
	"github.com/jonesrussell/problem-finder/internal/sorting"
)

// ProblemHandler serves the JSON API over the catalog.
type ProblemHandler struct {
	catalog   *catalog.Catalog
	publisher *events.Publisher
	logger    logger.Logger
}

func NewProblemHandler(cat *catalog.Catalog, pub *events.Publisher, log logger.Logger) *ProblemHandler {
	return &ProblemHandler{
		catalog:   cat,
		publisher: pub,
		logger:    log,
	}
}

// sortStateFromQuery builds the sort state from ?sort= and ?dir=.
func sortStateFromQuery(c *gin.Context) sorting.State {
	state := sorting.State{
		Option:     sorting.ParseOption(c.Query("sort")),
		Descending: c.DefaultQuery("dir", "desc") != "asc",
	}
	return state
}

// List returns the sorted problem collection.
func (h *ProblemHandler) List(c *gin.Context) {
	state := sortStateFromQuery(c)
	problems := sorting.Apply(h.catalog.Problems(c.Request.Context()), state)

	c.JSON(http.StatusOK, gin.H{
		"problems": problems,
		"count":    len(problems),
		"sort":     string(state.Option),
		"dir":      direction(state),
		"live":     h.catalog.Live(),
	})
}

// GetByID returns a single problem or a 404 body for the not-found outcome.
func (h *ProblemHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	problem, err := h.catalog.ProblemByID(c.Request.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Problem not found"})
		return
	}
	if err != nil {
		// the catalog absorbs store failures; anything else is unexpected
		h.logger.Error("Failed to resolve problem",
			logger.String("problem_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve problem"})
		return
	}

	h.publisher.PublishAsync(events.Event{
		EventType: events.EventProblemViewed,
		ProblemID: problem.ID,
	})

	c.JSON(http.StatusOK, problem)
}

// Export streams the current problem list as an XLSX workbook.
func (h *ProblemHandler) Export(c *gin.Context) {
	problems := h.catalog.Problems(c.Request.Context())

	filename := fmt.Sprintf("problems-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := export.Write(c.Writer, problems); err != nil {
		h.logger.Error("Failed to export problems", logger.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
}

func direction(state sorting.State) string {
	if state.Descending {
		return "desc"
	}
	return "asc"
}
