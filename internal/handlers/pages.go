package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/problem-finder/internal/catalog"
	"github.com/jonesrussell/problem-finder/internal/events"
	"github.com/jonesrussell/problem-finder/internal/logger"
	"github.com/jonesrussell/problem-finder/internal/models"
	"github.com/jonesrussell/problem-finder/internal/sorting"
)

// PageHandler renders the HTML views.
type PageHandler struct {
	catalog   *catalog.Catalog
	publisher *events.Publisher
	logger    logger.Logger
}

func NewPageHandler(cat *catalog.Catalog, pub *events.Publisher, log logger.Logger) *PageHandler {
	return &PageHandler{
		catalog:   cat,
		publisher: pub,
		logger:    log,
	}
}

// sortLink is a column header link carrying the state that selecting it
// produces: re-selecting the active option flips direction, a new option
// starts descending.
type sortLink struct {
	Label  string
	Href   string
	Active bool
	Arrow  string
}

// Index renders the problem list. ?view=grid switches to the card layout;
// ?sort= and ?dir= select the ordering.
func (h *PageHandler) Index(c *gin.Context) {
	state := sortStateFromQuery(c)
	view := c.DefaultQuery("view", "list")
	if view != "grid" {
		view = "list"
	}

	problems := sorting.Apply(h.catalog.Problems(c.Request.Context()), state)

	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"Title":    "Problems",
		"Live":     h.catalog.Live(),
		"Problems": problems,
		"View":     view,
		"Unsolved": countUnsolved(problems),
		"SortLinks": []sortLink{
			buildSortLink("Sources", sorting.BySources, state, view),
			buildSortLink("Updated", sorting.ByUpdated, state, view),
		},
		"ViewToggleHref": viewHref(otherView(view), state),
	})
}

// Detail renders a single problem page; a missing id gets the dedicated
// not-found view, distinct from the error view.
func (h *PageHandler) Detail(c *gin.Context) {
	id := c.Param("id")

	problem, err := h.catalog.ProblemByID(c.Request.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		h.NotFound(c)
		return
	}
	if err != nil {
		h.logger.Error("Failed to render problem detail",
			logger.String("problem_id", id),
			logger.Error(err),
		)
		h.Error(c)
		return
	}

	h.publisher.PublishAsync(events.Event{
		EventType: events.EventProblemViewed,
		ProblemID: problem.ID,
	})

	c.HTML(http.StatusOK, "detail.tmpl", gin.H{
		"Title":   problem.Statement,
		"Live":    h.catalog.Live(),
		"Problem": problem,
	})
}

// About renders the static informational page.
func (h *PageHandler) About(c *gin.Context) {
	c.HTML(http.StatusOK, "about.tmpl", gin.H{
		"Title": "About",
		"Live":  h.catalog.Live(),
	})
}

// NotFound renders the 404 view.
func (h *PageHandler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "notfound.tmpl", gin.H{
		"Title": "Not found",
		"Live":  h.catalog.Live(),
	})
}

// Error renders the error view with a retry link.
func (h *PageHandler) Error(c *gin.Context) {
	c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{
		"Title": "Something went wrong",
		"Live":  h.catalog.Live(),
	})
}

func buildSortLink(label string, option sorting.Option, state sorting.State, view string) sortLink {
	next := state.Toggle(option)
	link := sortLink{
		Label:  label,
		Href:   viewHref(view, next),
		Active: state.Option == option,
	}
	if link.Active {
		if state.Descending {
			link.Arrow = "▼"
		} else {
			link.Arrow = "▲"
		}
	}
	return link
}

func viewHref(view string, state sorting.State) string {
	dir := "desc"
	if !state.Descending {
		dir = "asc"
	}
	return fmt.Sprintf("/?view=%s&sort=%s&dir=%s", view, state.Option, dir)
}

func otherView(view string) string {
	if view == "grid" {
		return "list"
	}
	return "grid"
}

func countUnsolved(problems []models.Problem) int {
	n := 0
	for _, p := range problems {
		if !p.Solved() {
			n++
		}
	}
	return n
}
