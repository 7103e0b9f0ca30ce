package sorting_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/problem-finder/internal/models"
	"github.com/jonesrussell/problem-finder/internal/sorting"
)

func problem(id, solution string, sources int, updated time.Time) models.Problem {
	srcs := make([]models.Source, sources)
	for i := range srcs {
		srcs[i] = models.Source{ID: id, URL: "https://example.com/" + id}
	}
	return models.Problem{
		ID:        id,
		Statement: "statement " + id,
		Solution:  solution,
		UpdatedAt: updated,
		Sources:   srcs,
	}
}

func ids(problems []models.Problem) []string {
	out := make([]string, len(problems))
	for i, p := range problems {
		out[i] = p.ID
	}
	return out
}

func TestApplyUnsolvedFirst(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// A: unsolved, 3 sources; B: solved, 5 sources and newer.
	a := problem("a", "", 3, base)
	b := problem("b", "done", 5, base.Add(48*time.Hour))
	input := []models.Problem{b, a}

	states := []sorting.State{
		{Option: sorting.BySources, Descending: true},
		{Option: sorting.BySources, Descending: false},
		{Option: sorting.ByUpdated, Descending: true},
		{Option: sorting.ByUpdated, Descending: false},
	}

	for _, state := range states {
		sorted := sorting.Apply(input, state)
		assert.Equal(t, []string{"a", "b"}, ids(sorted),
			"unsolved problem must lead under %+v", state)
	}
}

func TestApplyBySources(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	input := []models.Problem{
		problem("one", "", 1, base),
		problem("ten", "", 10, base),
		problem("zero", "", 0, base),
	}

	sorted := sorting.Apply(input, sorting.State{Option: sorting.BySources, Descending: true})
	assert.Equal(t, []string{"ten", "one", "zero"}, ids(sorted))

	sorted = sorting.Apply(input, sorting.State{Option: sorting.BySources, Descending: false})
	assert.Equal(t, []string{"zero", "one", "ten"}, ids(sorted))
}

func TestApplyByUpdated(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	input := []models.Problem{
		problem("mid", "", 0, base.Add(24*time.Hour)),
		problem("old", "", 0, base),
		problem("new", "", 0, base.Add(72*time.Hour)),
	}

	sorted := sorting.Apply(input, sorting.State{Option: sorting.ByUpdated, Descending: true})
	assert.Equal(t, []string{"new", "mid", "old"}, ids(sorted))

	sorted = sorting.Apply(input, sorting.State{Option: sorting.ByUpdated, Descending: false})
	assert.Equal(t, []string{"old", "mid", "new"}, ids(sorted))
}

func TestApplyTiesKeepInputOrder(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	input := []models.Problem{
		problem("first", "", 2, base),
		problem("second", "", 2, base),
		problem("third", "", 2, base),
	}

	for _, desc := range []bool{true, false} {
		sorted := sorting.Apply(input, sorting.State{Option: sorting.BySources, Descending: desc})
		assert.Equal(t, []string{"first", "second", "third"}, ids(sorted))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	input := []models.Problem{
		problem("a", "", 0, base),
		problem("b", "", 5, base),
	}

	_ = sorting.Apply(input, sorting.State{Option: sorting.BySources, Descending: true})
	assert.Equal(t, []string{"a", "b"}, ids(input), "input order must be preserved")
}

func TestApplyGridDefaultScenario(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	input := []models.Problem{
		problem("solved-many", "fixed", 12, base),
		problem("unsolved-none", "", 0, base),
		problem("unsolved-many", "", 10, base),
	}

	sorted := sorting.Apply(input, sorting.DefaultState())
	require.Len(t, sorted, 3)
	// both unsolved problems lead, ordered by source count desc
	assert.Equal(t, []string{"unsolved-many", "unsolved-none", "solved-many"}, ids(sorted))
}

func TestToggle(t *testing.T) {
	start := sorting.DefaultState()
	require.Equal(t, sorting.BySources, start.Option)
	require.True(t, start.Descending)

	// same option flips direction
	flipped := start.Toggle(sorting.BySources)
	assert.Equal(t, sorting.BySources, flipped.Option)
	assert.False(t, flipped.Descending)

	// flipping twice restores the original direction
	restored := flipped.Toggle(sorting.BySources)
	assert.Equal(t, start, restored)

	// a new option resets to descending
	ascending := sorting.State{Option: sorting.BySources, Descending: false}
	switched := ascending.Toggle(sorting.ByUpdated)
	assert.Equal(t, sorting.ByUpdated, switched.Option)
	assert.True(t, switched.Descending)
}

func TestParseOption(t *testing.T) {
	assert.Equal(t, sorting.ByUpdated, sorting.ParseOption("updated"))
	assert.Equal(t, sorting.BySources, sorting.ParseOption("sources"))
	assert.Equal(t, sorting.BySources, sorting.ParseOption(""))
	assert.Equal(t, sorting.BySources, sorting.ParseOption("nonsense"))
}
