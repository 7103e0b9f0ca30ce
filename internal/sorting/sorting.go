// Package sorting implements the client-facing ordering of the problem list.
//
// Problems without a recorded solution always rank ahead of solved ones, no
// matter which sort option is active. Within each partition the selected
// comparator applies, and ties keep the input order (the catalog's
// updated_at-descending default).
package sorting

import (
	"sort"

	"github.com/jonesrussell/problem-finder/internal/models"
)

// Option selects the comparator applied within each partition.
type Option string

const (
	// BySources orders by the number of attached sources.
	BySources Option = "sources"
	// ByUpdated orders by the updated_at timestamp.
	ByUpdated Option = "updated"
)

// ParseOption maps a query-string value to an Option, defaulting to BySources.
func ParseOption(s string) Option {
	if Option(s) == ByUpdated {
		return ByUpdated
	}
	return BySources
}

// State is the active sort selection.
type State struct {
	Option     Option
	Descending bool
}

// DefaultState is the list view's initial ordering: by source count,
// descending.
func DefaultState() State {
	return State{Option: BySources, Descending: true}
}

// Toggle returns the state after the user selects an option: re-selecting the
// active option flips the direction, selecting a new one resets to
// descending.
func (s State) Toggle(option Option) State {
	if option == s.Option {
		return State{Option: s.Option, Descending: !s.Descending}
	}
	return State{Option: option, Descending: true}
}

// Apply returns a sorted copy of problems. The input slice is never mutated.
func Apply(problems []models.Problem, state State) []models.Problem {
	out := make([]models.Problem, len(problems))
	copy(out, problems)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]

		// unsolved-first override
		if a.Solved() != b.Solved() {
			return !a.Solved()
		}

		var less, greater bool
		switch state.Option {
		case ByUpdated:
			less = a.UpdatedAt.Before(b.UpdatedAt)
			greater = a.UpdatedAt.After(b.UpdatedAt)
		default: // BySources
			less = len(a.Sources) < len(b.Sources)
			greater = len(a.Sources) > len(b.Sources)
		}

		if state.Descending {
			return greater
		}
		return less
	})

	return out
}
