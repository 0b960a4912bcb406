package player

import (
	"sort"

	"github.com/san-kum/algoviz/internal/step"
)

// IndexSet is a set of data indices.
type IndexSet map[int]struct{}

func newIndexSet(indices ...int) IndexSet {
	s := make(IndexSet, len(indices))
	for _, i := range indices {
		s[i] = struct{}{}
	}
	return s
}

func (s IndexSet) Has(i int) bool {
	_, ok := s[i]
	return ok
}

// Sorted returns the members in ascending order.
func (s IndexSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// highlights holds one set per non-default role.
type highlights map[step.Role]IndexSet

func newHighlights() highlights {
	h := make(highlights, len(step.Roles))
	for _, r := range step.Roles {
		h[r] = IndexSet{}
	}
	return h
}

// apply recomputes the transient sets for s. Sorted is cumulative and only
// grows.
func (h highlights) apply(s step.Step) {
	for _, r := range step.Roles {
		if r != step.RoleSorted {
			h[r] = IndexSet{}
		}
	}
	if len(s.Indices) == 0 {
		return
	}
	role := s.EffectiveRole()
	switch role {
	case step.RoleDefault:
	case step.RoleSorted:
		for _, i := range s.Indices {
			h[role][i] = struct{}{}
		}
	default:
		h[role] = newIndexSet(s.Indices...)
	}
}

// resolve picks the single visual state of index i, first match wins.
func (h highlights) resolve(i int) step.Role {
	for _, r := range step.Roles {
		if h[r].Has(i) {
			return r
		}
	}
	return step.RoleDefault
}
