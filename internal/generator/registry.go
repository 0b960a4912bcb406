package generator

import (
	"fmt"
	"sort"
)

// Registry maps algorithm names to their generators.
type Registry struct {
	algorithms map[string]Algorithm
}

func NewRegistry() *Registry {
	return &Registry{algorithms: make(map[string]Algorithm)}
}

// Default returns a registry holding every built-in algorithm.
func Default() *Registry {
	r := NewRegistry()
	for _, a := range []Algorithm{
		TwoSumAlgorithm(),
		BinarySearchAlgorithm(),
		BubbleSortAlgorithm(),
		ClimbingStairsAlgorithm(),
		HouseRobberAlgorithm(),
		ValidPalindromeAlgorithm(),
		PermutationsAlgorithm(),
		LRUCacheAlgorithm(),
		DebounceAlgorithm(),
		ThrottleAlgorithm(),
	} {
		r.Register(a)
	}
	return r
}

// Register adds or replaces an algorithm.
func (r *Registry) Register(a Algorithm) { r.algorithms[a.Name] = a }

func (r *Registry) Get(name string) (Algorithm, error) {
	a, ok := r.algorithms[name]
	if !ok {
		return Algorithm{}, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, name)
	}
	return a, nil
}

// List returns the registered algorithms sorted by name.
func (r *Registry) List() []Algorithm {
	out := make([]Algorithm, 0, len(r.algorithms))
	for _, a := range r.algorithms {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Registry) Names() []string {
	list := r.List()
	names := make([]string, len(list))
	for i, a := range list {
		names[i] = a.Name
	}
	return names
}
