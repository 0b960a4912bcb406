package render

import (
	"errors"
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/algoviz/internal/step"
)

var ErrNoSeries = errors.New("render: no numeric values to plot")

// Series returns the value of the integer variable name after each step.
// Steps before the first assignment are skipped; later steps repeat the last
// value.
func Series(seq step.Sequence, name string) []float64 {
	var out []float64
	var last float64
	seen := false
	for _, s := range seq {
		if v, ok := s.Variables[name]; ok {
			if n, ok := v.AsInt(); ok {
				last, seen = float64(n), true
			}
		}
		if seen {
			out = append(out, last)
		}
	}
	return out
}

// NumericVars lists the variables that hold an integer at some step, in
// first-seen order.
func NumericVars(seq step.Sequence) []string {
	seen := map[string]bool{}
	var names []string
	for _, s := range seq {
		for _, name := range s.VarNames() {
			if seen[name] {
				continue
			}
			if _, ok := s.Variables[name].AsInt(); ok {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// Plot charts one variable across the sequence.
func Plot(seq step.Sequence, name string, width, height int) (string, error) {
	data := Series(seq, name)
	if len(data) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoSeries, name)
	}
	if len(data) == 1 {
		data = append(data, data[0])
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(name),
	), nil
}
