// Package metrics counts operations across a step sequence.
package metrics

import (
	"github.com/san-kum/algoviz/internal/step"
)

// Metric observes steps one at a time.
type Metric interface {
	Name() string
	Observe(s step.Step)
	Value() float64
	Reset()
}

// Counter counts steps of one kind.
type Counter struct {
	name  string
	kind  step.Kind
	count int
}

func NewCounter(name string, kind step.Kind) *Counter {
	return &Counter{name: name, kind: kind}
}

func (c *Counter) Name() string { return c.name }

func (c *Counter) Observe(s step.Step) {
	if s.Kind == c.kind {
		c.count++
	}
}

func (c *Counter) Value() float64 { return float64(c.count) }
func (c *Counter) Reset()         { c.count = 0 }

func Comparisons() *Counter { return NewCounter("comparisons", step.KindCompare) }
func Swaps() *Counter       { return NewCounter("swaps", step.KindSwap) }
func Writes() *Counter      { return NewCounter("writes", step.KindSetValue) }

// Coverage is the fraction of data indices touched by at least one step.
type Coverage struct {
	size    int
	touched map[int]bool
}

func NewCoverage(size int) *Coverage {
	return &Coverage{size: size, touched: make(map[int]bool)}
}

func (c *Coverage) Name() string { return "coverage" }

func (c *Coverage) Observe(s step.Step) {
	for _, i := range s.Indices {
		if i >= 0 && i < c.size {
			c.touched[i] = true
		}
	}
}

func (c *Coverage) Value() float64 {
	if c.size == 0 {
		return 0
	}
	return float64(len(c.touched)) / float64(c.size)
}

func (c *Coverage) Reset() { clear(c.touched) }

// Standard returns the counters reported for every run over size items.
func Standard(size int) []Metric {
	return []Metric{Comparisons(), Swaps(), Writes(), NewCoverage(size)}
}

// Result is one named metric value.
type Result struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

// Collect resets ms, feeds them seq and returns their values in order.
func Collect(seq step.Sequence, ms ...Metric) []Result {
	for _, m := range ms {
		m.Reset()
	}
	for _, s := range seq {
		for _, m := range ms {
			m.Observe(s)
		}
	}
	out := make([]Result, len(ms))
	for i, m := range ms {
		out[i] = Result{Name: m.Name(), Value: m.Value()}
	}
	return out
}
