package metrics

import (
	"testing"

	"github.com/san-kum/algoviz/internal/generator"
	"github.com/san-kum/algoviz/internal/step"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values(rs []Result) map[string]float64 {
	out := make(map[string]float64, len(rs))
	for _, r := range rs {
		out[r.Name] = r.Value
	}
	return out
}

func TestCollect_BubbleSort(t *testing.T) {
	seq := generator.BubbleSort([]int{3, 2, 1})

	got := values(Collect(seq, Standard(3)...))

	assert.Equal(t, 3.0, got["comparisons"])
	assert.Equal(t, 3.0, got["swaps"])
	assert.Equal(t, 0.0, got["writes"])
	assert.Equal(t, 1.0, got["coverage"])
}

func TestCollect_ResetsBetweenRuns(t *testing.T) {
	c := Comparisons()
	seq := step.Sequence{step.Compare("a", 0, 1), step.Narrate("b")}

	Collect(seq, c)
	rs := Collect(seq, c)

	require.Len(t, rs, 1)
	assert.Equal(t, 1.0, rs[0].Value)
}

func TestCoverage(t *testing.T) {
	c := NewCoverage(4)
	c.Observe(step.Compare("x", 0, 1, 9))
	assert.Equal(t, 0.5, c.Value())

	c.Reset()
	assert.Equal(t, 0.0, c.Value())
	assert.Equal(t, 0.0, NewCoverage(0).Value())
}
