package automation

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/algoviz/internal/generator"
	"github.com/san-kum/algoviz/internal/step"
	"github.com/san-kum/algoviz/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioYAML = `name: warmup
description: a few classics
runs:
  - algorithm: two-sum
    preset: classic
    save: true
  - algorithm: two-sum
    data: [1, 2, 3]
    params: {target: 100}
  - algorithm: lru-cache
    preset: update
  - algorithm: climbing-stairs
    params: {n: 6}
`

func newRunner(t *testing.T) *Runner {
	t.Helper()
	return &Runner{Registry: generator.Default(), Store: storage.New(t.TempDir())}
}

func TestLoadAndRunScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioYAML), 0644))

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	require.Len(t, scenario.Runs, 4)
	assert.Equal(t, step.Ints(1, 2, 3), scenario.Runs[1].Data)

	r := newRunner(t)
	results, err := r.RunScenario(context.Background(), scenario)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, "[0, 1]", results[0].Result)
	assert.NotEmpty(t, results[0].RunID)
	assert.Equal(t, "No solution", results[1].Result)
	assert.Empty(t, results[1].RunID)
	assert.Equal(t, "13", results[3].Result)
	require.Len(t, results[0].Metrics, 4)
	assert.Equal(t, "comparisons", results[0].Metrics[0].Name)

	runs, err := r.Store.List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "two-sum", runs[0].Algorithm)
}

func TestRunScenario_Errors(t *testing.T) {
	r := newRunner(t)

	_, err := r.RunScenario(context.Background(), &Scenario{Runs: []ScenarioRun{{Algorithm: "nope"}}})
	assert.ErrorIs(t, err, generator.ErrUnknownAlgorithm)

	_, err = r.RunScenario(context.Background(), &Scenario{Runs: []ScenarioRun{{Algorithm: "two-sum", Preset: "nope"}}})
	assert.ErrorIs(t, err, ErrUnknownPreset)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := r.RunScenario(ctx, &Scenario{Runs: []ScenarioRun{{Algorithm: "two-sum", Preset: "classic"}}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestRunSweep(t *testing.T) {
	r := newRunner(t)
	results, err := r.RunSweep(context.Background(), &ParameterSweep{
		Algorithm: "climbing-stairs",
		ParamName: "n",
		Min:       1,
		Max:       5,
	})
	require.NoError(t, err)
	require.Len(t, results, 5)

	got := make([]string, len(results))
	for i, res := range results {
		got[i] = res.Result
	}
	assert.Equal(t, []string{"1", "2", "3", "5", "8"}, got)
	assert.Less(t, results[0].Steps, results[4].Steps)
}

func TestRunSweep_Invalid(t *testing.T) {
	r := newRunner(t)

	_, err := r.RunSweep(context.Background(), &ParameterSweep{Algorithm: "bubble-sort", ParamName: "n"})
	assert.ErrorIs(t, err, ErrBadSweep)

	_, err = r.RunSweep(context.Background(), &ParameterSweep{Algorithm: "climbing-stairs", ParamName: "n", Min: 5, Max: 1})
	assert.ErrorIs(t, err, ErrBadSweep)
}

func TestRunRandomTrials(t *testing.T) {
	r := newRunner(t)
	cfg := &RandomTrials{Algorithm: "bubble-sort", Size: 6, MaxValue: 50, Trials: 12, Seed: 7}

	first, err := r.RunRandomTrials(context.Background(), cfg)
	require.NoError(t, err)
	second, err := r.RunRandomTrials(context.Background(), cfg)
	require.NoError(t, err)

	require.Len(t, first, 12)
	assert.Equal(t, first, second)
	for _, trial := range first {
		assert.GreaterOrEqual(t, trial.Comparisons, 5)
	}

	lo, hi, mean := StepStats(first)
	assert.LessOrEqual(t, lo, hi)
	assert.GreaterOrEqual(t, mean, float64(lo))
	assert.LessOrEqual(t, mean, float64(hi))

	_, err = r.RunRandomTrials(context.Background(), &RandomTrials{Algorithm: "lru-cache", Trials: 1})
	assert.ErrorIs(t, err, ErrBadSweep)
}

func TestRunRandomTrials_Bounds(t *testing.T) {
	r := newRunner(t)

	_, err := r.RunRandomTrials(context.Background(), &RandomTrials{Algorithm: "bubble-sort", Size: -1, Trials: 1})
	assert.ErrorIs(t, err, ErrBadSweep)
	_, err = r.RunRandomTrials(context.Background(), &RandomTrials{Algorithm: "bubble-sort", Size: 3, Trials: -1})
	assert.ErrorIs(t, err, ErrBadSweep)

	results, err := r.RunRandomTrials(context.Background(), &RandomTrials{Algorithm: "bubble-sort", Size: 3, Trials: 2, MaxValue: math.MaxInt})
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, res := range results {
		for _, n := range res.Data {
			assert.GreaterOrEqual(t, n, 0)
		}
	}
}

func TestStepStats_Empty(t *testing.T) {
	lo, hi, mean := StepStats(nil)
	assert.Zero(t, lo)
	assert.Zero(t, hi)
	assert.Zero(t, mean)
}
