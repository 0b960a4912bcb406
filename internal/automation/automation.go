// Package automation runs generators in batches: scripted scenarios,
// parameter sweeps and random-input trials.
package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"

	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/generator"
	"github.com/san-kum/algoviz/internal/logging"
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/step"
	"github.com/san-kum/algoviz/internal/storage"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownPreset = errors.New("automation: unknown preset")
	ErrBadSweep      = errors.New("automation: invalid sweep")
)

// Scenario is a scripted list of generator runs.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Runs        []ScenarioRun `yaml:"runs"`
}

// ScenarioRun is one run. Preset, when set, supplies data and params;
// explicit Data and Params override it.
type ScenarioRun struct {
	Algorithm string         `yaml:"algorithm"`
	Preset    string         `yaml:"preset"`
	Data      []step.Value   `yaml:"data"`
	Params    map[string]any `yaml:"params"`
	Save      bool           `yaml:"save"`
}

// RunResult summarises one scenario run.
type RunResult struct {
	Algorithm string `json:"algorithm" yaml:"algorithm"`
	Steps     int    `json:"steps" yaml:"steps"`
	Result    string `json:"result" yaml:"result"`
	RunID     string `json:"run_id,omitempty" yaml:"run_id,omitempty"`

	Metrics []metrics.Result `json:"metrics" yaml:"metrics"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("automation: decode %s: %w", path, err)
	}
	return &scenario, nil
}

// Runner executes batches against a registry. Store may be nil, in which
// case runs marked save are not persisted.
type Runner struct {
	Registry *generator.Registry
	Store    *storage.Store
	Log      *slog.Logger
}

func (r *Runner) log() *slog.Logger {
	if r.Log == nil {
		return logging.NewNop()
	}
	return r.Log
}

// RunScenario executes every run in order and stops at the first error.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) ([]RunResult, error) {
	results := make([]RunResult, 0, len(scenario.Runs))

	for i, run := range scenario.Runs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		r.log().Info("running scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Runs), "algorithm", run.Algorithm)

		algo, err := r.Registry.Get(run.Algorithm)
		if err != nil {
			return results, fmt.Errorf("run %d: %w", i+1, err)
		}
		data, params, err := run.input()
		if err != nil {
			return results, fmt.Errorf("run %d: %w", i+1, err)
		}

		input, seq, err := algo.Run(data, params)
		if err != nil {
			return results, fmt.Errorf("run %d: %w", i+1, err)
		}

		res := RunResult{
			Algorithm: algo.Name,
			Steps:     len(seq),
			Result:    storage.FinalResult(seq),
			Metrics:   metrics.Collect(seq, metrics.Standard(len(input))...),
		}
		if run.Save && r.Store != nil {
			res.RunID, err = r.Store.Save(algo.Name, input, params, seq)
			if err != nil {
				return results, fmt.Errorf("run %d save: %w", i+1, err)
			}
		}
		results = append(results, res)
	}

	return results, nil
}

func (run ScenarioRun) input() ([]step.Value, generator.Params, error) {
	data := step.CloneValues(run.Data)
	params := generator.Params{}

	if run.Preset != "" {
		cfg := config.GetPreset(run.Algorithm, run.Preset)
		if cfg == nil {
			return nil, nil, fmt.Errorf("%w: %s/%s", ErrUnknownPreset, run.Algorithm, run.Preset)
		}
		if data == nil {
			data = cfg.Data
		}
		for k, v := range cfg.Params {
			params[k] = v
		}
	}
	for k, v := range run.Params {
		params[k] = v
	}
	return data, params, nil
}

// ParameterSweep reruns one algorithm over an integer parameter range.
type ParameterSweep struct {
	Algorithm string
	Data      []step.Value
	Params    map[string]any
	ParamName string
	Min       int
	Max       int
	Stride    int
}

// SweepResult holds the outcome for one parameter value.
type SweepResult struct {
	Value  int    `json:"value" yaml:"value"`
	Steps  int    `json:"steps" yaml:"steps"`
	Result string `json:"result" yaml:"result"`
}

func (r *Runner) RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	algo, err := r.Registry.Get(sweep.Algorithm)
	if err != nil {
		return nil, err
	}
	spec, ok := algo.Param(sweep.ParamName)
	if !ok || spec.Type != generator.Number {
		return nil, fmt.Errorf("%w: %s has no numeric parameter %q", ErrBadSweep, algo.Name, sweep.ParamName)
	}
	stride := sweep.Stride
	if stride <= 0 {
		stride = 1
	}
	if sweep.Max < sweep.Min {
		return nil, fmt.Errorf("%w: max %d < min %d", ErrBadSweep, sweep.Max, sweep.Min)
	}

	results := make([]SweepResult, 0, (sweep.Max-sweep.Min)/stride+1)
	for v := sweep.Min; v <= sweep.Max; v += stride {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		params := generator.Params(sweep.Params).Clone()
		params[sweep.ParamName] = v

		_, seq, err := algo.Run(sweep.Data, params)
		if err != nil {
			return results, err
		}
		results = append(results, SweepResult{Value: v, Steps: len(seq), Result: storage.FinalResult(seq)})
		r.log().Debug("sweep point", "algorithm", algo.Name, sweep.ParamName, v, "steps", len(seq))
	}
	return results, nil
}

// RandomTrials runs an algorithm on random integer arrays.
type RandomTrials struct {
	Algorithm string
	Params    map[string]any
	Size      int
	MaxValue  int
	Trials    int
	Seed      int64
}

// TrialResult is one random run.
type TrialResult struct {
	Trial       int
	Data        []int
	Steps       int
	Comparisons int
	Result      string
}

func (r *Runner) RunRandomTrials(ctx context.Context, cfg *RandomTrials) ([]TrialResult, error) {
	algo, err := r.Registry.Get(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	if algo.Data != generator.Number || algo.Table != nil {
		return nil, fmt.Errorf("%w: %s does not take a numeric array", ErrBadSweep, algo.Name)
	}
	if cfg.Size < 0 || cfg.Trials < 0 {
		return nil, fmt.Errorf("%w: size %d and trials %d must not be negative", ErrBadSweep, cfg.Size, cfg.Trials)
	}
	maxValue := cfg.MaxValue
	if maxValue <= 0 {
		maxValue = 100
	}
	maxValue = min(maxValue, math.MaxInt-1)

	rng := rand.New(rand.NewSource(cfg.Seed))
	comparisons := metrics.Comparisons()
	results := make([]TrialResult, 0, cfg.Trials)
	for trial := 0; trial < cfg.Trials; trial++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		nums := make([]int, cfg.Size)
		for i := range nums {
			nums[i] = rng.Intn(maxValue + 1)
		}

		_, seq, err := algo.Run(step.Ints(nums...), cfg.Params)
		if err != nil {
			return results, err
		}
		cmp := metrics.Collect(seq, comparisons)[0]
		results = append(results, TrialResult{
			Trial:       trial,
			Data:        nums,
			Steps:       len(seq),
			Comparisons: int(cmp.Value),
			Result:      storage.FinalResult(seq),
		})

		if (trial+1)%10 == 0 {
			r.log().Info("random trials", "algorithm", algo.Name, "done", trial+1, "of", cfg.Trials)
		}
	}
	return results, nil
}

// StepStats summarises step counts across trials.
func StepStats(results []TrialResult) (minSteps, maxSteps int, mean float64) {
	if len(results) == 0 {
		return 0, 0, 0
	}
	minSteps, maxSteps = results[0].Steps, results[0].Steps
	total := 0
	for _, r := range results {
		minSteps = min(minSteps, r.Steps)
		maxSteps = max(maxSteps, r.Steps)
		total += r.Steps
	}
	return minSteps, maxSteps, float64(total) / float64(len(results))
}
