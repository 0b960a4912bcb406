package config

import (
	"sort"

	"github.com/san-kum/algoviz/internal/step"
)

// Preset is a named input for one algorithm.
type Preset struct {
	Data   []step.Value
	Params map[string]any
}

var Presets = map[string]map[string]Preset{
	"two-sum": {
		"classic":     {Data: step.Ints(2, 7, 11, 15), Params: map[string]any{"target": 9}},
		"duplicates":  {Data: step.Ints(3, 3), Params: map[string]any{"target": 6}},
		"middle":      {Data: step.Ints(3, 2, 4), Params: map[string]any{"target": 6}},
		"no-solution": {Data: step.Ints(1, 2, 3), Params: map[string]any{"target": 100}},
	},
	"binary-search": {
		"found":   {Data: step.Ints(1, 3, 5, 7, 9, 11, 13), Params: map[string]any{"target": 9}},
		"missing": {Data: step.Ints(1, 3, 5, 7, 9, 11, 13), Params: map[string]any{"target": 4}},
	},
	"bubble-sort": {
		"random":   {Data: step.Ints(5, 1, 4, 2, 8)},
		"reversed": {Data: step.Ints(9, 7, 5, 3, 1)},
		"sorted":   {Data: step.Ints(1, 2, 3, 4, 5)},
	},
	"climbing-stairs": {
		"small": {Params: map[string]any{"n": 5}},
		"large": {Params: map[string]any{"n": 10}},
	},
	"house-robber": {
		"classic": {Data: step.Ints(2, 7, 9, 3, 1)},
		"short":   {Data: step.Ints(1, 2, 3, 1)},
	},
	"valid-palindrome": {
		"panama": {Params: map[string]any{"text": "A man, a plan, a canal: Panama"}},
		"car":    {Params: map[string]any{"text": "race a car"}},
	},
	"permutations": {
		"three": {Data: step.Ints(1, 2, 3)},
		"two":   {Data: step.Ints(0, 1)},
	},
	"lru-cache": {
		"classic": {
			Data:   step.Texts("put 1 1", "put 2 2", "get 1", "put 3 3", "get 2", "put 4 4"),
			Params: map[string]any{"capacity": 3},
		},
		"update": {
			Data:   step.Texts("put 1 100", "put 2 200", "put 3 300", "put 1 111", "get 2"),
			Params: map[string]any{"capacity": 3},
		},
	},
	"debounce": {
		"typing": {Data: step.Ints(0, 100, 200, 700, 800, 1500), Params: map[string]any{"delay": 300}},
	},
	"throttle": {
		"scroll": {Data: step.Ints(0, 50, 100, 320, 400, 700, 710), Params: map[string]any{"interval": 300}},
	},
}

// GetPreset returns a config for the named preset, or nil.
func GetPreset(algorithm, preset string) *Config {
	algoPresets, ok := Presets[algorithm]
	if !ok {
		return nil
	}
	p, ok := algoPresets[preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Algorithm = algorithm
	cfg.Data = step.CloneValues(p.Data)
	cfg.Params = make(map[string]any, len(p.Params))
	for k, v := range p.Params {
		cfg.Params[k] = v
	}
	return cfg
}

func ListPresets(algorithm string) []string {
	algoPresets, ok := Presets[algorithm]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(algoPresets))
	for name := range algoPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
