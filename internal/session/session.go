// Package session binds a generator, its editable input and one player
// store into a single visualization.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/embed"
	"github.com/san-kum/algoviz/internal/generator"
	"github.com/san-kum/algoviz/internal/logging"
	"github.com/san-kum/algoviz/internal/player"
	"github.com/san-kum/algoviz/internal/step"
	"github.com/san-kum/algoviz/internal/storage"
)

// Visualization owns its store. Edits are applied synchronously: an accepted
// edit regenerates the sequence and reloads the store before returning.
type Visualization struct {
	store *player.Store
	algo  *generator.Algorithm
	cfg   config.Visualizer
	log   *slog.Logger

	data    []step.Value
	params  generator.Params
	pending map[string]bool

	initialData   []step.Value
	initialParams generator.Params
}

type Option func(*Visualization)

func WithLogger(log *slog.Logger) Option {
	return func(v *Visualization) { v.log = log }
}

// New generates the first sequence for algo and loads it.
func New(algo generator.Algorithm, data []step.Value, params map[string]any, cfg config.Visualizer, opts ...Option) (*Visualization, error) {
	v := newVisualization(cfg, opts)
	v.algo = &algo
	v.data = step.CloneValues(data)
	v.params = generator.Params(params).Clone()
	v.initialData = step.CloneValues(data)
	v.initialParams = v.params.Clone()

	if err := v.regenerate(); err != nil {
		return nil, err
	}
	v.start()
	return v, nil
}

// NewStatic plays a precomputed sequence. It is never interactive.
func NewStatic(data []step.Value, seq step.Sequence, cfg config.Visualizer, opts ...Option) *Visualization {
	v := newVisualization(cfg, opts)
	v.data = step.CloneValues(data)
	v.initialData = step.CloneValues(data)
	v.store.Load(v.data, seq)
	v.start()
	return v
}

// FromSpec builds the visualization a host document declared. A steps file,
// when present, wins over the algorithm.
func FromSpec(spec embed.Spec, reg *generator.Registry, opts ...Option) (*Visualization, error) {
	if spec.Kind != embed.KindArray {
		return nil, fmt.Errorf("%w: %q", embed.ErrUnsupportedKind, spec.Kind)
	}
	if spec.Steps != "" {
		seq, err := storage.ReadSequence(spec.Steps)
		if err != nil {
			return nil, err
		}
		return NewStatic(spec.Data, seq, spec.Config, opts...), nil
	}
	algo, err := reg.Get(spec.Algorithm)
	if err != nil {
		return nil, err
	}
	return New(algo, spec.Data, spec.Params, spec.Config, opts...)
}

func newVisualization(cfg config.Visualizer, opts []Option) *Visualization {
	v := &Visualization{
		store:   player.New(),
		cfg:     cfg,
		log:     logging.NewNop(),
		pending: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Visualization) start() {
	v.store.SetSpeed(v.cfg.Speed)
	if v.cfg.AutoPlay {
		v.store.Play()
	}
}

func (v *Visualization) Store() *player.Store       { return v.store }
func (v *Visualization) Config() config.Visualizer  { return v.cfg }
func (v *Visualization) Data() []step.Value         { return step.CloneValues(v.data) }
func (v *Visualization) Params() generator.Params   { return v.params.Clone() }
func (v *Visualization) IsPending(name string) bool { return v.pending[name] }
func (v *Visualization) Algorithm() (generator.Algorithm, bool) {
	if v.algo == nil {
		return generator.Algorithm{}, false
	}
	return *v.algo, true
}

// Interactive reports whether edits are accepted.
func (v *Visualization) Interactive() bool {
	return v.cfg.Interactive && v.algo != nil
}

// DataEditable reports whether the data array itself can be edited.
func (v *Visualization) DataEditable() bool {
	return v.Interactive() && v.algo.Table == nil
}

// EditItem replaces item i with raw. For numeric data an empty string is
// stored as 0.
func (v *Visualization) EditItem(i int, raw string) error {
	field := "item " + strconv.Itoa(i)
	if err := v.checkData("edit", field); err != nil {
		return err
	}
	if i < 0 || i >= len(v.data) {
		return v.reject(&EditError{Op: "edit", Field: field, Err: ErrIndexOutOfRange})
	}

	val, err := v.parseItem(raw)
	if err != nil {
		return v.reject(&EditError{Op: "edit", Field: field, Value: raw, Err: err})
	}
	v.data[i] = val
	return v.regenerate()
}

// AddItem appends a zero item.
func (v *Visualization) AddItem() error {
	if err := v.checkData("add", "item"); err != nil {
		return err
	}
	v.data = append(v.data, v.zero())
	return v.regenerate()
}

// RemoveItem deletes item i. The last remaining item cannot be removed.
func (v *Visualization) RemoveItem(i int) error {
	field := "item " + strconv.Itoa(i)
	if err := v.checkData("remove", field); err != nil {
		return err
	}
	if i < 0 || i >= len(v.data) {
		return v.reject(&EditError{Op: "remove", Field: field, Err: ErrIndexOutOfRange})
	}
	if len(v.data) <= 1 {
		return v.reject(&EditError{Op: "remove", Field: field, Err: ErrLastItem})
	}
	v.data = append(v.data[:i], v.data[i+1:]...)
	return v.regenerate()
}

// EditParam sets a parameter from editor text. An empty string is held as a
// pending value and does not regenerate.
func (v *Visualization) EditParam(name, raw string) error {
	field := "param " + name
	if !v.Interactive() {
		return v.reject(&EditError{Op: "edit", Field: field, Err: ErrNotInteractive})
	}
	spec, ok := v.algo.Param(name)
	if !ok {
		return v.reject(&EditError{Op: "edit", Field: field, Err: ErrUnknownParam})
	}

	if raw == "" {
		v.params[name] = ""
		v.pending[name] = true
		v.log.Debug("parameter pending", "param", name)
		return nil
	}

	val, err := spec.Parse(raw)
	if err != nil {
		if errors.Is(err, generator.ErrInvalidParam) {
			err = ErrInvalidNumber
		}
		return v.reject(&EditError{Op: "edit", Field: field, Value: raw, Err: err})
	}
	v.params[name] = val
	delete(v.pending, name)
	return v.regenerate()
}

// Run regenerates from the current input. Pending parameters fall back to
// their defaults.
func (v *Visualization) Run() error {
	if !v.Interactive() {
		return v.reject(&EditError{Op: "run", Field: "visualization", Err: ErrNotInteractive})
	}
	return v.regenerate()
}

// ResetInput restores the initial data and parameters and regenerates.
func (v *Visualization) ResetInput() error {
	if !v.Interactive() {
		return v.reject(&EditError{Op: "reset", Field: "input", Err: ErrNotInteractive})
	}
	v.data = step.CloneValues(v.initialData)
	v.params = v.initialParams.Clone()
	v.pending = make(map[string]bool)
	return v.regenerate()
}

func (v *Visualization) checkData(op, field string) error {
	if !v.Interactive() {
		return v.reject(&EditError{Op: op, Field: field, Err: ErrNotInteractive})
	}
	if v.algo.Table != nil {
		return v.reject(&EditError{Op: op, Field: field, Err: ErrDerivedData})
	}
	return nil
}

func (v *Visualization) parseItem(raw string) (step.Value, error) {
	if v.algo.Data != generator.Number {
		return step.Text(raw), nil
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return step.Int(0), nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return step.Value{}, ErrInvalidNumber
	}
	return step.Int(n), nil
}

func (v *Visualization) zero() step.Value {
	if v.algo.Data == generator.Number {
		return step.Int(0)
	}
	return step.Text("")
}

func (v *Visualization) regenerate() error {
	params := v.params.Clone()
	for name := range v.pending {
		delete(params, name)
	}

	input, seq, err := v.algo.Run(v.data, params)
	if err != nil {
		return err
	}
	v.store.Load(input, seq)
	v.log.Debug("regenerated", "algorithm", v.algo.Name, "items", len(input), "steps", len(seq))
	return nil
}

func (v *Visualization) reject(err *EditError) error {
	v.log.Debug("edit rejected", "op", err.Op, "field", err.Field, "error", err.Err)
	return err
}
