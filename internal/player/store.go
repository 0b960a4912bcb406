package player

import (
	"math"
	"time"

	"github.com/san-kum/algoviz/internal/step"
)

// DefaultBaseInterval is the autoplay delay at speed 1.
const DefaultBaseInterval = time.Second

// Speed multipliers are clamped to [MinSpeed, MaxSpeed].
const (
	MinSpeed = 0.01
	MaxSpeed = 100.0
)

// Variable is one entry of the accumulated variable snapshot.
type Variable struct {
	Name  string
	Value step.Value
}

// Store is the playback state of one visualization.
type Store struct {
	steps  step.Sequence
	source []step.Value
	data   []step.Value

	index   int
	playing bool
	speed   float64

	sets     highlights
	pointers []step.Pointer
	vars     map[string]step.Value
	varOrder []string
}

// New returns an idle store: empty sequence, index 0, paused, speed 1.
func New() *Store {
	s := &Store{speed: 1}
	s.rebuild(0)
	return s
}

// Load replaces both the data array and the sequence and returns to index 0.
func (s *Store) Load(data []step.Value, seq step.Sequence) {
	s.source = step.CloneValues(data)
	s.SetSteps(seq)
}

// SetSteps replaces the sequence wholesale. Playback stops and the derived
// state is rebuilt for index 0.
func (s *Store) SetSteps(seq step.Sequence) {
	s.steps = append(step.Sequence(nil), seq...)
	s.playing = false
	s.rebuild(0)
}

// SetData replaces the source data array and returns to index 0.
func (s *Store) SetData(data []step.Value) {
	s.source = step.CloneValues(data)
	s.playing = false
	s.rebuild(0)
}

// Next advances one step. At the last step it only stops playback.
func (s *Store) Next() {
	if s.index >= len(s.steps)-1 {
		s.playing = false
		return
	}
	s.index++
	s.apply(s.steps[s.index])
}

// Previous moves back one step by replaying the sequence from the start, so
// the derived state matches a forward walk to the new index.
func (s *Store) Previous() {
	if s.index <= 0 {
		return
	}
	s.rebuild(s.index - 1)
}

// Goto jumps to step i. It reports false and leaves the state untouched when
// i is outside [0, Len()-1].
func (s *Store) Goto(i int) bool {
	if i < 0 || i >= len(s.steps) {
		return false
	}
	s.rebuild(i)
	return true
}

// Play sets the playing flag. An empty sequence cannot play; playing from the
// last step restarts from the first.
func (s *Store) Play() {
	if len(s.steps) == 0 {
		return
	}
	if s.IsAtEnd() {
		s.Reset()
	}
	s.playing = true
}

func (s *Store) Pause() { s.playing = false }

// Toggle pauses a playing store and plays a paused one.
func (s *Store) Toggle() {
	if s.playing {
		s.Pause()
		return
	}
	s.Play()
}

// Reset returns to index 0 and stops playback. The sequence is kept.
func (s *Store) Reset() {
	s.playing = false
	s.rebuild(0)
}

// SetSpeed stores a positive speed multiplier, clamped to the supported
// range. Other values are ignored.
func (s *Store) SetSpeed(speed float64) {
	if speed > 0 {
		s.speed = min(max(speed, MinSpeed), MaxSpeed)
	}
}

// Interval is the autoplay delay for the current speed. It saturates rather
// than overflowing for very large bases.
func (s *Store) Interval(base time.Duration) time.Duration {
	d := float64(base) / s.speed
	if d >= math.MaxInt64 {
		return math.MaxInt64
	}
	return time.Duration(d)
}

func (s *Store) Index() int           { return s.index }
func (s *Store) Len() int             { return len(s.steps) }
func (s *Store) IsPlaying() bool      { return s.playing }
func (s *Store) Speed() float64       { return s.speed }
func (s *Store) IsAtStart() bool      { return s.index == 0 }
func (s *Store) Steps() step.Sequence { return s.steps }

// IsAtEnd is true at the last step and for an empty sequence.
func (s *Store) IsAtEnd() bool { return s.index >= len(s.steps)-1 }

// Current returns the step at the cursor.
func (s *Store) Current() (step.Step, bool) {
	if len(s.steps) == 0 {
		return step.Step{}, false
	}
	return s.steps[s.index], true
}

// Data returns a copy of the data snapshot.
func (s *Store) Data() []step.Value { return step.CloneValues(s.data) }

func (s *Store) Pointers() []step.Pointer {
	return append([]step.Pointer(nil), s.pointers...)
}

// PointerAt returns the first pointer referencing index i.
func (s *Store) PointerAt(i int) (step.Pointer, bool) {
	for _, p := range s.pointers {
		if p.Index == i {
			return p, true
		}
	}
	return step.Pointer{}, false
}

// Variables returns the accumulated snapshot in first-seen order.
func (s *Store) Variables() []Variable {
	out := make([]Variable, 0, len(s.varOrder))
	for _, name := range s.varOrder {
		out = append(out, Variable{Name: name, Value: s.vars[name]})
	}
	return out
}

// Variable looks up one accumulated variable.
func (s *Store) Variable(name string) (step.Value, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Indices returns the members of the set for role r in ascending order.
func (s *Store) Indices(r step.Role) []int {
	set, ok := s.sets[r]
	if !ok {
		return nil
	}
	return set.Sorted()
}

// ElementState resolves the single visual state of index i by priority:
// found, target, sorted, swapping, comparing, active, default.
func (s *Store) ElementState(i int) step.Role { return s.sets.resolve(i) }

// rebuild clears the derived state and folds steps 0..target over the source
// data. The playing flag is left to the caller.
func (s *Store) rebuild(target int) {
	s.index = 0
	s.sets = newHighlights()
	s.pointers = nil
	s.vars = make(map[string]step.Value)
	s.varOrder = nil
	s.data = step.CloneValues(s.source)
	if len(s.steps) == 0 {
		return
	}
	s.apply(s.steps[0])
	for s.index < target {
		s.index++
		s.apply(s.steps[s.index])
	}
}

func (s *Store) apply(st step.Step) {
	s.sets.apply(st)

	switch st.Kind {
	case step.KindSwap:
		if len(st.Indices) == 2 {
			i, j := st.Indices[0], st.Indices[1]
			if s.inRange(i) && s.inRange(j) {
				s.data[i], s.data[j] = s.data[j], s.data[i]
			}
		}
	case step.KindSetValue:
		if st.Value != nil && len(st.Indices) > 0 && s.inRange(st.Indices[0]) {
			s.data[st.Indices[0]] = *st.Value
		}
	}

	if len(st.Pointers) > 0 {
		s.pointers = append([]step.Pointer(nil), st.Pointers...)
	}

	for _, name := range st.VarNames() {
		if _, seen := s.vars[name]; !seen {
			s.varOrder = append(s.varOrder, name)
		}
		s.vars[name] = st.Variables[name]
	}
}

func (s *Store) inRange(i int) bool { return i >= 0 && i < len(s.data) }
