package step

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ValueKind discriminates the variants of a Value.
type ValueKind int

const (
	IntValue ValueKind = iota
	TextValue
	PairValue
)

var errBadValue = errors.New("step: value must be an integer, a string or a pair of integers")

// Value is a data item or variable snapshot.
type Value struct {
	kind ValueKind
	i    int
	s    string
	pair [2]int
}

func Int(n int) Value           { return Value{kind: IntValue, i: n} }
func Text(s string) Value       { return Value{kind: TextValue, s: s} }
func Pair(a, b int) Value       { return Value{kind: PairValue, pair: [2]int{a, b}} }
func (v Value) Kind() ValueKind { return v.kind }

// AsInt reports the integer held by v.
func (v Value) AsInt() (int, bool) {
	if v.kind != IntValue {
		return 0, false
	}
	return v.i, true
}

func (v Value) AsText() (string, bool) {
	if v.kind != TextValue {
		return "", false
	}
	return v.s, true
}

func (v Value) AsPair() (int, int, bool) {
	if v.kind != PairValue {
		return 0, 0, false
	}
	return v.pair[0], v.pair[1], true
}

func (v Value) String() string {
	switch v.kind {
	case TextValue:
		return v.s
	case PairValue:
		return fmt.Sprintf("[%d, %d]", v.pair[0], v.pair[1])
	default:
		return strconv.Itoa(v.i)
	}
}

// Ints builds a data array of integer values.
func Ints(ns ...int) []Value {
	out := make([]Value, len(ns))
	for i, n := range ns {
		out[i] = Int(n)
	}
	return out
}

// Texts builds a data array of text values.
func Texts(ss ...string) []Value {
	out := make([]Value, len(ss))
	for i, s := range ss {
		out[i] = Text(s)
	}
	return out
}

// ToInts extracts integers from data. It fails on the first non-integer item.
func ToInts(data []Value) ([]int, error) {
	out := make([]int, len(data))
	for i, v := range data {
		n, ok := v.AsInt()
		if !ok {
			return nil, fmt.Errorf("step: item %d (%q) is not a number", i, v.String())
		}
		out[i] = n
	}
	return out, nil
}

// CloneValues copies a data array.
func CloneValues(data []Value) []Value {
	if data == nil {
		return nil
	}
	out := make([]Value, len(data))
	copy(out, data)
	return out
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case TextValue:
		return json.Marshal(v.s)
	case PairValue:
		return json.Marshal(v.pair[:])
	default:
		return json.Marshal(v.i)
	}
}

func (v *Value) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*v = Int(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = Text(s)
		return nil
	}
	var p []int
	if err := json.Unmarshal(b, &p); err == nil && len(p) == 2 {
		*v = Pair(p[0], p[1])
		return nil
	}
	return errBadValue
}

func (v Value) MarshalYAML() (interface{}, error) {
	switch v.kind {
	case TextValue:
		return v.s, nil
	case PairValue:
		return []int{v.pair[0], v.pair[1]}, nil
	default:
		return v.i, nil
	}
}

func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!int" {
			var n int
			if err := node.Decode(&n); err != nil {
				return err
			}
			*v = Int(n)
			return nil
		}
		*v = Text(node.Value)
		return nil
	case yaml.SequenceNode:
		var p []int
		if err := node.Decode(&p); err != nil || len(p) != 2 {
			return errBadValue
		}
		*v = Pair(p[0], p[1])
		return nil
	}
	return errBadValue
}
