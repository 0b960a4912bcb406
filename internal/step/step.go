package step

import (
	"fmt"
	"sort"
)

// Kind is the tag of a step.
type Kind int

const (
	KindCustom Kind = iota
	KindCompare
	KindSwap
	KindHighlight
	KindPointerMove
	KindSetValue
	KindFound
)

var kindNames = map[Kind]string{
	KindCustom:      "custom",
	KindCompare:     "compare",
	KindSwap:        "swap",
	KindHighlight:   "highlight",
	KindPointerMove: "pointer-move",
	KindSetValue:    "set-value",
	KindFound:       "found",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindCustom, fmt.Errorf("step: unknown kind %q", s)
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Role is the visual state of a data element.
type Role string

const (
	RoleDefault   Role = "default"
	RoleActive    Role = "active"
	RoleComparing Role = "comparing"
	RoleSwapping  Role = "swapping"
	RoleSorted    Role = "sorted"
	RoleTarget    Role = "target"
	RoleFound     Role = "found"
)

// Roles lists the highlight roles in render priority order, highest first.
var Roles = []Role{RoleFound, RoleTarget, RoleSorted, RoleSwapping, RoleComparing, RoleActive}

// Pointer is a named marker drawn above an index.
type Pointer struct {
	Name  string `json:"name" yaml:"name"`
	Index int    `json:"index" yaml:"index"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Step is one moment of an algorithm run. Treat it as a value: producers
// build it once and consumers never modify it.
type Step struct {
	Kind        Kind             `json:"kind" yaml:"kind"`
	Indices     []int            `json:"indices,omitempty" yaml:"indices,omitempty"`
	Pointers    []Pointer        `json:"pointers,omitempty" yaml:"pointers,omitempty"`
	Description string           `json:"description" yaml:"description"`
	Code        string           `json:"code,omitempty" yaml:"code,omitempty"`
	Variables   map[string]Value `json:"variables,omitempty" yaml:"variables,omitempty"`
	Role        Role             `json:"state,omitempty" yaml:"state,omitempty"`
	Value       *Value           `json:"value,omitempty" yaml:"value,omitempty"`
}

// Sequence is the full ordered output of one generator invocation.
type Sequence []Step

func Narrate(desc string) Step { return Step{Kind: KindCustom, Description: desc} }

func Compare(desc string, indices ...int) Step {
	return Step{Kind: KindCompare, Description: desc, Indices: indices}
}

func Swap(desc string, i, j int) Step {
	return Step{Kind: KindSwap, Description: desc, Indices: []int{i, j}}
}

// Mark tags indices with an explicit role. Sorted marks accumulate during
// playback; every other role replaces the previous set.
func Mark(desc string, role Role, indices ...int) Step {
	return Step{Kind: KindHighlight, Description: desc, Indices: indices, Role: role}
}

func Found(desc string, indices ...int) Step {
	return Step{Kind: KindFound, Description: desc, Indices: indices}
}

func MovePointers(desc string, ptrs ...Pointer) Step {
	return Step{Kind: KindPointerMove, Description: desc, Pointers: ptrs}
}

// SetValue writes v into the data array at index.
func SetValue(desc string, index int, v Value) Step {
	return Step{Kind: KindSetValue, Description: desc, Indices: []int{index}, Value: &v}
}

// WithPointers returns a copy of s carrying ptrs.
func (s Step) WithPointers(ptrs ...Pointer) Step {
	s.Pointers = append([]Pointer(nil), ptrs...)
	return s
}

// WithVars returns a copy of s whose variables are extended by kv, given as
// alternating name/value pairs.
func (s Step) WithVars(kv ...any) Step {
	vars := make(map[string]Value, len(s.Variables)+len(kv)/2)
	for k, v := range s.Variables {
		vars[k] = v
	}
	for i := 0; i+1 < len(kv); i += 2 {
		name, ok := kv[i].(string)
		if !ok {
			continue
		}
		vars[name] = toValue(kv[i+1])
	}
	s.Variables = vars
	return s
}

func (s Step) WithCode(code string) Step {
	s.Code = code
	return s
}

// WithRole overrides the role derived from the step kind.
func (s Step) WithRole(r Role) Step {
	s.Role = r
	return s
}

// EffectiveRole is the highlight role applied to Indices during playback.
func (s Step) EffectiveRole() Role {
	if s.Role != "" {
		return s.Role
	}
	switch s.Kind {
	case KindCompare:
		return RoleComparing
	case KindSwap:
		return RoleSwapping
	case KindHighlight, KindSetValue:
		return RoleActive
	case KindFound:
		return RoleFound
	default:
		return RoleDefault
	}
}

// VarNames returns the step's variable names sorted.
func (s Step) VarNames() []string {
	names := make([]string, 0, len(s.Variables))
	for k := range s.Variables {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func toValue(x any) Value {
	switch v := x.(type) {
	case Value:
		return v
	case int:
		return Int(v)
	case string:
		return Text(v)
	case bool:
		return Text(fmt.Sprintf("%t", v))
	case [2]int:
		return Pair(v[0], v[1])
	default:
		return Text(fmt.Sprint(v))
	}
}
