package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/san-kum/algoviz/internal/step"
)

// ParamType is the declared type of a parameter or data item.
type ParamType string

const (
	Number ParamType = "number"
	String ParamType = "string"
)

// ParamSpec declares one editable parameter.
type ParamSpec struct {
	Name    string    `json:"name" yaml:"name"`
	Label   string    `json:"label" yaml:"label"`
	Type    ParamType `json:"type" yaml:"type"`
	Default any       `json:"default" yaml:"default"`
}

// Parse converts raw editor text into a value of the declared type.
func (p ParamSpec) Parse(raw string) (any, error) {
	if p.Type != Number {
		return raw, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number, got %q", ErrInvalidParam, p.Name, raw)
	}
	return n, nil
}

// Params is the loose parameter bag handed to a generator.
type Params map[string]any

// Decode copies the bag into out, a pointer to a struct whose fields carry
// `param` tags. Numeric strings are accepted for numeric fields.
func (p Params) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "param",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(map[string]any(p)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParam, err)
	}
	return nil
}

// Clone copies the bag.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Func is the step generator contract. It must be pure and deterministic,
// must not modify data, and must return at least one step.
type Func func(data []step.Value, params Params) step.Sequence

// Algorithm is a registered generator plus its input schema.
type Algorithm struct {
	Name    string
	Title   string
	Summary string
	// Data is the element type of the data array.
	Data   ParamType
	Params []ParamSpec
	// Table, when set, derives the data array from the parameters. Such
	// algorithms ignore edits to the data array.
	Table func(Params) []step.Value
	// Generate resolves params against the schema before running, so missing
	// values take their defaults.
	Generate Func
}

// Defaults returns the schema's default parameter values.
func (a Algorithm) Defaults() Params {
	out := make(Params, len(a.Params))
	for _, p := range a.Params {
		out[p.Name] = p.Default
	}
	return out
}

// Param looks up a parameter spec by name.
func (a Algorithm) Param(name string) (ParamSpec, bool) {
	for _, p := range a.Params {
		if p.Name == name {
			return p, true
		}
	}
	return ParamSpec{}, false
}

// Resolve fills missing parameters with their defaults and checks numeric
// ones. Unknown names are rejected.
func (a Algorithm) Resolve(params Params) (Params, error) {
	out := a.Defaults()
	for k, v := range params {
		spec, ok := a.Param(k)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no parameter %q", ErrInvalidParam, a.Name, k)
		}
		if spec.Type == Number {
			n, err := toInt(v)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidParam, k, err)
			}
			v = n
		}
		out[k] = v
	}
	return out, nil
}

// Input returns the data array the generator runs over: the Table when the
// algorithm has one, data otherwise.
func (a Algorithm) Input(data []step.Value, params Params) []step.Value {
	if a.Table != nil {
		return a.Table(params)
	}
	return data
}

// Run validates the inputs and invokes the generator. It returns the data
// array the sequence refers to along with the sequence.
func (a Algorithm) Run(data []step.Value, params Params) ([]step.Value, step.Sequence, error) {
	resolved, err := a.Resolve(params)
	if err != nil {
		return nil, nil, err
	}
	input := a.Input(data, resolved)
	if a.Table == nil && a.Data == Number {
		if _, err := step.ToInts(input); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
	}
	return step.CloneValues(input), a.Generate(step.CloneValues(input), resolved), nil
}

// checked wraps Generate and Table so they resolve params against the schema
// before decoding. A bag that does not resolve yields a single step naming
// the problem; Table falls back to the defaults.
func checked(a Algorithm) Algorithm {
	generate, table := a.Generate, a.Table
	schema := Algorithm{Name: a.Name, Params: a.Params}

	a.Generate = func(data []step.Value, params Params) step.Sequence {
		resolved, err := schema.Resolve(params)
		if err != nil {
			return step.Sequence{step.Narrate(fmt.Sprintf("Cannot run %s: %v", a.Name, err)).
				WithVars("error", err.Error())}
		}
		return generate(data, resolved)
	}
	if table != nil {
		a.Table = func(params Params) []step.Value {
			resolved, err := schema.Resolve(params)
			if err != nil {
				resolved = schema.Defaults()
			}
			return table(resolved)
		}
	}
	return a
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("%v is not an integer", n)
		}
		return int(n), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(n))
	default:
		return 0, fmt.Errorf("%v is not a number", v)
	}
}

func ints(data []step.Value) []int {
	out, err := step.ToInts(data)
	if err != nil {
		return nil
	}
	return out
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
