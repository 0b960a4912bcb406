package step

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestValue_String(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"int", Int(42), "42"},
		{"negative", Int(-3), "-3"},
		{"text", Text("No solution"), "No solution"},
		{"pair", Pair(0, 1), "[0, 1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValue_JSONRoundTrip(t *testing.T) {
	in := []Value{Int(7), Text("put 1 1"), Pair(2, 3)}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `[7,"put 1 1",[2,3]]` {
		t.Errorf("unexpected encoding %s", b)
	}

	var out []Value
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("item %d: got %v, want %v", i, out[i], in[i])
		}
	}
}

func TestValue_YAMLDecode(t *testing.T) {
	var out []Value
	if err := yaml.Unmarshal([]byte("[5, \"abc\", [1, 4], xyz]"), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []Value{Int(5), Text("abc"), Pair(1, 4), Text("xyz")}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("item %d: got %v, want %v", i, out[i], want[i])
		}
	}
}

func TestToInts(t *testing.T) {
	got, err := ToInts(Ints(1, 2, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 || got[2] != 3 {
		t.Errorf("ToInts = %v", got)
	}

	if _, err := ToInts([]Value{Int(1), Text("x")}); err == nil {
		t.Error("expected error for text item")
	}
}

func TestStep_EffectiveRole(t *testing.T) {
	tests := []struct {
		name string
		s    Step
		want Role
	}{
		{"compare", Compare("", 0, 1), RoleComparing},
		{"swap", Swap("", 0, 1), RoleSwapping},
		{"found", Found("", 2), RoleFound},
		{"sorted mark", Mark("", RoleSorted, 3), RoleSorted},
		{"target mark", Mark("", RoleTarget, 3), RoleTarget},
		{"set value", SetValue("", 1, Int(9)), RoleActive},
		{"custom", Narrate("hello"), RoleDefault},
		{"pointer move", MovePointers("", Pointer{Name: "i"}), RoleDefault},
		{"explicit override", Compare("", 0).WithRole(RoleFound), RoleFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.EffectiveRole(); got != tt.want {
				t.Errorf("EffectiveRole() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStep_WithVarsDoesNotAlias(t *testing.T) {
	base := Narrate("start").WithVars("target", 9)
	next := base.WithVars("current", 2)

	if _, ok := base.Variables["current"]; ok {
		t.Error("WithVars modified the receiver's map")
	}
	if next.Variables["target"] != Int(9) || next.Variables["current"] != Int(2) {
		t.Errorf("unexpected variables %v", next.Variables)
	}
}

func TestStep_KindYAML(t *testing.T) {
	src := "- kind: swap\n  indices: [0, 1]\n  description: swap\n- kind: found\n  indices: [1]\n  description: done\n  variables:\n    result: [0, 1]\n"
	var seq Sequence
	if err := yaml.Unmarshal([]byte(src), &seq); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if seq[0].Kind != KindSwap || seq[1].Kind != KindFound {
		t.Errorf("kinds = %v, %v", seq[0].Kind, seq[1].Kind)
	}
	if seq[1].Variables["result"] != Pair(0, 1) {
		t.Errorf("result = %v", seq[1].Variables["result"])
	}

	if err := yaml.Unmarshal([]byte("- kind: teleport\n"), &seq); err == nil {
		t.Error("expected error for unknown kind")
	}
}
