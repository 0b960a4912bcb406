package config

import "testing"

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("two-sum", "classic")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Params["target"] != 9 {
		t.Errorf("expected target 9, got %v", cfg.Params["target"])
	}
	if cfg.Algorithm != "two-sum" {
		t.Errorf("expected algorithm two-sum, got %s", cfg.Algorithm)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("two-sum", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "classic"); cfg != nil {
		t.Error("expected nil for nonexistent algorithm")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("lru-cache")
	if len(presets) != 2 || presets[0] != "classic" || presets[1] != "update" {
		t.Errorf("expected [classic update], got %v", presets)
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent algorithm")
	}
}

func TestGetPreset_Fresh(t *testing.T) {
	a := GetPreset("bubble-sort", "random")
	a.Data[0] = a.Data[1]
	b := GetPreset("bubble-sort", "random")
	if n, _ := b.Data[0].AsInt(); n != 5 {
		t.Errorf("preset data was mutated through a previous copy: %v", b.Data)
	}
}
