package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Algorithm != "two-sum" {
		t.Errorf("expected algorithm two-sum, got %s", cfg.Algorithm)
	}
	if cfg.BaseInterval() != time.Second {
		t.Errorf("expected 1s base interval, got %v", cfg.BaseInterval())
	}
	if cfg.Visualizer.Speed != 1 {
		t.Errorf("expected speed 1, got %v", cfg.Visualizer.Speed)
	}
	if cfg.Visualizer.Interactive {
		t.Error("interactive should default to false")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "algoviz.yaml")
	cfg := DefaultConfig()
	cfg.Algorithm = "lru-cache"
	cfg.Visualizer.Colors = map[string]string{"found": "#00ff00"}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Algorithm != "lru-cache" {
		t.Errorf("expected lru-cache, got %s", loaded.Algorithm)
	}
	if loaded.Visualizer.Colors["found"] != "#00ff00" {
		t.Errorf("colour override lost: %v", loaded.Visualizer.Colors)
	}
	if len(loaded.Data) != 4 {
		t.Errorf("expected 4 data items, got %d", len(loaded.Data))
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("algorithm: bubble-sort\ndata: [3, 1, 2]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseIntervalMs != DefaultBaseIntervalMs {
		t.Errorf("expected default interval, got %d", cfg.BaseIntervalMs)
	}
	if n, _ := cfg.Data[0].AsInt(); n != 3 {
		t.Errorf("expected first item 3, got %v", cfg.Data[0])
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("base_interval_ms: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate_SpeedRange(t *testing.T) {
	tests := []struct {
		speed float64
		ok    bool
	}{
		{1, true},
		{0.01, true},
		{100, true},
		{0, false},
		{1e-12, false},
		{1000, false},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Visualizer.Speed = tt.speed
		err := cfg.Validate()
		if tt.ok && err != nil {
			t.Errorf("speed %v: unexpected error %v", tt.speed, err)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("speed %v: expected ErrInvalidConfig, got %v", tt.speed, err)
		}
	}
}

func TestClone_DoesNotAlias(t *testing.T) {
	cfg := GetPreset("two-sum", "classic")
	clone := cfg.Clone()
	clone.Params["target"] = 1
	if cfg.Params["target"] != 9 {
		t.Errorf("clone aliased params: %v", cfg.Params)
	}
}
