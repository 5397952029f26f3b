package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Boomstam/dronegen/pkg/arm"
)

func TestDefaultPresetValid(t *testing.T) {
	p := Default()
	if err := p.Ranges.Validate(); err != nil {
		t.Fatalf("default ranges invalid: %v", err)
	}
	if p.Arm.Thickness <= 0 {
		t.Error("default arm thickness should be positive")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preset.yaml")

	p := Default()
	p.Name = "racing"
	p.Ranges.RotorCounts = []int{4}
	p.Ranges.BladeLength.Max = 0.6
	p.Arm.Shape = arm.Rectangular
	p.Logging.Level = "debug"

	if err := p.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != "racing" {
		t.Errorf("name = %q, want racing", got.Name)
	}
	if len(got.Ranges.RotorCounts) != 1 || got.Ranges.RotorCounts[0] != 4 {
		t.Errorf("rotor counts = %v, want [4]", got.Ranges.RotorCounts)
	}
	if got.Ranges.BladeLength.Max != 0.6 {
		t.Errorf("blade length max = %v, want 0.6", got.Ranges.BladeLength.Max)
	}
	if got.Arm.Shape != arm.Rectangular {
		t.Errorf("arm shape = %v, want rectangular", got.Arm.Shape)
	}
	if got.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", got.Logging.Level)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")

	data := "name: sparse\nlogging:\n  level: warn\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != "sparse" || got.Logging.Level != "warn" {
		t.Errorf("explicit fields not applied: %+v", got)
	}
	// Unspecified sections fall back to defaults.
	def := Default()
	if got.Ranges.BladeLength != def.Ranges.BladeLength {
		t.Errorf("blade length = %+v, want default %+v", got.Ranges.BladeLength, def.Ranges.BladeLength)
	}
	if got.Arm.Thickness != def.Arm.Thickness {
		t.Errorf("arm thickness = %v, want default %v", got.Arm.Thickness, def.Arm.Thickness)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/preset.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadRejectsInvalidRanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")

	data := "ranges:\n  rotorCounts: [5]\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for rotor count 5")
	}
}
