package config

import "testing"

func TestWithDefaultsFillsOutputDir(t *testing.T) {
	o := Options{}.WithDefaults()
	if o.OutputDir != DefaultOutputDir {
		t.Errorf("got %q, want %q", o.OutputDir, DefaultOutputDir)
	}
}

func TestWithDefaultsPreservesExplicitOutputDir(t *testing.T) {
	o := Options{OutputDir: "build"}.WithDefaults()
	if o.OutputDir != "build" {
		t.Errorf("got %q, want build", o.OutputDir)
	}
}

func TestWithDefaultsPreservesDebugAndInteractive(t *testing.T) {
	o := Options{Debug: true, Interactive: true}.WithDefaults()
	if !o.Debug || !o.Interactive {
		t.Error("expected Debug and Interactive to survive WithDefaults")
	}
}
