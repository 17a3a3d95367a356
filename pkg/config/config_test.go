package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Transpile.Mode != ModeModule {
		t.Errorf("expected default mode to be %q, got %q", ModeModule, cfg.Transpile.Mode)
	}
	if !cfg.Diagnostics.Color {
		t.Error("expected diagnostics color to default to true")
	}
	if cfg.Diagnostics.ContextLines != 2 {
		t.Errorf("expected default context_lines to be 2, got %d", cfg.Diagnostics.ContextLines)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestTranspileModeIsValid(t *testing.T) {
	valid := []TranspileMode{ModeModule, ModePrelude, ModeInteractive, ModeScript}
	for _, m := range valid {
		if !m.IsValid() {
			t.Errorf("expected %q to be valid", m)
		}
	}
	if TranspileMode("bogus").IsValid() {
		t.Error("expected an unrecognized mode to be invalid")
	}
}

func TestLoadProjectConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	contents := "[transpile]\nmode = \"script\"\n"
	if err := os.WriteFile(filepath.Join(dir, "koatl.toml"), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned an error: %v", err)
	}
	if cfg.Transpile.Mode != ModeScript {
		t.Errorf("expected project koatl.toml to set mode to %q, got %q", ModeScript, cfg.Transpile.Mode)
	}
}

func TestLoadOverridesTakePrecedence(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	cfg, err := Load(&Config{Transpile: TranspileOptions{Mode: ModeInteractive}})
	if err != nil {
		t.Fatalf("Load returned an error: %v", err)
	}
	if cfg.Transpile.Mode != ModeInteractive {
		t.Errorf("expected override to win, got %q", cfg.Transpile.Mode)
	}
}

func TestValidateRejectsUnknownMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Transpile.Mode = "bogus"
	if err := cfg.Validate(); err == nil {
		t.Error("expected an unknown transpile mode to fail validation")
	}
}
