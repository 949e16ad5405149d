package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points HOME and the working directory at empty temp dirs so the
// search order only finds what the test writes.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home, work = t.TempDir(), t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func TestEmbeddedDefaultsMatchDefault(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, Default())
	}
}

func TestLoadCustomPathOverridesKeys(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := "log:\n  level: debug\nreplay:\n  speed: fast\nssh:\n  idle_timeout: 90s\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, expected debug", cfg.Log.Level)
	}
	if cfg.Replay.StepInterval() != 150*time.Millisecond {
		t.Errorf("StepInterval() = %v, expected 150ms", cfg.Replay.StepInterval())
	}
	if cfg.SSH.IdleTimeout != 90*time.Second {
		t.Errorf("SSH.IdleTimeout = %v, expected 90s", cfg.SSH.IdleTimeout)
	}
	// Untouched keys keep their defaults
	if cfg.SSH.Address != Default().SSH.Address {
		t.Errorf("SSH.Address = %q, expected default", cfg.SSH.Address)
	}
	if !cfg.Log.Timestamps {
		t.Error("Log.Timestamps should keep its default")
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for a missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("log: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected error for malformed YAML")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("replay:\n  speed: warp\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); err == nil {
		t.Error("expected error for an unknown replay speed")
	}
}

func TestSearchOrder(t *testing.T) {
	home, work := isolate(t)

	local := filepath.Join(work, "configs")
	if err := os.MkdirAll(local, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(local, "minemarker.yaml"), []byte("scenarios:\n  dir: ./local\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Scenarios.Dir != "./local" {
		t.Errorf("Scenarios.Dir = %q, expected ./local", cfg.Scenarios.Dir)
	}

	user := filepath.Join(home, ".minemarker")
	if err := os.MkdirAll(user, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(user, "config.yaml"), []byte("scenarios:\n  dir: ~/scenarios\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Scenarios.Dir != "~/scenarios" {
		t.Errorf("Scenarios.Dir = %q, expected the user config to win", cfg.Scenarios.Dir)
	}
}

func TestStepInterval(t *testing.T) {
	tests := []struct {
		name     string
		replay   ReplayConfig
		expected time.Duration
	}{
		{"slow", ReplayConfig{Speed: SpeedSlow}, time.Second},
		{"normal", ReplayConfig{Speed: SpeedNormal}, 500 * time.Millisecond},
		{"fast", ReplayConfig{Speed: SpeedFast}, 150 * time.Millisecond},
		{"explicit interval wins", ReplayConfig{Speed: SpeedSlow, Interval: 42 * time.Millisecond}, 42 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.replay.StepInterval(); got != tt.expected {
				t.Errorf("StepInterval() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestParseSpeed(t *testing.T) {
	for _, s := range []string{"slow", "Normal", " fast "} {
		if _, err := ParseSpeed(s); err != nil {
			t.Errorf("ParseSpeed(%q) failed: %v", s, err)
		}
	}
	if _, err := ParseSpeed("ludicrous"); err == nil {
		t.Error("ParseSpeed(ludicrous) should fail")
	}
}

func TestExpandHome(t *testing.T) {
	home, _ := isolate(t)

	got, err := ExpandHome("~/.minemarker/results.db")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	if got != filepath.Join(home, ".minemarker", "results.db") {
		t.Errorf("ExpandHome() = %q", got)
	}

	if got, _ := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute path changed to %q", got)
	}
}
