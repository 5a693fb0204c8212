package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	if cfg.Screen.TargetFPS != 60 {
		t.Errorf("expected target_fps 60, got %d", cfg.Screen.TargetFPS)
	}
	if cfg.Rovers.Lifecycle != LifecycleRespawn {
		t.Errorf("expected respawn lifecycle, got %q", cfg.Rovers.Lifecycle)
	}
	if cfg.Colors.Bright.HueMin != 90 || cfg.Colors.Dark.ValMax != 0.2 {
		t.Errorf("unexpected color ranges: %+v", cfg.Colors)
	}
	if cfg.Derived.Generators != cfg.Points.Count+cfg.Rovers.Count {
		t.Errorf("derived generators %d", cfg.Derived.Generators)
	}
	if cfg.Derived.StatsWindowTicks != 300 {
		t.Errorf("expected 300 stats ticks, got %d", cfg.Derived.StatsWindowTicks)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rovers.yaml")
	overlay := []byte("rovers:\n  count: 3\n  lifecycle: dynamic\ngovernor:\n  cutoff_fps: 5\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading overlay: %v", err)
	}
	if cfg.Rovers.Count != 3 || cfg.Rovers.Lifecycle != LifecycleDynamic {
		t.Errorf("overlay not applied: %+v", cfg.Rovers)
	}
	if cfg.Rovers.MaxSpeed != 120 {
		t.Errorf("fields absent from overlay should keep defaults, max_speed=%g", cfg.Rovers.MaxSpeed)
	}
	if cfg.Governor.CutoffFPS != 5 || cfg.Governor.CutoffMinFrames != 30 {
		t.Errorf("unexpected governor: %+v", cfg.Governor)
	}
}

func TestLoadRejectsNonFinite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rovers.yaml")
	overlay := []byte("rovers:\n  min_speed: .nan\ngovernor:\n  cutoff_fps: .nan\narena:\n  clip_distance: .inf\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v (config %+v)", err, cfg)
	}
	if cfg != nil {
		t.Error("no config should be returned on error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero min frames", func(c *Config) { c.Governor.CutoffMinFrames = 0 }, "governor.cutoff_min_frames"},
		{"zero cutoff", func(c *Config) { c.Governor.CutoffFPS = 0 }, "governor.cutoff_fps"},
		{"speed inverted", func(c *Config) { c.Rovers.MinSpeed, c.Rovers.MaxSpeed = 50, 10 }, "rovers.max_speed"},
		{"negative speed", func(c *Config) { c.Rovers.MinSpeed = -1 }, "rovers.min_speed"},
		{"zero fps", func(c *Config) { c.Screen.TargetFPS = 0 }, "screen.target_fps"},
		{"zero width", func(c *Config) { c.Screen.Width = 0 }, "screen.width"},
		{"negative clip", func(c *Config) { c.Arena.ClipDistance = -1 }, "arena.clip_distance"},
		{"negative points", func(c *Config) { c.Points.Count = -2 }, "points.count"},
		{"unknown lifecycle", func(c *Config) { c.Rovers.Lifecycle = "teleport" }, "rovers.lifecycle"},
		{"dynamic without interval", func(c *Config) {
			c.Rovers.Lifecycle = LifecycleDynamic
			c.Rovers.MeanSpawnInterval = 0
		}, "rovers.mean_spawn_interval"},
		{"unknown backend", func(c *Config) { c.Render.Backend = "svg" }, "render.backend"},
		{"hue out of range", func(c *Config) { c.Colors.Bright.HueMax = 400 }, "colors.bright"},
		{"dark inverted", func(c *Config) { c.Colors.Dark.ValMin = 0.5 }, "colors.dark"},
		{"nan min speed", func(c *Config) { c.Rovers.MinSpeed = math.NaN() }, "rovers.min_speed"},
		{"infinite max speed", func(c *Config) { c.Rovers.MaxSpeed = math.Inf(1) }, "rovers.max_speed"},
		{"nan cutoff", func(c *Config) { c.Governor.CutoffFPS = math.NaN() }, "governor.cutoff_fps"},
		{"nan clip", func(c *Config) { c.Arena.ClipDistance = math.NaN() }, "arena.clip_distance"},
		{"nan stats window", func(c *Config) { c.Telemetry.StatsWindow = math.NaN() }, "telemetry.stats_window"},
		{"nan spawn interval", func(c *Config) {
			c.Rovers.Lifecycle = LifecycleDynamic
			c.Rovers.MeanSpawnInterval = math.NaN()
		}, "rovers.mean_spawn_interval"},
		{"nan hue", func(c *Config) { c.Colors.Bright.HueMin = math.NaN() }, "colors.bright"},
		{"infinite dark value", func(c *Config) { c.Colors.Dark.ValMax = math.Inf(1) }, "colors.dark"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("error %v does not match ErrInvalid", err)
			}
			var cerr *Error
			if !errors.As(err, &cerr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if cerr.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, cerr.Field)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Rovers.Count = 7
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatal(err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.Rovers.Count != 7 {
		t.Errorf("expected 7 rovers after reload, got %d", back.Rovers.Count)
	}
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Cfg()
}
