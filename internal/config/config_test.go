package config_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/haldorsen/sinisterwar/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("non-existent file", func(t *testing.T) {
		cfg, err := config.Load("non-existent-file.json", false)
		if err != nil {
			t.Errorf("expected no error for non-existent file, got %v", err)
		}
		if cfg == nil {
			t.Errorf("expected non-nil config")
		}
		if cfg.Grid.Width != 8 || cfg.Grid.Height != 8 {
			t.Errorf("expected default grid 8x8, got %dx%d", cfg.Grid.Width, cfg.Grid.Height)
		}
	})

	t.Run("directory error", func(t *testing.T) {
		tmpDir := t.TempDir()
		_, err := config.Load(tmpDir, false)
		if err == nil {
			t.Errorf("expected error for directory, got nil")
		}
	})

	t.Run("empty config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.json")

		if err := os.WriteFile(configFile, []byte("{}"), 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		cfg, err := config.Load(configFile, false)
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		if cfg.Pacing.Rounds != 10 {
			t.Errorf("expected default rounds 10, got %d", cfg.Pacing.Rounds)
		}
	})

	t.Run("partial config", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.json")

		testConfig := config.Config{
			Grid: config.Grid_t{Width: 16, Height: 4},
		}

		data, err := json.Marshal(testConfig)
		if err != nil {
			t.Fatalf("failed to marshal test config: %v", err)
		}
		if err = os.WriteFile(configFile, data, 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		cfg, err := config.Load(configFile, false)
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		if cfg.Grid.Width != 16 || cfg.Grid.Height != 4 {
			t.Errorf("expected grid 16x4, got %dx%d", cfg.Grid.Width, cfg.Grid.Height)
		}
		// Untouched section should remain default
		if cfg.Pacing.Rounds != 10 {
			t.Errorf("expected Pacing.Rounds to stay at default 10, got %d", cfg.Pacing.Rounds)
		}
	})

	t.Run("full config", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.json")

		testConfig := config.Config{
			DebugFlags: config.DebugFlags_t{Protocol: true},
			Grid:       config.Grid_t{Width: 20, Height: 20},
			Pacing:     config.Pacing_t{Rounds: 50, RoundTimeout: 5},
		}

		data, err := json.Marshal(testConfig)
		if err != nil {
			t.Fatalf("failed to marshal test config: %v", err)
		}
		if err = os.WriteFile(configFile, data, 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		cfg, err := config.Load(configFile, false)
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		if !cfg.DebugFlags.Protocol {
			t.Errorf("expected DebugFlags.Protocol to be true")
		}
		if cfg.Grid.Width != 20 || cfg.Grid.Height != 20 {
			t.Errorf("expected grid 20x20, got %dx%d", cfg.Grid.Width, cfg.Grid.Height)
		}
		if cfg.Pacing.Rounds != 50 || cfg.Pacing.RoundTimeout != 5 {
			t.Errorf("expected pacing 50/5, got %d/%d", cfg.Pacing.Rounds, cfg.Pacing.RoundTimeout)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.json")

		if err := os.WriteFile(configFile, []byte("invalid json"), 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		cfg, err := config.Load(configFile, true)
		if err != nil {
			t.Errorf("expected no error for invalid JSON, got %v", err)
		}
		if cfg.Grid.Width != 8 {
			t.Errorf("expected default grid width for invalid JSON, got %d", cfg.Grid.Width)
		}
	})
}

func TestCopyNonZeroFields(t *testing.T) {
	t.Run("copy only non-zero fields", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.json")

		testConfig := config.Config{
			Grid: config.Grid_t{Width: 12, Height: 12},
		}

		data, err := json.Marshal(testConfig)
		if err != nil {
			t.Fatalf("failed to marshal test config: %v", err)
		}
		if err = os.WriteFile(configFile, data, 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		cfg, err := config.Load(configFile, true)
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}

		if cfg.Grid.Width != 12 || cfg.Grid.Height != 12 {
			t.Errorf("expected grid 12x12, got %dx%d", cfg.Grid.Width, cfg.Grid.Height)
		}
		if cfg.DebugFlags.Protocol != false {
			t.Errorf("expected DebugFlags.Protocol to remain false (default)")
		}
		if cfg.Pacing.Rounds != 10 {
			t.Errorf("expected Pacing.Rounds to remain at default 10, got %d", cfg.Pacing.Rounds)
		}
	})
}
