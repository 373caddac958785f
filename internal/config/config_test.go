// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got: %v", err)
	}
	if cfg.DefaultModel != "gpt-4" {
		t.Errorf("DefaultModel = %q, want gpt-4", cfg.DefaultModel)
	}
	if cfg.Backend.URL != "http://127.0.0.1:8090" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Backend.PollIntervalSecs != 30 {
		t.Errorf("PollIntervalSecs = %d, want 30", cfg.Backend.PollIntervalSecs)
	}
}

func TestSaveAndLoadFromPath_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.DefaultModel = "claude"
	cfg.Backend.PollIntervalSecs = 5
	cfg.UI.CompactMode = true

	if err := SaveFile(cfg, path); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if loaded.DefaultModel != "claude" {
		t.Errorf("DefaultModel = %q, want claude", loaded.DefaultModel)
	}
	if loaded.Backend.PollIntervalSecs != 5 {
		t.Errorf("PollIntervalSecs = %d, want 5", loaded.Backend.PollIntervalSecs)
	}
	if !loaded.UI.CompactMode {
		t.Error("CompactMode should survive the round trip")
	}
}

func TestLoadFromPath_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	partial := "[backend]\nurl = \"http://localhost:9999\"\n"
	if err := os.WriteFile(path, []byte(partial), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Backend.URL != "http://localhost:9999" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.DefaultModel != "gpt-4" {
		t.Errorf("unset fields should default, DefaultModel = %q", cfg.DefaultModel)
	}
	if cfg.Backend.TimeoutSecs != 10 {
		t.Errorf("unset timeout should default, got %d", cfg.Backend.TimeoutSecs)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown model", func(c *Config) { c.DefaultModel = "gpt-7-ultra" }},
		{"bad backend url", func(c *Config) { c.Backend.URL = "not a url" }},
		{"negative timeout", func(c *Config) { c.Backend.TimeoutSecs = -1 }},
		{"negative poll interval", func(c *Config) { c.Backend.PollIntervalSecs = -5 }},
		{"bad theme", func(c *Config) { c.UI.Theme = "solarized" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			var verrs ValidateErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("error type = %T, want ValidateErrors", err)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("CHATFS_MODEL", "perplexity")
	t.Setenv("CHATFS_BACKEND_URL", "http://127.0.0.1:7070")
	t.Setenv("CHATFS_POLL_SECS", "7")
	t.Setenv("CHATFS_THEME", "light")
	t.Setenv("CHATFS_NO_PERSIST", "1")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.DefaultModel != "perplexity" {
		t.Errorf("DefaultModel = %q", cfg.DefaultModel)
	}
	if cfg.Backend.URL != "http://127.0.0.1:7070" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Backend.PollIntervalSecs != 7 {
		t.Errorf("PollIntervalSecs = %d", cfg.Backend.PollIntervalSecs)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q", cfg.UI.Theme)
	}
	if cfg.Storage.Enabled {
		t.Error("CHATFS_NO_PERSIST=1 should disable persistence")
	}
}

func TestApplyEnvOverrides_IgnoresBadPollValue(t *testing.T) {
	t.Setenv("CHATFS_POLL_SECS", "soon")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if cfg.Backend.PollIntervalSecs != 30 {
		t.Errorf("bad CHATFS_POLL_SECS should be ignored, got %d", cfg.Backend.PollIntervalSecs)
	}
}

func TestDBPath_Override(t *testing.T) {
	cfg := Default()
	cfg.Storage.DBPath = "/tmp/custom-threads.db"

	path, err := cfg.DBPath()
	if err != nil {
		t.Fatalf("DBPath: %v", err)
	}
	if path != "/tmp/custom-threads.db" {
		t.Errorf("DBPath = %q", path)
	}
}

func TestPollingWatcher_ReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := SaveFile(Default(), path); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *Config, 1)
	pw := NewPollingWatcher(path, 10*time.Millisecond, func(c *Config) {
		select {
		case reloaded <- c:
		default:
		}
	})
	if err := pw.Watch(); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer pw.Close()

	next := Default()
	next.DefaultModel = "claude"
	if err := SaveFile(next, path); err != nil {
		t.Fatal(err)
	}
	// Force a visible mtime step regardless of filesystem resolution.
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.DefaultModel != "claude" {
			t.Errorf("reloaded DefaultModel = %q, want claude", cfg.DefaultModel)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never reloaded the edited config")
	}
}

func TestPollingWatcher_IgnoresInvalidEdit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := SaveFile(Default(), path); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *Config, 1)
	pw := NewPollingWatcher(path, 10*time.Millisecond, func(c *Config) {
		select {
		case reloaded <- c:
		default:
		}
	})
	if err := pw.Watch(); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer pw.Close()

	if err := os.WriteFile(path, []byte("ui.theme = \"solarized\"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
		t.Fatal("invalid config must not be delivered")
	case <-time.After(300 * time.Millisecond):
		// Settled without a reload.
	}
}
