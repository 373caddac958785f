// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for chatfs.
//
// Supports TOML configuration with sensible defaults, environment variable
// overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - BackendConfig: File backend connection settings
//   - StorageConfig: Thread persistence settings
//   - UIConfig: Presentation settings
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CHATFS_*)
//   - ~/.chatfs/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Watch for edits:
//
//	w, _ := config.StartWatcher(path, func(next *config.Config) {
//	    program.Send(configReloadedMsg{cfg: next})
//	})
//	defer w.Close()
package config
