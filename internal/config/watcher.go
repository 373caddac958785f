// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// CONFIG WATCHER INTERFACE
// =============================================================================

// Watcher is the interface for config hot-reload implementations.
type Watcher interface {
	// Watch starts watching for config changes
	Watch() error

	// Close stops watching and releases resources
	Close() error
}

// ReloadFunc receives each successfully reloaded config. Invalid edits
// are ignored so a half-saved file never replaces a working config.
type ReloadFunc func(*Config)

// =============================================================================
// FSNOTIFY WATCHER
// =============================================================================

// FsnotifyWatcher implements Watcher using fsnotify.
type FsnotifyWatcher struct {
	path     string
	onReload ReloadFunc
	watcher  *fsnotify.Watcher
	debounce time.Duration
	mu       sync.Mutex
	pending  time.Time
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewFsnotifyWatcher creates a new fsnotify-based config watcher.
func NewFsnotifyWatcher(path string, debounce time.Duration, onReload ReloadFunc) (*FsnotifyWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &FsnotifyWatcher{
		path:     path,
		onReload: onReload,
		watcher:  watcher,
		debounce: debounce,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Watch starts watching for config changes. The parent directory is
// watched rather than the file itself: editors replace files on save,
// which drops a watch on the old inode.
func (fw *FsnotifyWatcher) Watch() error {
	if err := fw.watcher.Add(filepath.Dir(fw.path)); err != nil {
		return err
	}

	go fw.processEvents()
	go fw.processPending()
	return nil
}

// processEvents records change events for the config file.
func (fw *FsnotifyWatcher) processEvents() {
	for {
		select {
		case <-fw.ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(fw.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				fw.mu.Lock()
				fw.pending = time.Now()
				fw.mu.Unlock()
			}

		case _, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			// Non-fatal; keep watching.
		}
	}
}

// processPending reloads the config once changes settle past the
// debounce window.
func (fw *FsnotifyWatcher) processPending() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-fw.ctx.Done():
			return

		case <-ticker.C:
			fw.mu.Lock()
			ready := !fw.pending.IsZero() && time.Since(fw.pending) >= fw.debounce
			if ready {
				fw.pending = time.Time{}
			}
			fw.mu.Unlock()

			if ready {
				reload(fw.path, fw.onReload)
			}
		}
	}
}

// Close stops watching and releases resources.
func (fw *FsnotifyWatcher) Close() error {
	fw.cancel()
	if fw.watcher != nil {
		return fw.watcher.Close()
	}
	return nil
}

// =============================================================================
// POLLING WATCHER (FALLBACK)
// =============================================================================

// PollingWatcher implements Watcher using periodic mtime polling.
type PollingWatcher struct {
	path     string
	onReload ReloadFunc
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	modTime  time.Time
}

// NewPollingWatcher creates a new polling-based config watcher.
func NewPollingWatcher(path string, interval time.Duration, onReload ReloadFunc) *PollingWatcher {
	ctx, cancel := context.WithCancel(context.Background())

	return &PollingWatcher{
		path:     path,
		onReload: onReload,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Watch starts polling for config changes.
func (pw *PollingWatcher) Watch() error {
	if info, err := os.Stat(pw.path); err == nil {
		pw.modTime = info.ModTime()
	}

	go pw.poll()
	return nil
}

// poll periodically checks the config file's modification time.
func (pw *PollingWatcher) poll() {
	ticker := time.NewTicker(pw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-pw.ctx.Done():
			return

		case <-ticker.C:
			info, err := os.Stat(pw.path)
			if err != nil {
				continue
			}
			if info.ModTime().Equal(pw.modTime) {
				continue
			}
			pw.modTime = info.ModTime()
			reload(pw.path, pw.onReload)
		}
	}
}

// Close stops polling.
func (pw *PollingWatcher) Close() error {
	pw.cancel()
	return nil
}

// =============================================================================
// WATCHER FACTORY
// =============================================================================

// StartWatcher starts a config watcher (fsnotify or polling fallback).
func StartWatcher(path string, onReload ReloadFunc) (Watcher, error) {
	fw, err := NewFsnotifyWatcher(path, 250*time.Millisecond, onReload)
	if err == nil {
		if err := fw.Watch(); err == nil {
			return fw, nil
		}
		fw.Close()
	}

	pw := NewPollingWatcher(path, 5*time.Second, onReload)
	if err := pw.Watch(); err != nil {
		return nil, err
	}
	return pw, nil
}

// reload attempts a full load of path; failures leave the previous
// config in place.
func reload(path string, onReload ReloadFunc) {
	cfg, err := LoadFromPath(path)
	if err != nil {
		return
	}
	if onReload != nil {
		onReload(cfg)
	}
}
