// chatfs TUI - A terminal chat client over the ChatFS backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/chatfs/chatfs-tui/internal/backend"
	"github.com/chatfs/chatfs-tui/internal/config"
	"github.com/chatfs/chatfs-tui/internal/session"
	"github.com/chatfs/chatfs-tui/internal/storage"
	"github.com/chatfs/chatfs-tui/internal/ui/chat"
	"github.com/chatfs/chatfs-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--version", "-v":
			fmt.Printf("chatfs %s (%s, built %s)\n", Version, GitCommit, BuildDate)
			return
		case "--help", "-h":
			printUsage()
			return
		}
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "chatfs is interactive and needs a terminal")
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client := backend.NewClientWithConfig(&backend.ClientConfig{
		BaseURL: cfg.Backend.URL,
		Timeout: time.Duration(cfg.Backend.TimeoutSecs) * time.Second,
	})
	facade := backend.NewFacade(client)

	ctrl := session.NewController(facade)

	// Thread persistence is optional; a broken database degrades to an
	// in-memory session rather than blocking startup.
	var saver chat.ThreadSaver
	var threadStore *storage.ThreadStore
	if cfg.Storage.Enabled {
		dbPath, err := cfg.DBPath()
		if err == nil {
			threadStore, err = storage.Open(dbPath)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: thread persistence disabled: %v\n", err)
		} else {
			defer threadStore.Close()
			saver = threadStore
			if threads, err := threadStore.LoadAll(); err == nil {
				ctrl.Store().Restore(threads)
			}
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := chat.New(styles.NewTheme(), ctrl, saver)
	m.ApplyConfig(cfg)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Stream events originate on the render goroutine; Program.Send
	// moves them onto the event loop where HandleStreamEvent applies them.
	ctrl.SetSink(func(ev session.StreamEvent) {
		p.Send(chat.StreamEventMsg{Event: ev})
	})

	monitor := backend.NewMonitor(facade, time.Duration(cfg.Backend.PollIntervalSecs)*time.Second)
	monitor.OnChange(func(s backend.Status) {
		p.Send(chat.HealthMsg{Status: s})
	})
	go monitor.Run(ctx)

	if path, err := config.ConfigPath(); err == nil {
		watcher, err := config.StartWatcher(path, func(fresh *config.Config) {
			p.Send(chat.ConfigReloadedMsg{Config: fresh})
		})
		if err == nil {
			defer watcher.Close()
		}
	}

	_, err = p.Run()
	return err
}

func printUsage() {
	fmt.Println(`chatfs - terminal chat over your files

Usage:
  chatfs              Start the chat interface
  chatfs --version    Print version information
  chatfs --help       Show this help

Keys:
  Enter    Send message         Ctrl+N   New chat
  Ctrl+T   Next chat            Ctrl+R   Cycle model
  Ctrl+E   React to message     Ctrl+O   Toggle file previews
  Ctrl+B   Toggle sidebar       Ctrl+Q   Quit

Environment:
  CHATFS_BACKEND_URL  Backend base URL (default http://127.0.0.1:8090)
  CHATFS_MODEL        Default model (gpt-4, claude, perplexity)
  CHATFS_POLL_SECS    Health probe interval in seconds
  CHATFS_NO_PERSIST   Set to 1 to disable thread persistence
  CHATFS_THEME        UI theme (dark, light)

Configuration lives in ~/.chatfs/config.toml.`)
}
