// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides thread persistence for the chatfs TUI.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/chatfs/chatfs-tui/internal/model"
)

// =============================================================================
// SCHEMA
// =============================================================================

// SchemaVersion tracks the database schema version for migrations.
const SchemaVersion = 1

const schema = `
-- Metadata table for schema version
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

-- Threads table: one row per chat thread
CREATE TABLE IF NOT EXISTS threads (
    row_id TEXT PRIMARY KEY,
    thread_id TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    model TEXT NOT NULL,
    last_message TEXT,
    created_at INTEGER NOT NULL,  -- Unix timestamp
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_threads_updated ON threads(updated_at);

-- Messages table: ordered messages within a thread
CREATE TABLE IF NOT EXISTS messages (
    row_id TEXT PRIMARY KEY,
    thread_id TEXT NOT NULL,
    message_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    role TEXT NOT NULL,           -- "user" or "assistant"
    content TEXT NOT NULL,
    reactions TEXT,               -- JSON: emoji -> [user ids]
    timestamp INTEGER NOT NULL,
    FOREIGN KEY(thread_id) REFERENCES threads(thread_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_messages_thread ON messages(thread_id, position);
`

const initMetadata = `
INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', '1');
INSERT OR IGNORE INTO metadata (key, value) VALUES ('created_at', strftime('%s', 'now'));
`

// =============================================================================
// THREAD STORE
// =============================================================================

// ThreadMeta contains metadata for listing saved threads.
type ThreadMeta struct {
	ID           string
	Title        string
	Model        string
	LastMessage  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	MessageCount int
}

// ThreadStore persists threads in a local SQLite database.
type ThreadStore struct {
	db *sql.DB

	// MaxThreads limits stored threads (0 = unlimited)
	MaxThreads int
}

// Open opens (or creates) the thread database at path.
func Open(path string) (*ThreadStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open thread database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := db.Exec(initMetadata); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init metadata: %w", err)
	}

	return &ThreadStore{db: db, MaxThreads: 100}, nil
}

// Close closes the database.
func (s *ThreadStore) Close() error {
	return s.db.Close()
}

// =============================================================================
// SAVE OPERATIONS
// =============================================================================

// Save persists a thread and all its settled messages, replacing any
// previous snapshot of the same thread. Messages still streaming are
// skipped: a partial response is never worth persisting.
func (s *ThreadStore) Save(th *model.Thread) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO threads (row_id, thread_id, title, model, last_message, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(thread_id) DO UPDATE SET
			title = excluded.title,
			model = excluded.model,
			last_message = excluded.last_message,
			updated_at = excluded.updated_at
	`, uuid.NewString(), th.ID, th.Title, th.Model.String(), th.LastMessage,
		th.CreatedAt.Unix(), th.UpdatedAt.Unix())
	if err != nil {
		return err
	}

	// Replace the message rows wholesale; snapshots are small.
	if _, err := tx.Exec("DELETE FROM messages WHERE thread_id = ?", th.ID); err != nil {
		return err
	}

	pos := 0
	for _, msg := range th.Messages {
		if msg.IsStreaming {
			continue
		}
		reactions, err := encodeReactions(msg.Reactions)
		if err != nil {
			return err
		}
		_, err = tx.Exec(`
			INSERT INTO messages (row_id, thread_id, message_id, position, role, content, reactions, timestamp)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.NewString(), th.ID, msg.ID, pos, string(msg.Role), msg.Content,
			reactions, msg.Timestamp.Unix())
		if err != nil {
			return err
		}
		pos++
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	if s.MaxThreads > 0 {
		s.enforceLimit()
	}
	return nil
}

// enforceLimit deletes the oldest threads when over the limit.
func (s *ThreadStore) enforceLimit() {
	s.db.Exec(`
		DELETE FROM threads WHERE thread_id IN (
			SELECT thread_id FROM threads
			ORDER BY updated_at DESC
			LIMIT -1 OFFSET ?
		)
	`, s.MaxThreads)
}

// =============================================================================
// LOAD OPERATIONS
// =============================================================================

// Load retrieves a thread by ID.
func (s *ThreadStore) Load(id string) (*model.Thread, error) {
	row := s.db.QueryRow(`
		SELECT thread_id, title, model, last_message, created_at, updated_at
		FROM threads WHERE thread_id = ?
	`, id)

	th, err := scanThread(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrThreadNotFound
		}
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT message_id, role, content, reactions, timestamp
		FROM messages WHERE thread_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			msgID, role, content string
			reactions            sql.NullString
			ts                   int64
		)
		if err := rows.Scan(&msgID, &role, &content, &reactions, &ts); err != nil {
			return nil, err
		}
		msg := &model.Message{
			ID:        msgID,
			Role:      model.Role(role),
			Content:   content,
			Timestamp: time.Unix(ts, 0),
		}
		if reactions.Valid && reactions.String != "" {
			decoded, err := decodeReactions(reactions.String)
			if err != nil {
				return nil, err
			}
			msg.Reactions = decoded
		}
		th.Messages = append(th.Messages, msg)
	}
	return th, rows.Err()
}

// LoadAll retrieves every saved thread, most recently updated first.
// Used to seed the in-memory store at startup.
func (s *ThreadStore) LoadAll() ([]*model.Thread, error) {
	metas, err := s.List()
	if err != nil {
		return nil, err
	}

	threads := make([]*model.Thread, 0, len(metas))
	for _, meta := range metas {
		th, err := s.Load(meta.ID)
		if err != nil {
			continue // Skip rows deleted between List and Load
		}
		threads = append(threads, th)
	}
	return threads, nil
}

// scanThread builds a Thread from a threads-table row.
func scanThread(row *sql.Row) (*model.Thread, error) {
	var (
		id, title, modelName string
		lastMessage          sql.NullString
		createdAt, updatedAt int64
	)
	if err := row.Scan(&id, &title, &modelName, &lastMessage, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	modelID, _ := model.ParseModelID(modelName)
	return &model.Thread{
		ID:          id,
		Title:       title,
		Model:       modelID,
		LastMessage: lastMessage.String,
		CreatedAt:   time.Unix(createdAt, 0),
		UpdatedAt:   time.Unix(updatedAt, 0),
	}, nil
}

// =============================================================================
// LIST OPERATIONS
// =============================================================================

// List returns metadata for all saved threads (most recent first).
func (s *ThreadStore) List() ([]ThreadMeta, error) {
	rows, err := s.db.Query(`
		SELECT t.thread_id, t.title, t.model, t.last_message, t.created_at, t.updated_at,
		       (SELECT COUNT(*) FROM messages m WHERE m.thread_id = t.thread_id)
		FROM threads t
		ORDER BY t.updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metas []ThreadMeta
	for rows.Next() {
		var (
			meta                 ThreadMeta
			lastMessage          sql.NullString
			createdAt, updatedAt int64
		)
		if err := rows.Scan(&meta.ID, &meta.Title, &meta.Model, &lastMessage,
			&createdAt, &updatedAt, &meta.MessageCount); err != nil {
			return nil, err
		}
		meta.LastMessage = lastMessage.String
		meta.CreatedAt = time.Unix(createdAt, 0)
		meta.UpdatedAt = time.Unix(updatedAt, 0)
		metas = append(metas, meta)
	}
	return metas, rows.Err()
}

// Search finds threads whose title or message content matches the query
// string (case-insensitive).
func (s *ThreadStore) Search(query string) ([]ThreadMeta, error) {
	if query == "" {
		return s.List()
	}

	all, err := s.List()
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(query)
	var results []ThreadMeta
	for _, meta := range all {
		if strings.Contains(strings.ToLower(meta.Title), query) ||
			strings.Contains(strings.ToLower(meta.LastMessage), query) {
			results = append(results, meta)
			continue
		}

		var n int
		err := s.db.QueryRow(`
			SELECT COUNT(*) FROM messages
			WHERE thread_id = ? AND LOWER(content) LIKE ?
		`, meta.ID, "%"+query+"%").Scan(&n)
		if err == nil && n > 0 {
			results = append(results, meta)
		}
	}
	return results, nil
}

// =============================================================================
// DELETE OPERATIONS
// =============================================================================

// Delete removes a thread and its messages.
func (s *ThreadStore) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM threads WHERE thread_id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrThreadNotFound
	}
	return nil
}

// Clear removes all saved threads.
func (s *ThreadStore) Clear() error {
	_, err := s.db.Exec("DELETE FROM threads")
	return err
}

// =============================================================================
// REACTION ENCODING
// =============================================================================

// encodeReactions serializes a reaction map as emoji -> sorted user list.
func encodeReactions(reactions map[string]map[string]struct{}) (string, error) {
	if len(reactions) == 0 {
		return "", nil
	}

	flat := make(map[string][]string, len(reactions))
	for emoji, users := range reactions {
		for userID := range users {
			flat[emoji] = append(flat[emoji], userID)
		}
	}
	data, err := json.Marshal(flat)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeReactions rebuilds the reaction set map from its JSON form.
func decodeReactions(encoded string) (map[string]map[string]struct{}, error) {
	var flat map[string][]string
	if err := json.Unmarshal([]byte(encoded), &flat); err != nil {
		return nil, err
	}

	reactions := make(map[string]map[string]struct{}, len(flat))
	for emoji, users := range flat {
		set := make(map[string]struct{}, len(users))
		for _, userID := range users {
			set[userID] = struct{}{}
		}
		reactions[emoji] = set
	}
	return reactions, nil
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrThreadNotFound is returned when a thread doesn't exist in storage.
// Use errors.Is(err, ErrThreadNotFound) to check for this error.
var ErrThreadNotFound = &StorageError{Message: "thread not found"}

// StorageError represents a storage-related error.
type StorageError struct {
	Message string
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing storage errors.
func (e *StorageError) Is(target error) bool {
	t, ok := target.(*StorageError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}
