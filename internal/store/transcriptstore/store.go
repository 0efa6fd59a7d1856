// Package transcriptstore archives completed debates. A Postgres DSN turns
// on durable storage through the pgx stdlib driver; without one the store
// degrades to process memory, which is enough for the single-node service.
package transcriptstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"roundtable/internal/chat"
)

// Record is one archived debate.
type Record struct {
	SessionID string          `json:"session_id"`
	RunID     string          `json:"run_id"`
	UserID    string          `json:"user_id"`
	Messages  []chat.Message  `json:"messages"`
	Artifact  json.RawMessage `json:"artifact"`
	CreatedAt time.Time       `json:"created_at"`
}

type Store struct {
	db *sql.DB

	mu   sync.RWMutex
	byID map[string]Record

	schemaOnce sync.Once
	schemaErr  error
}

// New returns an in-memory store.
func New() *Store {
	return &Store{byID: make(map[string]Record)}
}

// NewPostgres returns a Postgres-backed store.
func NewPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// NewFromEnv picks Postgres when TRANSCRIPT_STORE_PG_DSN is set and
// reachable, memory otherwise.
func NewFromEnv() *Store {
	dsn := strings.TrimSpace(os.Getenv("TRANSCRIPT_STORE_PG_DSN"))
	if dsn == "" {
		return New()
	}
	s, err := NewPostgres(dsn)
	if err != nil {
		return New()
	}
	return s
}

func (s *Store) ensureSchema(ctx context.Context) error {
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS debate_transcripts (
    session_id TEXT PRIMARY KEY,
    run_id     TEXT NOT NULL DEFAULT '',
    user_id    TEXT NOT NULL DEFAULT '',
    messages   JSONB NOT NULL,
    artifact   JSONB,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`)
	})
	return s.schemaErr
}

// Save archives one completed debate, replacing any previous record for
// the same session.
func (s *Store) Save(ctx context.Context, rec Record) error {
	if strings.TrimSpace(rec.SessionID) == "" {
		return fmt.Errorf("transcriptstore: session_id is required")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if s.db == nil {
		s.mu.Lock()
		s.byID[rec.SessionID] = rec
		s.mu.Unlock()
		return nil
	}

	if err := s.ensureSchema(ctx); err != nil {
		return fmt.Errorf("transcriptstore schema: %w", err)
	}
	messages, err := json.Marshal(rec.Messages)
	if err != nil {
		return fmt.Errorf("transcriptstore encode: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO debate_transcripts (session_id, run_id, user_id, messages, artifact, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (session_id) DO UPDATE
SET run_id = EXCLUDED.run_id,
    user_id = EXCLUDED.user_id,
    messages = EXCLUDED.messages,
    artifact = EXCLUDED.artifact,
    created_at = EXCLUDED.created_at`,
		rec.SessionID, rec.RunID, rec.UserID, messages, []byte(rec.Artifact), rec.CreatedAt)
	return err
}

// Get loads one archived debate by session ID.
func (s *Store) Get(ctx context.Context, sessionID string) (Record, bool, error) {
	sessionID = strings.TrimSpace(sessionID)
	if s.db == nil {
		s.mu.RLock()
		rec, ok := s.byID[sessionID]
		s.mu.RUnlock()
		return rec, ok, nil
	}

	if err := s.ensureSchema(ctx); err != nil {
		return Record{}, false, err
	}
	var (
		rec      Record
		messages []byte
		artifact []byte
	)
	row := s.db.QueryRowContext(ctx, `
SELECT session_id, run_id, user_id, messages, artifact, created_at
FROM debate_transcripts WHERE session_id = $1`, sessionID)
	err := row.Scan(&rec.SessionID, &rec.RunID, &rec.UserID, &messages, &artifact, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	if err := json.Unmarshal(messages, &rec.Messages); err != nil {
		return Record{}, false, fmt.Errorf("transcriptstore decode: %w", err)
	}
	rec.Artifact = json.RawMessage(artifact)
	return rec, true, nil
}

// Close releases the database handle when one is held.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
