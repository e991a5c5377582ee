package transcache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS transcriptions (
	fingerprint TEXT NOT NULL,
	start_ms INTEGER NOT NULL,
	end_ms INTEGER NOT NULL,
	model TEXT NOT NULL,
	language TEXT NOT NULL,
	task TEXT NOT NULL,
	text TEXT NOT NULL,
	created_at TEXT NOT NULL,
	PRIMARY KEY (fingerprint, start_ms, end_ms, model, language, task)
);`

// Key identifies one per-segment backend call. Language is empty for
// automatic detection; Task distinguishes transcription from translation.
type Key struct {
	Fingerprint string
	Start       float64
	End         float64
	Model       string
	Language    string
	Task        string
}

func (k Key) startMS() int64 { return int64(math.Round(k.Start * 1000)) }
func (k Key) endMS() int64   { return int64(math.Round(k.End * 1000)) }

// Cache persists per-segment transcription results in SQLite so re-runs
// against the same input skip the backend. A file lock guards concurrent
// processes sharing the same cache directory.
type Cache struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

// Open initializes or connects to the cache database under dir.
func Open(dir string) (*Cache, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("transcache: cache dir required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("transcache: ensure cache dir: %w", err)
	}

	lock := flock.New(filepath.Join(dir, "cache.lock"))
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("transcache: acquire lock: %w", err)
	}

	dbPath := filepath.Join(dir, "transcriptions.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("transcache: open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("transcache: apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("transcache: apply schema: %w", err)
	}

	return &Cache{db: db, lock: lock, path: dbPath}, nil
}

// Close releases the database and the cache lock.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	var closeErr error
	if c.db != nil {
		closeErr = c.db.Close()
	}
	if c.lock != nil {
		if err := c.lock.Unlock(); err != nil && closeErr == nil {
			closeErr = err
		}
	}
	return closeErr
}

// Get looks up a cached transcription. The second result is false on miss.
func (c *Cache) Get(ctx context.Context, key Key) (string, bool, error) {
	if c == nil || c.db == nil {
		return "", false, nil
	}
	var text string
	err := c.db.QueryRowContext(ctx,
		`SELECT text FROM transcriptions WHERE fingerprint = ? AND start_ms = ? AND end_ms = ? AND model = ? AND language = ? AND task = ?`,
		key.Fingerprint, key.startMS(), key.endMS(), key.Model, key.Language, key.Task,
	).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("transcache: get: %w", err)
	}
	return text, true, nil
}

// Put stores a transcription result, replacing any previous entry for the
// same key.
func (c *Cache) Put(ctx context.Context, key Key, text string) error {
	if c == nil || c.db == nil {
		return nil
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO transcriptions (fingerprint, start_ms, end_ms, model, language, task, text, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		key.Fingerprint, key.startMS(), key.endMS(), key.Model, key.Language, key.Task, text,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("transcache: put: %w", err)
	}
	return nil
}

// Fingerprint derives a stable identity for an input file from its absolute
// path, size, and modification time. Cheap on purpose; a content hash of a
// multi-gigabyte video would dominate the run.
func Fingerprint(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("transcache: fingerprint: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("transcache: fingerprint: %w", err)
	}
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d", abs, info.Size(), info.ModTime().UnixNano())))
	return hex.EncodeToString(sum[:]), nil
}
