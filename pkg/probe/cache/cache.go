package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Cache is a TTL cache over a SQLite database. It is safe for concurrent
// use; SQLite serializes writes through the single connection.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
}

// Open creates or opens a cache database at path. Parent directories are
// created as needed.
func Open(path string, ttl time.Duration) (*Cache, error) {
	if path == "" {
		return nil, fmt.Errorf("cache path cannot be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %s", ttl)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	c := &Cache{db: db, ttl: ttl}
	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	return c, nil
}

func (c *Cache) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS responses (
		key TEXT PRIMARY KEY,
		response TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_responses_created_at ON responses(created_at);
	`
	_, err := c.db.Exec(schema)
	return err
}

// Key derives the cache key for a model and prompt pair.
func Key(model, prompt string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + prompt))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached response for key, or ok=false when the entry is
// absent or expired.
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	var response string
	var createdAt int64

	err := c.db.QueryRowContext(ctx,
		`SELECT response, created_at FROM responses WHERE key = ?`, key,
	).Scan(&response, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache lookup failed: %w", err)
	}

	if time.Since(time.Unix(createdAt, 0)) > c.ttl {
		return "", false, nil
	}
	return response, true, nil
}

// Put stores a response, replacing any existing entry for the key.
func (c *Cache) Put(ctx context.Context, key, response string) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO responses (key, response, created_at) VALUES (?, ?, ?)
		 ON CONFLICT (key) DO UPDATE SET
		 	response = excluded.response,
		 	created_at = excluded.created_at`,
		key, response, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("cache store failed: %w", err)
	}
	return nil
}

// Prune deletes expired entries and returns how many were removed.
func (c *Cache) Prune(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-c.ttl).Unix()
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM responses WHERE created_at <= ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cache prune failed: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}
