package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/okian/wbdash/internal/domain/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS fetch_cache (
	key TEXT PRIMARY KEY,
	data BLOB NOT NULL,
	expires_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_fetch_cache_expires ON fetch_cache(expires_at);
`

// SQLiteStore persists fetch results in a SQLite table so the cache
// survives restarts. Records are encoded with msgpack.
type SQLiteStore struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// OpenSQLite opens (or creates) the cache database at path.
// ":memory:" gives a private in-process database.
func OpenSQLite(ctx context.Context, path string, ttl time.Duration) (*SQLiteStore, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	// An in-memory database exists per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create cache schema: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SQLiteStore{db: db, ttl: ttl, now: time.Now}, nil
}

// Get returns the records under key if they have not expired.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]model.IndicatorRecord, bool) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM fetch_cache WHERE key = ? AND expires_at > ?`,
		key, s.now().Unix(),
	).Scan(&data)
	if err != nil {
		return nil, false
	}

	var recs []model.IndicatorRecord
	if err := msgpack.Unmarshal(data, &recs); err != nil {
		return nil, false
	}
	return recs, true
}

// Set stores records under key, replacing any previous value.
func (s *SQLiteStore) Set(ctx context.Context, key string, records []model.IndicatorRecord) error {
	data, err := msgpack.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO fetch_cache (key, data, expires_at) VALUES (?, ?, ?)`,
		key, data, s.now().Add(s.ttl).Unix(),
	)
	if err != nil {
		return fmt.Errorf("store cache entry: %w", err)
	}
	return nil
}

// Purge deletes expired rows.
func (s *SQLiteStore) Purge(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM fetch_cache WHERE expires_at <= ?`, s.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("purge cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge cache rows: %w", err)
	}
	return int(n), nil
}

// Len counts stored rows.
func (s *SQLiteStore) Len() int {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM fetch_cache`).Scan(&n); err != nil {
		return 0
	}
	return n
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
