// Package sqlite implements the storage interface using SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	// Import SQLite driver
	sqlite3 "github.com/ncruces/go-sqlite3"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/tetratelabs/wazero"

	"github.com/steveyegge/civic/internal/idgen"
	"github.com/steveyegge/civic/internal/storage"
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
	closed atomic.Bool // Tracks whether Close() has been called

	now        func() time.Time
	newID      func() string
	strictSort bool
	log        *slog.Logger
}

var _ storage.Storage = (*SQLiteStorage)(nil)

// Option configures a SQLiteStorage.
type Option func(*SQLiteStorage)

// WithClock sets the clock used for created_at timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStorage) { s.now = now }
}

// WithIDGenerator replaces the issue ID generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *SQLiteStorage) { s.newID = gen }
}

// WithLenientSort makes GetIssues accept unrecognized sort orders and return
// rows in storage order instead of failing with types.ErrInvalidSort.
func WithLenientSort() Option {
	return func(s *SQLiteStorage) { s.strictSort = false }
}

// WithLogger sets the structured logger for storage operations.
func WithLogger(l *slog.Logger) Option {
	return func(s *SQLiteStorage) {
		if l != nil {
			s.log = l
		}
	}
}

// setupWASMCache configures WASM compilation caching to reduce SQLite startup time.
// Returns the cache directory path (empty string if using in-memory cache).
//
// Cache behavior:
//   - Location: ~/.cache/civic/wasm/ (platform-specific via os.UserCacheDir)
//   - Version management: wazero keys cache entries by its own version
//   - Fallback: Uses in-memory cache if filesystem cache creation fails
func setupWASMCache() string {
	cacheDir := ""
	if userCache, err := os.UserCacheDir(); err == nil {
		cacheDir = filepath.Join(userCache, "civic", "wasm")
	}

	var cache wazero.CompilationCache
	if cacheDir != "" {
		if c, err := wazero.NewCompilationCacheWithDir(cacheDir); err == nil {
			cache = c
		}
	}

	if cache == nil {
		cache = wazero.NewCompilationCache()
		cacheDir = ""
	}

	sqlite3.RuntimeConfig = wazero.NewRuntimeConfig().WithCompilationCache(cache)

	return cacheDir
}

func init() {
	_ = setupWASMCache()
}

// New opens (creating if needed) the issue database at path.
// The parent directory is created and the schema applied on every call;
// both steps leave an existing database untouched.
func New(ctx context.Context, path string, opts ...Option) (*SQLiteStorage, error) {
	var connStr string
	if path == ":memory:" {
		// Shared cache so every pooled connection sees the same database
		connStr = "file:memdb?mode=memory&cache=shared&_pragma=busy_timeout(30000)"
	} else if strings.HasPrefix(path, "file:") {
		connStr = path
		if !strings.Contains(path, "_pragma=busy_timeout") {
			sep := "?"
			if strings.Contains(path, "?") {
				sep = "&"
			}
			connStr += sep + "_pragma=busy_timeout(30000)"
		}
	} else {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		connStr = "file:" + path + "?_pragma=busy_timeout(30000)"
	}

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	isInMemory := path == ":memory:" ||
		(strings.HasPrefix(path, "file:") && strings.Contains(path, "mode=memory"))
	if isInMemory {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		// 1 writer + N readers; busy_timeout serializes writers
		db.SetMaxOpenConns(runtime.NumCPU() + 1)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(0)
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	absPath := path
	if !isInMemory && !strings.HasPrefix(path, "file:") {
		absPath, err = filepath.Abs(path)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to get absolute path: %w", err)
		}
	}

	s := &SQLiteStorage{
		db:         db,
		dbPath:     absPath,
		now:        time.Now,
		newID:      func() string { return idgen.NewIssueID(idgen.DefaultPrefix) },
		strictSort: true,
		log:        slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(s)
	}

	s.log.DebugContext(ctx, "opened issue store", "path", absPath)
	return s, nil
}

// Close closes the database connection.
// It checkpoints the WAL so writes land in the main database file between CLI invocations.
func (s *SQLiteStorage) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	return s.db.Close()
}

// Path returns the absolute path to the database file
func (s *SQLiteStorage) Path() string {
	return s.dbPath
}

// UnderlyingDB returns the underlying *sql.DB connection pool.
// Callers must not close it or change its pragmas.
func (s *SQLiteStorage) UnderlyingDB() *sql.DB {
	return s.db
}
