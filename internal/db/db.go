package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Driver names understood by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DB wraps a sql.DB with the dialect helpers the stores need.
type DB struct {
	*sql.DB
	driver string
	dsn    string
}

// Open connects to the given driver and runs migrations. For sqlite the DSN
// is a file path whose directory is created if missing.
func Open(driver, dsn string) (*DB, error) {
	switch driver {
	case DriverSQLite:
		return openSQLite(dsn)
	case DriverPostgres:
		return openPostgres(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

func openSQLite(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return finish(sqlDB, DriverSQLite, path)
}

func openPostgres(dsn string) (*DB, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return finish(sqlDB, DriverPostgres, dsn)
}

func finish(sqlDB *sql.DB, driver, dsn string) (*DB, error) {
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	d := &DB{DB: sqlDB, driver: driver, dsn: dsn}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return d, nil
}

// OpenMemory creates an in-memory SQLite database (useful for testing).
// The pool is pinned to one connection: every new connection to :memory:
// would otherwise see an empty database.
func OpenMemory() (*DB, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	d := &DB{DB: sqlDB, driver: DriverSQLite, dsn: ":memory:"}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return d, nil
}

// Driver returns the name of the underlying driver.
func (d *DB) Driver() string { return d.driver }

// Rebind rewrites ? placeholders into the driver's native form. Queries are
// written once with ? and rebound for postgres ($1, $2, ...).
func (d *DB) Rebind(query string) string {
	if d.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func (d *DB) migrate() error {
	_, err := d.Exec(schema)
	return err
}

// schema is portable between SQLite and PostgreSQL: no autoincrement keys,
// no dialect-specific defaults, timestamps stored as unix nanoseconds.
const schema = `
CREATE TABLE IF NOT EXISTS knowledge_entries (
    category TEXT PRIMARY KEY,
    seq INTEGER NOT NULL,
    topic TEXT NOT NULL,
    content TEXT NOT NULL,
    keywords TEXT NOT NULL DEFAULT '',
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_knowledge_seq ON knowledge_entries(seq);

CREATE TABLE IF NOT EXISTS interactions (
    id TEXT PRIMARY KEY,
    requester_id TEXT NOT NULL,
    reference_id TEXT NOT NULL DEFAULT '',
    payload TEXT NOT NULL DEFAULT '{}',
    created_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_interactions_requester ON interactions(requester_id, created_at);

CREATE TABLE IF NOT EXISTS backlog_questions (
    id TEXT PRIMARY KEY,
    question TEXT NOT NULL,
    normalized TEXT NOT NULL,
    requester_id TEXT NOT NULL DEFAULT '',
    asked INTEGER NOT NULL DEFAULT 1,
    status TEXT NOT NULL DEFAULT 'open',
    category TEXT NOT NULL DEFAULT '',
    answered_by TEXT NOT NULL DEFAULT '',
    answered_at BIGINT NOT NULL DEFAULT 0,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_backlog_normalized ON backlog_questions(normalized, status);
`
