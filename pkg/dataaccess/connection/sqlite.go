package connection

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	dbMonitoring "github.com/lynxbot/lynx/pkg/dataaccess/monitoring"
	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus"
)

// Sqlite opens the local-file store.
type Sqlite struct {
	// Path is the database file path, or ":memory:" for tests.
	Path string
}

// dsn appends the driver options. The busy timeout covers the brief lock
// contention between the event handlers and the health check.
func (s *Sqlite) dsn() string {
	if strings.HasPrefix(s.Path, ":memory:") {
		return s.Path
	}
	return s.Path + "?_busy_timeout=5000&_journal_mode=WAL"
}

// Connect opens the database and verifies it is reachable. The pool is
// capped at a single connection; SQLite only supports one in-process writer
// and the callers rely on that serialization.
func (s *Sqlite) Connect() (*sql.DB, error) {
	if s.Path == "" {
		return nil, errors.New("no database path provided")
	}

	db, err := sql.Open("sqlite3", s.dsn())
	if err != nil {
		return nil, fmt.Errorf("error opening sqlite database: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err := Ping(context.Background(), db); err != nil {
		return nil, fmt.Errorf("error pinging sqlite database: %w", err)
	}
	return db, nil
}

// Ping verifies the database is reachable, recording the same metrics as the
// DAL operations.
func Ping(ctx context.Context, db *sql.DB) error {
	t := prometheus.NewTimer(dbMonitoring.SqliteLatency.WithLabelValues("health_check", "ping", "-"))
	defer t.ObserveDuration()
	dbMonitoring.SqliteTotalRequests.WithLabelValues("health_check", "ping", "-").Inc()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("error pinging sqlite: %w", err)
	}
	return nil
}
