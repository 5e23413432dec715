package dataaccess

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/lynxbot/lynx/pkg/dataaccess/connection"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a fresh in-memory database with the full schema.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn := &connection.Sqlite{Path: ":memory:"}
	db, err := conn.Connect()
	require.NoError(t, err, "Failed to open in-memory database")

	require.NoError(t, InitSchema(context.Background(), db))

	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func testLogger() *slog.Logger {
	return slog.Default()
}
