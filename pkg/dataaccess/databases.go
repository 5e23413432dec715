package dataaccess

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/lynxbot/lynx/pkg/dataaccess/connection"
)

// schema is the full table layout. Every table is keyed by guild ID so that
// cross-guild interference is structurally impossible.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS server_config (
		guild_id TEXT PRIMARY KEY,
		admin_role_id TEXT,
		staff_role_id TEXT,
		helper_role_id TEXT,
		viewer_role_id TEXT,
		blocked_role_id TEXT,
		reward_role_id TEXT,
		ticket_category_id TEXT,
		transcript_channel_id TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS point_values (
		guild_id TEXT,
		ticket_type TEXT,
		points INTEGER,
		PRIMARY KEY (guild_id, ticket_type)
	)`,
	`CREATE TABLE IF NOT EXISTS helper_slots (
		guild_id TEXT,
		ticket_type TEXT,
		slots INTEGER,
		PRIMARY KEY (guild_id, ticket_type)
	)`,
	`CREATE TABLE IF NOT EXISTS custom_commands (
		guild_id TEXT,
		command_name TEXT,
		content TEXT NOT NULL,
		image_url TEXT,
		PRIMARY KEY (guild_id, command_name)
	)`,
	`CREATE TABLE IF NOT EXISTS user_points (
		guild_id TEXT,
		user_id TEXT,
		points INTEGER DEFAULT 0,
		PRIMARY KEY (guild_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS active_tickets (
		guild_id TEXT,
		channel_id TEXT PRIMARY KEY,
		creator_id TEXT,
		ticket_type TEXT,
		ticket_number INTEGER,
		message_id TEXT,
		helpers TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS ticket_counters (
		guild_id TEXT,
		ticket_type TEXT,
		n INTEGER NOT NULL,
		PRIMARY KEY (guild_id, ticket_type)
	)`,
}

// NewDatabase opens the store and ensures the schema exists. The returned
// handle is the single shared connection pool; it is passed to every DAL at
// construction time.
func NewDatabase(path string, l *slog.Logger) (*sql.DB, error) {
	conn := &connection.Sqlite{Path: path}

	db, err := conn.Connect()
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := InitSchema(context.Background(), db); err != nil {
		return nil, fmt.Errorf("error initializing schema: %w", err)
	}

	l.Debug("Connected to SQLite database", slog.String("path", path))
	return db, nil
}

// InitSchema creates any missing tables.
func InitSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error creating table: %w", err)
		}
	}
	return nil
}
