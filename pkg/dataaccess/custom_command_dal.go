package dataaccess

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lynxbot/lynx/pkg/dataaccess/monitoring"
	"github.com/lynxbot/lynx/pkg/entities"
	"github.com/lynxbot/lynx/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
)

const customCommandDalName = "custom_command_dal"

type CustomCommandDal interface {
	// GetCustomCommand gets a snippet by name. It returns nil when the
	// snippet has not been configured; that is not an error.
	GetCustomCommand(ctx context.Context, guildID, name string) (*entities.CustomCommand, error)

	// SetCustomCommand upserts a snippet by (guild, name).
	SetCustomCommand(ctx context.Context, cmd *entities.CustomCommand) error
}

type customCommandDal struct {
	// l is the logger.
	l *slog.Logger

	// db is the database handle.
	db *sql.DB
}

// NewCustomCommandDal creates a new custom command data access layer.
func NewCustomCommandDal(db *sql.DB, l *slog.Logger) CustomCommandDal {
	return &customCommandDal{
		l:  l.With(slog.String(logging.KeyDal, customCommandDalName)),
		db: db,
	}
}

func (d *customCommandDal) GetCustomCommand(ctx context.Context, guildID, name string) (*entities.CustomCommand, error) {
	monitoring.SqliteTotalRequests.WithLabelValues(customCommandDalName, "get_custom_command", "custom_commands").Inc()
	t := prometheus.NewTimer(monitoring.SqliteLatency.WithLabelValues(customCommandDalName, "get_custom_command", "custom_commands"))
	defer t.ObserveDuration()

	cmd := &entities.CustomCommand{GuildID: guildID, Name: name}
	err := d.db.QueryRowContext(ctx,
		`SELECT content, COALESCE(image_url, '') FROM custom_commands WHERE guild_id = ? AND command_name = ?`,
		guildID, name,
	).Scan(&cmd.Content, &cmd.ImageURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("error getting custom command: %w", err)
	}
	return cmd, nil
}

func (d *customCommandDal) SetCustomCommand(ctx context.Context, cmd *entities.CustomCommand) error {
	if err := entities.ValidateCustomCommandName(cmd.Name); err != nil {
		return err
	}

	monitoring.SqliteTotalRequests.WithLabelValues(customCommandDalName, "set_custom_command", "custom_commands").Inc()
	t := prometheus.NewTimer(monitoring.SqliteLatency.WithLabelValues(customCommandDalName, "set_custom_command", "custom_commands"))
	defer t.ObserveDuration()

	// An unset image is stored as an empty string, not NULL.
	_, err := d.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO custom_commands (guild_id, command_name, content, image_url)
		VALUES (?, ?, ?, ?)`,
		cmd.GuildID, cmd.Name, cmd.Content, cmd.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("error setting custom command: %w", err)
	}
	return nil
}
