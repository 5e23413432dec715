package dataaccess

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/lynxbot/lynx/pkg/dataaccess/monitoring"
	"github.com/lynxbot/lynx/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
)

const ticketConfigDalName = "ticket_config_dal"

type TicketConfigDal interface {
	// GetPointValues returns the per-category point overrides for a guild.
	// The map is empty when nothing has been configured; callers fall back to
	// the defaults.
	GetPointValues(ctx context.Context, guildID string) (map[string]int, error)

	// SetPointValues replaces every point override for the guild.
	SetPointValues(ctx context.Context, guildID string, values map[string]int) error

	// GetHelperSlots returns the per-category slot overrides for a guild.
	GetHelperSlots(ctx context.Context, guildID string) (map[string]int, error)

	// SetHelperSlots replaces every slot override for the guild.
	SetHelperSlots(ctx context.Context, guildID string, slots map[string]int) error
}

type ticketConfigDal struct {
	// l is the logger.
	l *slog.Logger

	// db is the database handle.
	db *sql.DB
}

// NewTicketConfigDal creates a new ticket configuration data access layer.
func NewTicketConfigDal(db *sql.DB, l *slog.Logger) TicketConfigDal {
	return &ticketConfigDal{
		l:  l.With(slog.String(logging.KeyDal, ticketConfigDalName)),
		db: db,
	}
}

func (d *ticketConfigDal) getValues(ctx context.Context, query, table, guildID string) (map[string]int, error) {
	rows, err := d.db.QueryContext(ctx, query, guildID)
	if err != nil {
		return nil, fmt.Errorf("error getting %s: %w", table, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			d.l.Error("Error closing rows", slog.String(logging.KeyError, err.Error()))
		}
	}()

	values := make(map[string]int)
	for rows.Next() {
		var (
			ticketType string
			value      int
		)
		if err := rows.Scan(&ticketType, &value); err != nil {
			return nil, fmt.Errorf("error scanning %s: %w", table, err)
		}
		values[ticketType] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", table, err)
	}
	return values, nil
}

// setValues is the replace-all write: delete every row for the guild, then
// insert the new set, in one transaction.
func (d *ticketConfigDal) setValues(ctx context.Context, table, column, guildID string, values map[string]int) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE guild_id = ?`, table), guildID); err != nil {
		return fmt.Errorf("error clearing %s: %w", table, err)
	}

	for ticketType, value := range values {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf(`INSERT INTO %s (guild_id, ticket_type, %s) VALUES (?, ?, ?)`, table, column),
			guildID, ticketType, value,
		); err != nil {
			return fmt.Errorf("error inserting into %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing %s: %w", table, err)
	}
	return nil
}

func (d *ticketConfigDal) GetPointValues(ctx context.Context, guildID string) (map[string]int, error) {
	monitoring.SqliteTotalRequests.WithLabelValues(ticketConfigDalName, "get_point_values", "point_values").Inc()
	t := prometheus.NewTimer(monitoring.SqliteLatency.WithLabelValues(ticketConfigDalName, "get_point_values", "point_values"))
	defer t.ObserveDuration()

	return d.getValues(ctx, `SELECT ticket_type, points FROM point_values WHERE guild_id = ?`, "point_values", guildID)
}

func (d *ticketConfigDal) SetPointValues(ctx context.Context, guildID string, values map[string]int) error {
	monitoring.SqliteTotalRequests.WithLabelValues(ticketConfigDalName, "set_point_values", "point_values").Inc()
	t := prometheus.NewTimer(monitoring.SqliteLatency.WithLabelValues(ticketConfigDalName, "set_point_values", "point_values"))
	defer t.ObserveDuration()

	return d.setValues(ctx, "point_values", "points", guildID, values)
}

func (d *ticketConfigDal) GetHelperSlots(ctx context.Context, guildID string) (map[string]int, error) {
	monitoring.SqliteTotalRequests.WithLabelValues(ticketConfigDalName, "get_helper_slots", "helper_slots").Inc()
	t := prometheus.NewTimer(monitoring.SqliteLatency.WithLabelValues(ticketConfigDalName, "get_helper_slots", "helper_slots"))
	defer t.ObserveDuration()

	return d.getValues(ctx, `SELECT ticket_type, slots FROM helper_slots WHERE guild_id = ?`, "helper_slots", guildID)
}

func (d *ticketConfigDal) SetHelperSlots(ctx context.Context, guildID string, slots map[string]int) error {
	monitoring.SqliteTotalRequests.WithLabelValues(ticketConfigDalName, "set_helper_slots", "helper_slots").Inc()
	t := prometheus.NewTimer(monitoring.SqliteLatency.WithLabelValues(ticketConfigDalName, "set_helper_slots", "helper_slots"))
	defer t.ObserveDuration()

	return d.setValues(ctx, "helper_slots", "slots", guildID, slots)
}
