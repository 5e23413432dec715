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

const pointsDalName = "points_dal"

type PointsDal interface {
	// GetUserPoints gets a balance, defaulting to 0 when the user has no row.
	GetUserPoints(ctx context.Context, guildID, userID string) (int, error)

	// SetUserPoints overwrites a balance.
	SetUserPoints(ctx context.Context, guildID, userID string, amount int) error

	// AddUserPoints increments a balance in a single statement.
	AddUserPoints(ctx context.Context, guildID, userID string, amount int) error

	// RemoveUserPoints decrements a balance, flooring the result at 0.
	RemoveUserPoints(ctx context.Context, guildID, userID string, amount int) error

	// GetAllUserPoints returns every balance for the guild ordered by points
	// descending, ties broken by user ID.
	GetAllUserPoints(ctx context.Context, guildID string) (entities.Leaderboard, error)

	// ClearAllPoints deletes every balance for the guild.
	ClearAllPoints(ctx context.Context, guildID string) error

	// RemoveUser deletes a single balance row.
	RemoveUser(ctx context.Context, guildID, userID string) error
}

type pointsDal struct {
	// l is the logger.
	l *slog.Logger

	// db is the database handle.
	db *sql.DB
}

// NewPointsDal creates a new points data access layer.
func NewPointsDal(db *sql.DB, l *slog.Logger) PointsDal {
	return &pointsDal{
		l:  l.With(slog.String(logging.KeyDal, pointsDalName)),
		db: db,
	}
}

func (d *pointsDal) GetUserPoints(ctx context.Context, guildID, userID string) (int, error) {
	monitoring.SqliteTotalRequests.WithLabelValues(pointsDalName, "get_user_points", "user_points").Inc()
	t := prometheus.NewTimer(monitoring.SqliteLatency.WithLabelValues(pointsDalName, "get_user_points", "user_points"))
	defer t.ObserveDuration()

	var points int
	err := d.db.QueryRowContext(ctx,
		`SELECT points FROM user_points WHERE guild_id = ? AND user_id = ?`,
		guildID, userID,
	).Scan(&points)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	} else if err != nil {
		return 0, fmt.Errorf("error getting user points: %w", err)
	}
	return points, nil
}

func (d *pointsDal) SetUserPoints(ctx context.Context, guildID, userID string, amount int) error {
	monitoring.SqliteTotalRequests.WithLabelValues(pointsDalName, "set_user_points", "user_points").Inc()
	t := prometheus.NewTimer(monitoring.SqliteLatency.WithLabelValues(pointsDalName, "set_user_points", "user_points"))
	defer t.ObserveDuration()

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO user_points (guild_id, user_id, points) VALUES (?, ?, ?)
		ON CONFLICT (guild_id, user_id) DO UPDATE SET points = excluded.points`,
		guildID, userID, amount,
	)
	if err != nil {
		return fmt.Errorf("error setting user points: %w", err)
	}
	return nil
}

func (d *pointsDal) AddUserPoints(ctx context.Context, guildID, userID string, amount int) error {
	monitoring.SqliteTotalRequests.WithLabelValues(pointsDalName, "add_user_points", "user_points").Inc()
	t := prometheus.NewTimer(monitoring.SqliteLatency.WithLabelValues(pointsDalName, "add_user_points", "user_points"))
	defer t.ObserveDuration()

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO user_points (guild_id, user_id, points) VALUES (?, ?, ?)
		ON CONFLICT (guild_id, user_id) DO UPDATE SET points = points + excluded.points`,
		guildID, userID, amount,
	)
	if err != nil {
		return fmt.Errorf("error adding user points: %w", err)
	}
	return nil
}

func (d *pointsDal) RemoveUserPoints(ctx context.Context, guildID, userID string, amount int) error {
	monitoring.SqliteTotalRequests.WithLabelValues(pointsDalName, "remove_user_points", "user_points").Inc()
	t := prometheus.NewTimer(monitoring.SqliteLatency.WithLabelValues(pointsDalName, "remove_user_points", "user_points"))
	defer t.ObserveDuration()

	// The balance never goes below zero, no matter how much is removed.
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO user_points (guild_id, user_id, points) VALUES (?, ?, 0)
		ON CONFLICT (guild_id, user_id) DO UPDATE SET points = MAX(points - ?, 0)`,
		guildID, userID, amount,
	)
	if err != nil {
		return fmt.Errorf("error removing user points: %w", err)
	}
	return nil
}

func (d *pointsDal) GetAllUserPoints(ctx context.Context, guildID string) (entities.Leaderboard, error) {
	monitoring.SqliteTotalRequests.WithLabelValues(pointsDalName, "get_all_user_points", "user_points").Inc()
	t := prometheus.NewTimer(monitoring.SqliteLatency.WithLabelValues(pointsDalName, "get_all_user_points", "user_points"))
	defer t.ObserveDuration()

	rows, err := d.db.QueryContext(ctx,
		`SELECT user_id, points FROM user_points WHERE guild_id = ? ORDER BY points DESC, user_id ASC`,
		guildID,
	)
	if err != nil {
		return nil, fmt.Errorf("error getting all user points: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			d.l.Error("Error closing rows", slog.String(logging.KeyError, err.Error()))
		}
	}()

	var lb entities.Leaderboard
	for rows.Next() {
		var e entities.UserPoints
		if err := rows.Scan(&e.UserID, &e.Points); err != nil {
			return nil, fmt.Errorf("error scanning user points: %w", err)
		}
		lb = append(lb, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user points: %w", err)
	}
	return lb, nil
}

func (d *pointsDal) ClearAllPoints(ctx context.Context, guildID string) error {
	monitoring.SqliteTotalRequests.WithLabelValues(pointsDalName, "clear_all_points", "user_points").Inc()
	t := prometheus.NewTimer(monitoring.SqliteLatency.WithLabelValues(pointsDalName, "clear_all_points", "user_points"))
	defer t.ObserveDuration()

	if _, err := d.db.ExecContext(ctx, `DELETE FROM user_points WHERE guild_id = ?`, guildID); err != nil {
		return fmt.Errorf("error clearing points: %w", err)
	}
	return nil
}

func (d *pointsDal) RemoveUser(ctx context.Context, guildID, userID string) error {
	monitoring.SqliteTotalRequests.WithLabelValues(pointsDalName, "remove_user", "user_points").Inc()
	t := prometheus.NewTimer(monitoring.SqliteLatency.WithLabelValues(pointsDalName, "remove_user", "user_points"))
	defer t.ObserveDuration()

	if _, err := d.db.ExecContext(ctx, `DELETE FROM user_points WHERE guild_id = ? AND user_id = ?`, guildID, userID); err != nil {
		return fmt.Errorf("error removing user: %w", err)
	}
	return nil
}
