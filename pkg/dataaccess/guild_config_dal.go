package dataaccess

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lynxbot/lynx/pkg/dataaccess/monitoring"
	"github.com/lynxbot/lynx/pkg/entities"
	"github.com/lynxbot/lynx/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
)

const guildConfigDalName = "guild_config_dal"

type GuildConfigDal interface {
	// GetConfig gets the configuration for a guild. It returns nil when the
	// guild has never been configured.
	GetConfig(ctx context.Context, guildID string) (*entities.GuildConfig, error)

	// UpdateConfig upserts the fields named by the patch, leaving every other
	// field untouched and bumping the updated-at stamp.
	UpdateConfig(ctx context.Context, guildID string, patch *entities.ConfigPatch) error

	// ResetConfig nulls out every binding for the guild.
	ResetConfig(ctx context.Context, guildID string) error
}

type guildConfigDal struct {
	// l is the logger.
	l *slog.Logger

	// db is the database handle.
	db *sql.DB
}

// NewGuildConfigDal creates a new guild configuration data access layer.
func NewGuildConfigDal(db *sql.DB, l *slog.Logger) GuildConfigDal {
	return &guildConfigDal{
		l:  l.With(slog.String(logging.KeyDal, guildConfigDalName)),
		db: db,
	}
}

func (d *guildConfigDal) GetConfig(ctx context.Context, guildID string) (*entities.GuildConfig, error) {
	monitoring.SqliteTotalRequests.WithLabelValues(guildConfigDalName, "get_config", "server_config").Inc()
	t := prometheus.NewTimer(monitoring.SqliteLatency.WithLabelValues(guildConfigDalName, "get_config", "server_config"))
	defer t.ObserveDuration()

	cfg := new(entities.GuildConfig)
	err := d.db.QueryRowContext(ctx, `
		SELECT guild_id,
			COALESCE(admin_role_id, ''),
			COALESCE(staff_role_id, ''),
			COALESCE(helper_role_id, ''),
			COALESCE(viewer_role_id, ''),
			COALESCE(blocked_role_id, ''),
			COALESCE(reward_role_id, ''),
			COALESCE(ticket_category_id, ''),
			COALESCE(transcript_channel_id, ''),
			created_at,
			updated_at
		FROM server_config
		WHERE guild_id = ?`, guildID).Scan(
		&cfg.GuildID,
		&cfg.AdminRoleID,
		&cfg.StaffRoleID,
		&cfg.HelperRoleID,
		&cfg.ViewerRoleID,
		&cfg.BlockedRoleID,
		&cfg.RewardRoleID,
		&cfg.TicketCategoryID,
		&cfg.TranscriptChannelID,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("error getting guild config: %w", err)
	}
	return cfg, nil
}

// patchColumns maps the set fields of a patch to column assignments. The
// dispatch is explicit per field; there is no string-keyed reflection.
func patchColumns(patch *entities.ConfigPatch) (cols []string, args []any) {
	set := func(col string, v *string) {
		if v == nil {
			return
		}
		cols = append(cols, col)
		if *v == "" {
			args = append(args, nil)
		} else {
			args = append(args, *v)
		}
	}

	set("admin_role_id", patch.AdminRoleID)
	set("staff_role_id", patch.StaffRoleID)
	set("helper_role_id", patch.HelperRoleID)
	set("viewer_role_id", patch.ViewerRoleID)
	set("blocked_role_id", patch.BlockedRoleID)
	set("reward_role_id", patch.RewardRoleID)
	set("ticket_category_id", patch.TicketCategoryID)
	set("transcript_channel_id", patch.TranscriptChannelID)
	return cols, args
}

func (d *guildConfigDal) UpdateConfig(ctx context.Context, guildID string, patch *entities.ConfigPatch) error {
	if patch.IsZero() {
		return nil
	}

	monitoring.SqliteTotalRequests.WithLabelValues(guildConfigDalName, "update_config", "server_config").Inc()
	t := prometheus.NewTimer(monitoring.SqliteLatency.WithLabelValues(guildConfigDalName, "update_config", "server_config"))
	defer t.ObserveDuration()

	cols, args := patchColumns(patch)

	// Upsert by presence check: update when the row exists, insert otherwise.
	var exists string
	err := d.db.QueryRowContext(ctx, `SELECT guild_id FROM server_config WHERE guild_id = ?`, guildID).Scan(&exists)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		placeholders := make([]string, len(cols))
		for i := range placeholders {
			placeholders[i] = "?"
		}
		query := fmt.Sprintf(
			`INSERT INTO server_config (guild_id, %s) VALUES (?, %s)`,
			strings.Join(cols, ", "), strings.Join(placeholders, ", "),
		)
		if _, err := d.db.ExecContext(ctx, query, append([]any{guildID}, args...)...); err != nil {
			return fmt.Errorf("error inserting guild config: %w", err)
		}
	case err != nil:
		return fmt.Errorf("error checking guild config: %w", err)
	default:
		assignments := make([]string, len(cols))
		for i, col := range cols {
			assignments[i] = col + " = ?"
		}
		query := fmt.Sprintf(
			`UPDATE server_config SET %s, updated_at = CURRENT_TIMESTAMP WHERE guild_id = ?`,
			strings.Join(assignments, ", "),
		)
		if _, err := d.db.ExecContext(ctx, query, append(args, guildID)...); err != nil {
			return fmt.Errorf("error updating guild config: %w", err)
		}
	}
	return nil
}

func (d *guildConfigDal) ResetConfig(ctx context.Context, guildID string) error {
	monitoring.SqliteTotalRequests.WithLabelValues(guildConfigDalName, "reset_config", "server_config").Inc()
	t := prometheus.NewTimer(monitoring.SqliteLatency.WithLabelValues(guildConfigDalName, "reset_config", "server_config"))
	defer t.ObserveDuration()

	_, err := d.db.ExecContext(ctx, `
		UPDATE server_config SET
			admin_role_id = NULL,
			staff_role_id = NULL,
			helper_role_id = NULL,
			viewer_role_id = NULL,
			blocked_role_id = NULL,
			reward_role_id = NULL,
			ticket_category_id = NULL,
			transcript_channel_id = NULL,
			updated_at = CURRENT_TIMESTAMP
		WHERE guild_id = ?`, guildID)
	if err != nil {
		return fmt.Errorf("error resetting guild config: %w", err)
	}
	return nil
}
