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

const ticketDalName = "ticket_dal"

type TicketDal interface {
	// NextTicketNumber allocates the next ticket number for the
	// (guild, type) pair. The counter is bumped atomically, so two
	// concurrent intake submissions can never be handed the same number.
	NextTicketNumber(ctx context.Context, guildID, ticketType string) (int, error)

	// SaveActiveTicket persists a newly opened ticket.
	SaveActiveTicket(ctx context.Context, ticket *entities.Ticket) error

	// GetActiveTicket gets an open ticket by channel. It returns nil when the
	// channel is not an active ticket.
	GetActiveTicket(ctx context.Context, guildID, channelID string) (*entities.Ticket, error)

	// RemoveActiveTicket deletes the ticket row on close.
	RemoveActiveTicket(ctx context.Context, guildID, channelID string) error

	// UpdateTicketMessage records the ID of the intake summary message.
	UpdateTicketMessage(ctx context.Context, guildID, channelID, messageID string) error

	// UpdateTicketHelpers overwrites the persisted helper list.
	UpdateTicketHelpers(ctx context.Context, guildID, channelID string, helpers []string) error
}

type ticketDal struct {
	// l is the logger.
	l *slog.Logger

	// db is the database handle.
	db *sql.DB
}

// NewTicketDal creates a new ticket data access layer.
func NewTicketDal(db *sql.DB, l *slog.Logger) TicketDal {
	return &ticketDal{
		l:  l.With(slog.String(logging.KeyDal, ticketDalName)),
		db: db,
	}
}

func (d *ticketDal) NextTicketNumber(ctx context.Context, guildID, ticketType string) (int, error) {
	monitoring.SqliteTotalRequests.WithLabelValues(ticketDalName, "next_ticket_number", "ticket_counters").Inc()
	t := prometheus.NewTimer(monitoring.SqliteLatency.WithLabelValues(ticketDalName, "next_ticket_number", "ticket_counters"))
	defer t.ObserveDuration()

	var n int
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO ticket_counters (guild_id, ticket_type, n) VALUES (?, ?, 1)
		ON CONFLICT (guild_id, ticket_type) DO UPDATE SET n = n + 1
		RETURNING n`,
		guildID, ticketType,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error allocating ticket number: %w", err)
	}
	return n, nil
}

func (d *ticketDal) SaveActiveTicket(ctx context.Context, ticket *entities.Ticket) error {
	monitoring.SqliteTotalRequests.WithLabelValues(ticketDalName, "save_active_ticket", "active_tickets").Inc()
	t := prometheus.NewTimer(monitoring.SqliteLatency.WithLabelValues(ticketDalName, "save_active_ticket", "active_tickets"))
	defer t.ObserveDuration()

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO active_tickets (guild_id, channel_id, creator_id, ticket_type, ticket_number, message_id, helpers)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ticket.GuildID, ticket.ChannelID, ticket.CreatorID, ticket.Type, ticket.Number,
		ticket.MessageID, entities.JoinHelpers(ticket.Helpers),
	)
	if err != nil {
		return fmt.Errorf("error saving active ticket: %w", err)
	}
	return nil
}

func (d *ticketDal) GetActiveTicket(ctx context.Context, guildID, channelID string) (*entities.Ticket, error) {
	monitoring.SqliteTotalRequests.WithLabelValues(ticketDalName, "get_active_ticket", "active_tickets").Inc()
	t := prometheus.NewTimer(monitoring.SqliteLatency.WithLabelValues(ticketDalName, "get_active_ticket", "active_tickets"))
	defer t.ObserveDuration()

	ticket := new(entities.Ticket)
	var helpers string
	err := d.db.QueryRowContext(ctx, `
		SELECT guild_id, channel_id, creator_id, ticket_type, ticket_number, COALESCE(message_id, ''), COALESCE(helpers, ''), created_at
		FROM active_tickets
		WHERE guild_id = ? AND channel_id = ?`,
		guildID, channelID,
	).Scan(
		&ticket.GuildID,
		&ticket.ChannelID,
		&ticket.CreatorID,
		&ticket.Type,
		&ticket.Number,
		&ticket.MessageID,
		&helpers,
		&ticket.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("error getting active ticket: %w", err)
	}

	ticket.Helpers = entities.SplitHelpers(helpers)
	return ticket, nil
}

func (d *ticketDal) RemoveActiveTicket(ctx context.Context, guildID, channelID string) error {
	monitoring.SqliteTotalRequests.WithLabelValues(ticketDalName, "remove_active_ticket", "active_tickets").Inc()
	t := prometheus.NewTimer(monitoring.SqliteLatency.WithLabelValues(ticketDalName, "remove_active_ticket", "active_tickets"))
	defer t.ObserveDuration()

	if _, err := d.db.ExecContext(ctx,
		`DELETE FROM active_tickets WHERE guild_id = ? AND channel_id = ?`,
		guildID, channelID,
	); err != nil {
		return fmt.Errorf("error removing active ticket: %w", err)
	}
	return nil
}

func (d *ticketDal) UpdateTicketMessage(ctx context.Context, guildID, channelID, messageID string) error {
	monitoring.SqliteTotalRequests.WithLabelValues(ticketDalName, "update_ticket_message", "active_tickets").Inc()
	t := prometheus.NewTimer(monitoring.SqliteLatency.WithLabelValues(ticketDalName, "update_ticket_message", "active_tickets"))
	defer t.ObserveDuration()

	if _, err := d.db.ExecContext(ctx,
		`UPDATE active_tickets SET message_id = ? WHERE guild_id = ? AND channel_id = ?`,
		messageID, guildID, channelID,
	); err != nil {
		return fmt.Errorf("error updating ticket message: %w", err)
	}
	return nil
}

func (d *ticketDal) UpdateTicketHelpers(ctx context.Context, guildID, channelID string, helpers []string) error {
	monitoring.SqliteTotalRequests.WithLabelValues(ticketDalName, "update_ticket_helpers", "active_tickets").Inc()
	t := prometheus.NewTimer(monitoring.SqliteLatency.WithLabelValues(ticketDalName, "update_ticket_helpers", "active_tickets"))
	defer t.ObserveDuration()

	if _, err := d.db.ExecContext(ctx,
		`UPDATE active_tickets SET helpers = ? WHERE guild_id = ? AND channel_id = ?`,
		entities.JoinHelpers(helpers), guildID, channelID,
	); err != nil {
		return fmt.Errorf("error updating ticket helpers: %w", err)
	}
	return nil
}
