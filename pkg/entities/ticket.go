package entities

import (
	"strings"

	"github.com/lynxbot/lynx/pkg/custom"
)

// Ticket is an open ticket channel and its helper roster. The persisted row
// is the source of truth for the roster; in-memory copies are caches that are
// rehydrated from it.
type Ticket struct {
	// GuildID is the ID of the guild that the ticket is in.
	GuildID string `json:"guild_id"`

	// ChannelID is the ID of the backing channel. It is the primary key.
	ChannelID string `json:"channel_id"`

	// CreatorID is the ID of the user that opened the ticket.
	CreatorID string `json:"creator_id"`

	// Type is the category name of the ticket.
	Type string `json:"type"`

	// Number is the per-(guild, type) ticket number.
	Number int `json:"number"`

	// MessageID is the ID of the intake summary message carrying the roster
	// embed and buttons.
	MessageID string `json:"message_id"`

	// Helpers are the IDs of the users currently on the roster, in join
	// order.
	Helpers []string `json:"helpers"`

	// CreatedAt is the time that the ticket was created.
	CreatedAt custom.Datetime `json:"created_at"`
}

// HasHelper reports whether the user is on the roster.
func (t *Ticket) HasHelper(userID string) bool {
	for _, h := range t.Helpers {
		if h == userID {
			return true
		}
	}
	return false
}

// AddHelper appends a helper to the roster. Re-joining and joining a full
// roster are rejected without changing state.
func (t *Ticket) AddHelper(userID string, capacity int) error {
	if t.HasHelper(userID) {
		return ErrAlreadyHelping
	}
	if len(t.Helpers) >= capacity {
		return ErrTicketFull
	}
	t.Helpers = append(t.Helpers, userID)
	return nil
}

// RemoveHelper removes a helper from the roster, preserving join order of
// the rest.
func (t *Ticket) RemoveHelper(userID string) error {
	for i, h := range t.Helpers {
		if h == userID {
			t.Helpers = append(t.Helpers[:i], t.Helpers[i+1:]...)
			return nil
		}
	}
	return ErrNotHelping
}

// JoinHelpers serializes a helper ID list to the stored comma-joined form.
func JoinHelpers(helpers []string) string {
	return strings.Join(helpers, ",")
}

// SplitHelpers parses the stored comma-joined helper list. An empty string is
// an empty roster, not a roster of one empty ID.
func SplitHelpers(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
