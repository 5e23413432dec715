package dataaccess

import (
	"context"
	"testing"

	"github.com/lynxbot/lynx/pkg/entities"
	"github.com/stretchr/testify/require"
)

func TestTicketDal_NextTicketNumber(t *testing.T) {
	d := NewTicketDal(newTestDB(t), testLogger())
	ctx := context.Background()

	// An empty (guild, type) pair starts at 1 and counts up.
	for want := 1; want <= 3; want++ {
		n, err := d.NextTicketNumber(ctx, testGuild, "Grim Express")
		require.NoError(t, err)
		require.Equal(t, want, n)
	}

	// Other types and guilds have independent sequences.
	n, err := d.NextTicketNumber(ctx, testGuild, "Ultra Weekly Express")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = d.NextTicketNumber(ctx, "other-guild", "Grim Express")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestTicketDal_NumbersSurviveClose(t *testing.T) {
	d := NewTicketDal(newTestDB(t), testLogger())
	ctx := context.Background()

	n, err := d.NextTicketNumber(ctx, testGuild, "Grim Express")
	require.NoError(t, err)
	require.NoError(t, d.SaveActiveTicket(ctx, &entities.Ticket{
		GuildID:   testGuild,
		ChannelID: "chan-1",
		CreatorID: "user-1",
		Type:      "Grim Express",
		Number:    n,
	}))
	require.NoError(t, d.RemoveActiveTicket(ctx, testGuild, "chan-1"))

	// Numbers are never reused after a ticket closes.
	n, err = d.NextTicketNumber(ctx, testGuild, "Grim Express")
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestTicketDal_SaveAndGet(t *testing.T) {
	d := NewTicketDal(newTestDB(t), testLogger())
	ctx := context.Background()

	require.NoError(t, d.SaveActiveTicket(ctx, &entities.Ticket{
		GuildID:   testGuild,
		ChannelID: "chan-1",
		CreatorID: "user-1",
		Type:      "Grim Express",
		Number:    4,
	}))
	require.NoError(t, d.UpdateTicketMessage(ctx, testGuild, "chan-1", "msg-1"))

	ticket, err := d.GetActiveTicket(ctx, testGuild, "chan-1")
	require.NoError(t, err)
	require.NotNil(t, ticket)
	require.Equal(t, "user-1", ticket.CreatorID)
	require.Equal(t, "Grim Express", ticket.Type)
	require.Equal(t, 4, ticket.Number)
	require.Equal(t, "msg-1", ticket.MessageID)
	require.Empty(t, ticket.Helpers)
}

func TestTicketDal_GetMissingTicket(t *testing.T) {
	d := NewTicketDal(newTestDB(t), testLogger())

	ticket, err := d.GetActiveTicket(context.Background(), testGuild, "nope")
	require.NoError(t, err)
	require.Nil(t, ticket)
}

func TestTicketDal_UpdateHelpers(t *testing.T) {
	d := NewTicketDal(newTestDB(t), testLogger())
	ctx := context.Background()

	require.NoError(t, d.SaveActiveTicket(ctx, &entities.Ticket{
		GuildID:   testGuild,
		ChannelID: "chan-1",
		CreatorID: "user-1",
		Type:      "Grim Express",
		Number:    1,
	}))

	require.NoError(t, d.UpdateTicketHelpers(ctx, testGuild, "chan-1", []string{"100", "101"}))

	ticket, err := d.GetActiveTicket(ctx, testGuild, "chan-1")
	require.NoError(t, err)
	require.Equal(t, []string{"100", "101"}, ticket.Helpers)

	// Clearing the roster round-trips to an empty list.
	require.NoError(t, d.UpdateTicketHelpers(ctx, testGuild, "chan-1", nil))

	ticket, err = d.GetActiveTicket(ctx, testGuild, "chan-1")
	require.NoError(t, err)
	require.Empty(t, ticket.Helpers)
}

func TestTicketDal_Remove(t *testing.T) {
	d := NewTicketDal(newTestDB(t), testLogger())
	ctx := context.Background()

	require.NoError(t, d.SaveActiveTicket(ctx, &entities.Ticket{
		GuildID:   testGuild,
		ChannelID: "chan-1",
		CreatorID: "user-1",
		Type:      "Grim Express",
		Number:    1,
	}))
	require.NoError(t, d.RemoveActiveTicket(ctx, testGuild, "chan-1"))

	ticket, err := d.GetActiveTicket(ctx, testGuild, "chan-1")
	require.NoError(t, err)
	require.Nil(t, ticket)
}
