package dataaccess

import (
	"context"
	"fmt"
	"testing"

	"github.com/lynxbot/lynx/pkg/entities"
	"github.com/stretchr/testify/require"
)

// TestTicketCloseScenario walks the full store-level lifecycle of a ticket:
// configure a category, open a ticket, fill the roster to capacity, close it
// and settle points.
func TestTicketCloseScenario(t *testing.T) {
	db := newTestDB(t)
	ticketConfig := NewTicketConfigDal(db, testLogger())
	tickets := NewTicketDal(db, testLogger())
	points := NewPointsDal(db, testLogger())
	ctx := context.Background()

	const (
		guildID  = "guild-1"
		category = "Grim Express"
	)

	// Grim Express: 10 points, 6 slots.
	require.NoError(t, ticketConfig.SetPointValues(ctx, guildID, map[string]int{category: 10}))
	require.NoError(t, ticketConfig.SetHelperSlots(ctx, guildID, map[string]int{category: 6}))

	pointValues, err := ticketConfig.GetPointValues(ctx, guildID)
	require.NoError(t, err)
	slotValues, err := ticketConfig.GetHelperSlots(ctx, guildID)
	require.NoError(t, err)

	merged := entities.MergeCategoryOverrides(pointValues, slotValues)
	cat, ok := entities.CategoryByName(category)
	require.True(t, ok)
	for _, c := range merged {
		if c.Name == category {
			cat = c
		}
	}
	require.Equal(t, 10, cat.Points)
	require.Equal(t, 6, cat.Slots)

	// Open the ticket with an empty roster.
	number, err := tickets.NextTicketNumber(ctx, guildID, category)
	require.NoError(t, err)
	require.Equal(t, 1, number)

	ticket := &entities.Ticket{
		GuildID:   guildID,
		ChannelID: "chan-ticket",
		CreatorID: "creator",
		Type:      category,
		Number:    number,
	}
	require.NoError(t, tickets.SaveActiveTicket(ctx, ticket))

	// Six helpers join; the seventh is rejected and the roster is unchanged.
	for i := 1; i <= 6; i++ {
		require.NoError(t, ticket.AddHelper(fmt.Sprintf("H%d", i), cat.Slots))
		require.NoError(t, tickets.UpdateTicketHelpers(ctx, guildID, ticket.ChannelID, ticket.Helpers))
	}
	require.ErrorIs(t, ticket.AddHelper("H7", cat.Slots), entities.ErrTicketFull)
	require.Len(t, ticket.Helpers, 6)

	// Close: every helper is credited the category point value and the row
	// is deleted.
	for _, helper := range ticket.Helpers {
		require.NoError(t, points.AddUserPoints(ctx, guildID, helper, cat.Points))
	}
	require.NoError(t, tickets.RemoveActiveTicket(ctx, guildID, ticket.ChannelID))

	lb, err := points.GetAllUserPoints(ctx, guildID)
	require.NoError(t, err)
	require.Len(t, lb, 6)
	for _, e := range lb {
		require.Equal(t, 10, e.Points)
	}

	gone, err := tickets.GetActiveTicket(ctx, guildID, ticket.ChannelID)
	require.NoError(t, err)
	require.Nil(t, gone)
}
