package dataaccess

import (
	"context"
	"testing"

	"github.com/lynxbot/lynx/pkg/entities"
	"github.com/stretchr/testify/require"
)

const testGuild = "guild-1"

func TestPointsDal_AddIsCumulative(t *testing.T) {
	d := NewPointsDal(newTestDB(t), testLogger())
	ctx := context.Background()

	require.NoError(t, d.AddUserPoints(ctx, testGuild, "user-1", 5))
	require.NoError(t, d.AddUserPoints(ctx, testGuild, "user-1", 7))

	points, err := d.GetUserPoints(ctx, testGuild, "user-1")
	require.NoError(t, err)
	require.Equal(t, 12, points)
}

func TestPointsDal_GetDefaultsToZero(t *testing.T) {
	d := NewPointsDal(newTestDB(t), testLogger())

	points, err := d.GetUserPoints(context.Background(), testGuild, "nobody")
	require.NoError(t, err)
	require.Equal(t, 0, points)
}

func TestPointsDal_RemoveFloorsAtZero(t *testing.T) {
	tests := []struct {
		name    string
		initial int
		remove  int
		want    int
	}{
		{name: "PartialRemove", initial: 10, remove: 4, want: 6},
		{name: "ExactRemove", initial: 10, remove: 10, want: 0},
		{name: "OverRemove", initial: 10, remove: 100, want: 0},
		{name: "RemoveFromAbsentRow", initial: 0, remove: 5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewPointsDal(newTestDB(t), testLogger())
			ctx := context.Background()

			if tt.initial > 0 {
				require.NoError(t, d.AddUserPoints(ctx, testGuild, "user-1", tt.initial))
			}
			require.NoError(t, d.RemoveUserPoints(ctx, testGuild, "user-1", tt.remove))

			points, err := d.GetUserPoints(ctx, testGuild, "user-1")
			require.NoError(t, err)
			require.Equal(t, tt.want, points)
		})
	}
}

func TestPointsDal_SetOverwrites(t *testing.T) {
	d := NewPointsDal(newTestDB(t), testLogger())
	ctx := context.Background()

	require.NoError(t, d.AddUserPoints(ctx, testGuild, "user-1", 5))
	require.NoError(t, d.SetUserPoints(ctx, testGuild, "user-1", 42))

	points, err := d.GetUserPoints(ctx, testGuild, "user-1")
	require.NoError(t, err)
	require.Equal(t, 42, points)
}

func TestPointsDal_GetAllOrdering(t *testing.T) {
	d := NewPointsDal(newTestDB(t), testLogger())
	ctx := context.Background()

	require.NoError(t, d.SetUserPoints(ctx, testGuild, "300", 5))
	require.NoError(t, d.SetUserPoints(ctx, testGuild, "200", 10))
	require.NoError(t, d.SetUserPoints(ctx, testGuild, "100", 10))

	lb, err := d.GetAllUserPoints(ctx, testGuild)
	require.NoError(t, err)

	// Points descending, tied balances by user ID.
	require.Equal(t, entities.Leaderboard{
		{UserID: "100", Points: 10},
		{UserID: "200", Points: 10},
		{UserID: "300", Points: 5},
	}, lb)
}

func TestPointsDal_GuildScoping(t *testing.T) {
	d := NewPointsDal(newTestDB(t), testLogger())
	ctx := context.Background()

	require.NoError(t, d.AddUserPoints(ctx, "guild-a", "user-1", 5))
	require.NoError(t, d.AddUserPoints(ctx, "guild-b", "user-1", 9))

	points, err := d.GetUserPoints(ctx, "guild-a", "user-1")
	require.NoError(t, err)
	require.Equal(t, 5, points)

	// Clearing one guild leaves the other untouched.
	require.NoError(t, d.ClearAllPoints(ctx, "guild-a"))

	lb, err := d.GetAllUserPoints(ctx, "guild-a")
	require.NoError(t, err)
	require.Empty(t, lb)

	points, err = d.GetUserPoints(ctx, "guild-b", "user-1")
	require.NoError(t, err)
	require.Equal(t, 9, points)
}

func TestPointsDal_RemoveUser(t *testing.T) {
	d := NewPointsDal(newTestDB(t), testLogger())
	ctx := context.Background()

	require.NoError(t, d.AddUserPoints(ctx, testGuild, "user-1", 5))
	require.NoError(t, d.AddUserPoints(ctx, testGuild, "user-2", 6))
	require.NoError(t, d.RemoveUser(ctx, testGuild, "user-1"))

	lb, err := d.GetAllUserPoints(ctx, testGuild)
	require.NoError(t, err)
	require.Equal(t, entities.Leaderboard{{UserID: "user-2", Points: 6}}, lb)
}
