package entities

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLeaderboard_Sort(t *testing.T) {
	l := Leaderboard{
		{UserID: "300", Points: 5},
		{UserID: "100", Points: 10},
		{UserID: "200", Points: 10},
	}
	l.Sort()

	// Points descending; equal balances ordered by user ID.
	require.Equal(t, Leaderboard{
		{UserID: "100", Points: 10},
		{UserID: "200", Points: 10},
		{UserID: "300", Points: 5},
	}, l)
}

func TestLeaderboard_Rank(t *testing.T) {
	l := Leaderboard{
		{UserID: "100", Points: 10},
		{UserID: "200", Points: 10},
		{UserID: "300", Points: 5},
	}

	tests := []struct {
		name   string
		userID string
		want   int
	}{
		{name: "Top", userID: "100", want: 1},
		{name: "TiedBalancesShareRank", userID: "200", want: 1},
		{name: "Third", userID: "300", want: 3},
		{name: "Unranked", userID: "999", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, l.Rank(tt.userID))
		})
	}
}
