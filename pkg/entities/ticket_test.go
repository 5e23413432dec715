package entities

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTicket_AddHelper(t *testing.T) {
	tests := []struct {
		name     string
		helpers  []string
		capacity int
		userID   string
		wantErr  error
		want     []string
	}{
		{
			name:     "FirstHelper",
			helpers:  nil,
			capacity: 3,
			userID:   "100",
			want:     []string{"100"},
		},
		{
			name:     "AlreadyHelping",
			helpers:  []string{"100"},
			capacity: 3,
			userID:   "100",
			wantErr:  ErrAlreadyHelping,
			want:     []string{"100"},
		},
		{
			name:     "Full",
			helpers:  []string{"100", "101", "102"},
			capacity: 3,
			userID:   "103",
			wantErr:  ErrTicketFull,
			want:     []string{"100", "101", "102"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket := &Ticket{Helpers: tt.helpers}
			err := ticket.AddHelper(tt.userID, tt.capacity)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.want, ticket.Helpers)
		})
	}
}

func TestTicket_RemoveHelper(t *testing.T) {
	ticket := &Ticket{Helpers: []string{"100", "101", "102"}}

	require.NoError(t, ticket.RemoveHelper("101"))
	require.Equal(t, []string{"100", "102"}, ticket.Helpers)

	// Removing a non-helper is rejected and the roster is unchanged.
	require.ErrorIs(t, ticket.RemoveHelper("999"), ErrNotHelping)
	require.Equal(t, []string{"100", "102"}, ticket.Helpers)
}

func TestHelpersRoundTrip(t *testing.T) {
	require.Equal(t, "100,101", JoinHelpers([]string{"100", "101"}))
	require.Equal(t, []string{"100", "101"}, SplitHelpers("100,101"))

	// The empty string is an empty roster.
	require.Nil(t, SplitHelpers(""))
	require.Equal(t, "", JoinHelpers(nil))
}
