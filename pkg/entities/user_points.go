package entities

import "sort"

// UserPoints is a single per-guild, per-user point balance.
type UserPoints struct {
	// UserID is the ID of the user.
	UserID string `json:"user_id"`

	// Points is the non-negative balance.
	Points int `json:"points"`
}

// Leaderboard is a set of balances for one guild.
type Leaderboard []UserPoints

// Sort orders the leaderboard by points descending. Ties are broken by user
// ID ascending so that the ordering is deterministic.
func (l Leaderboard) Sort() {
	sort.Slice(l, func(i, j int) bool {
		if l[i].Points != l[j].Points {
			return l[i].Points > l[j].Points
		}
		return l[i].UserID < l[j].UserID
	})
}

// Rank returns the user's 1-based rank: one more than the number of users
// with a strictly greater balance, so tied balances share a rank. Returns 0
// when the user has no balance row.
func (l Leaderboard) Rank(userID string) int {
	var points int
	found := false
	for _, e := range l {
		if e.UserID == userID {
			points = e.Points
			found = true
			break
		}
	}
	if !found {
		return 0
	}

	rank := 1
	for _, e := range l {
		if e.Points > points {
			rank++
		}
	}
	return rank
}
