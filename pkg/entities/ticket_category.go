package entities

import "fmt"

// TicketCategory is a named class of help request with its own point award
// and helper-slot capacity.
type TicketCategory struct {
	// Name is the display name shown in the panel.
	Name string `json:"name"`

	// Slug is the channel name prefix for tickets of this category.
	Slug string `json:"slug"`

	// Points is the award credited to each helper when the ticket closes.
	Points int `json:"points"`

	// Slots is the helper roster capacity.
	Slots int `json:"slots"`
}

// ChannelName builds the ticket channel name for the given ticket number.
func (c TicketCategory) ChannelName(number int) string {
	return fmt.Sprintf("%s-%d", c.Slug, number)
}

// DefaultCategories are the built-in service categories. Point values and
// slot counts can be overridden per guild through the store.
var DefaultCategories = []TicketCategory{
	{Name: "Ultra Speaker Express", Slug: "ultra-speaker", Points: 8, Slots: 3},
	{Name: "Ultra Gramiel Express", Slug: "ultra-gramiel", Points: 7, Slots: 3},
	{Name: "4-Man Ultra Daily Express", Slug: "4-man-daily", Points: 4, Slots: 3},
	{Name: "7-Man Ultra Daily Express", Slug: "7-man-daily", Points: 7, Slots: 6},
	{Name: "Ultra Weekly Express", Slug: "weekly-ultra", Points: 12, Slots: 3},
	{Name: "Grim Express", Slug: "grimchallenge", Points: 10, Slots: 6},
	{Name: "Daily Temple Express", Slug: "templeshrine", Points: 6, Slots: 3},
}

// CategoryByName finds a built-in category by display name.
func CategoryByName(name string) (TicketCategory, bool) {
	for _, c := range DefaultCategories {
		if c.Name == name {
			return c, true
		}
	}
	return TicketCategory{}, false
}

// MergeCategoryOverrides applies per-guild point and slot overrides on top of
// the defaults. Missing overrides leave the default in place.
func MergeCategoryOverrides(points, slots map[string]int) []TicketCategory {
	merged := make([]TicketCategory, len(DefaultCategories))
	copy(merged, DefaultCategories)
	for i := range merged {
		if p, ok := points[merged[i].Name]; ok {
			merged[i].Points = p
		}
		if s, ok := slots[merged[i].Name]; ok {
			merged[i].Slots = s
		}
	}
	return merged
}
