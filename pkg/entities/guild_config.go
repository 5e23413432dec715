package entities

import "github.com/lynxbot/lynx/pkg/custom"

// GuildConfig is the per-guild configuration. Every field except the guild ID
// is optional; an empty string means the binding has not been set.
type GuildConfig struct {
	// GuildID is the ID of the guild.
	GuildID string `json:"guild_id"`

	// AdminRoleID is the role treated as bot administrators.
	AdminRoleID string `json:"admin_role_id"`

	// StaffRoleID is the role treated as staff.
	StaffRoleID string `json:"staff_role_id"`

	// HelperRoleID is the role given to helpers.
	HelperRoleID string `json:"helper_role_id"`

	// ViewerRoleID is the role allowed to view tickets without helping.
	ViewerRoleID string `json:"viewer_role_id"`

	// BlockedRoleID is the role blocked from opening tickets.
	BlockedRoleID string `json:"blocked_role_id"`

	// RewardRoleID is the role granted for reward milestones.
	RewardRoleID string `json:"reward_role_id"`

	// TicketCategoryID is the channel category that new ticket channels are
	// created under.
	TicketCategoryID string `json:"ticket_category_id"`

	// TranscriptChannelID is the channel that ticket transcripts are posted
	// to.
	TranscriptChannelID string `json:"transcript_channel_id"`

	// CreatedAt is when the row was first written.
	CreatedAt custom.Datetime `json:"created_at"`

	// UpdatedAt is bumped on every update.
	UpdatedAt custom.Datetime `json:"updated_at"`
}

// ConfigPatch names exactly the fields an update should touch. A nil field is
// left untouched; a pointer to the empty string clears the binding.
type ConfigPatch struct {
	AdminRoleID         *string
	StaffRoleID         *string
	HelperRoleID        *string
	ViewerRoleID        *string
	BlockedRoleID       *string
	RewardRoleID        *string
	TicketCategoryID    *string
	TranscriptChannelID *string
}

// IsZero reports whether the patch touches no fields.
func (p *ConfigPatch) IsZero() bool {
	return p == nil ||
		(p.AdminRoleID == nil &&
			p.StaffRoleID == nil &&
			p.HelperRoleID == nil &&
			p.ViewerRoleID == nil &&
			p.BlockedRoleID == nil &&
			p.RewardRoleID == nil &&
			p.TicketCategoryID == nil &&
			p.TranscriptChannelID == nil)
}
