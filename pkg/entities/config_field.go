package entities

import "fmt"

// ConfigField enumerates the updatable guild configuration bindings. Setup
// input tokens are mapped through this enum rather than straight into column
// names.
type ConfigField int

const (
	ConfigFieldAdminRole ConfigField = iota
	ConfigFieldStaffRole
	ConfigFieldHelperRole
	ConfigFieldViewerRole
	ConfigFieldBlockedRole
	ConfigFieldRewardRole
	ConfigFieldTicketCategory
	ConfigFieldTranscriptChannel
)

// configFieldTokens maps the user-entered binding token to its field.
var configFieldTokens = map[string]ConfigField{
	"admin":              ConfigFieldAdminRole,
	"staff":              ConfigFieldStaffRole,
	"helper":             ConfigFieldHelperRole,
	"viewer":             ConfigFieldViewerRole,
	"blocked":            ConfigFieldBlockedRole,
	"reward":             ConfigFieldRewardRole,
	"ticket_category":    ConfigFieldTicketCategory,
	"transcript_channel": ConfigFieldTranscriptChannel,
}

// ParseConfigField maps a binding token to its field. Unknown tokens are a
// validation error.
func ParseConfigField(token string) (ConfigField, error) {
	f, ok := configFieldTokens[token]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownConfigField, token)
	}
	return f, nil
}

// String implements the fmt.Stringer interface.
func (f ConfigField) String() string {
	for token, field := range configFieldTokens {
		if field == f {
			return token
		}
	}
	return fmt.Sprintf("ConfigField(%d)", int(f))
}

// IsRole reports whether the field binds a role rather than a channel.
func (f ConfigField) IsRole() bool {
	switch f {
	case ConfigFieldTicketCategory, ConfigFieldTranscriptChannel:
		return false
	default:
		return true
	}
}

// Patch builds a patch that sets just this field to the given ID.
func (f ConfigField) Patch(id string) *ConfigPatch {
	p := new(ConfigPatch)
	switch f {
	case ConfigFieldAdminRole:
		p.AdminRoleID = &id
	case ConfigFieldStaffRole:
		p.StaffRoleID = &id
	case ConfigFieldHelperRole:
		p.HelperRoleID = &id
	case ConfigFieldViewerRole:
		p.ViewerRoleID = &id
	case ConfigFieldBlockedRole:
		p.BlockedRoleID = &id
	case ConfigFieldRewardRole:
		p.RewardRoleID = &id
	case ConfigFieldTicketCategory:
		p.TicketCategoryID = &id
	case ConfigFieldTranscriptChannel:
		p.TranscriptChannelID = &id
	}
	return p
}
