package entities

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseConfigField(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    ConfigField
		wantErr bool
	}{
		{name: "Admin", token: "admin", want: ConfigFieldAdminRole},
		{name: "Staff", token: "staff", want: ConfigFieldStaffRole},
		{name: "TicketCategory", token: "ticket_category", want: ConfigFieldTicketCategory},
		{name: "TranscriptChannel", token: "transcript_channel", want: ConfigFieldTranscriptChannel},
		{name: "Unknown", token: "moderator", wantErr: true},
		{name: "Empty", token: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConfigField(tt.token)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownConfigField)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestConfigField_Patch(t *testing.T) {
	p := ConfigFieldStaffRole.Patch("12345")
	require.NotNil(t, p.StaffRoleID)
	require.Equal(t, "12345", *p.StaffRoleID)

	// Only the named field is set.
	require.Nil(t, p.AdminRoleID)
	require.Nil(t, p.TicketCategoryID)
	require.False(t, p.IsZero())
	require.True(t, (&ConfigPatch{}).IsZero())
}

func TestConfigField_IsRole(t *testing.T) {
	require.True(t, ConfigFieldAdminRole.IsRole())
	require.True(t, ConfigFieldRewardRole.IsRole())
	require.False(t, ConfigFieldTicketCategory.IsRole())
	require.False(t, ConfigFieldTranscriptChannel.IsRole())
}

func TestValidateCustomCommandName(t *testing.T) {
	require.NoError(t, ValidateCustomCommandName("rrules"))
	require.NoError(t, ValidateCustomCommandName("hrules"))
	require.NoError(t, ValidateCustomCommandName("proof"))
	require.ErrorIs(t, ValidateCustomCommandName("rules"), ErrUnknownCustomCommand)
}

func TestTicketCategory_ChannelName(t *testing.T) {
	c, ok := CategoryByName("Grim Express")
	require.True(t, ok)
	require.Equal(t, "grimchallenge-4", c.ChannelName(4))
}

func TestMergeCategoryOverrides(t *testing.T) {
	merged := MergeCategoryOverrides(
		map[string]int{"Grim Express": 20},
		map[string]int{"Grim Express": 2},
	)

	for _, c := range merged {
		if c.Name == "Grim Express" {
			require.Equal(t, 20, c.Points)
			require.Equal(t, 2, c.Slots)
			return
		}
	}
	t.Fatal("Grim Express missing from merged categories")
}
