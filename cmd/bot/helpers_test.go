package main

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/lynxbot/lynx/pkg/entities"
	"github.com/stretchr/testify/require"
)

func interactionWithMember(m *discordgo.Member) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Member: m,
		},
	}
}

func TestIsAdmin(t *testing.T) {
	cfg := &entities.GuildConfig{
		AdminRoleID: "role-admin",
		StaffRoleID: "role-staff",
	}

	tests := []struct {
		name   string
		member *discordgo.Member
		cfg    *entities.GuildConfig
		want   bool
	}{
		{
			name:   "native administrator permission",
			member: &discordgo.Member{Permissions: discordgo.PermissionAdministrator},
			cfg:    nil,
			want:   true,
		},
		{
			name:   "configured admin role",
			member: &discordgo.Member{Roles: []string{"role-admin"}},
			cfg:    cfg,
			want:   true,
		},
		{
			name:   "staff role is not admin",
			member: &discordgo.Member{Roles: []string{"role-staff"}},
			cfg:    cfg,
			want:   false,
		},
		{
			name:   "no roles",
			member: &discordgo.Member{},
			cfg:    cfg,
			want:   false,
		},
		{
			name:   "admin role unconfigured",
			member: &discordgo.Member{Roles: []string{"role-admin"}},
			cfg:    nil,
			want:   false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.want, isAdmin(interactionWithMember(test.member), test.cfg))
		})
	}
}

func TestIsStaffOrAdmin(t *testing.T) {
	cfg := &entities.GuildConfig{
		AdminRoleID: "role-admin",
		StaffRoleID: "role-staff",
	}

	require.True(t, isStaffOrAdmin(interactionWithMember(&discordgo.Member{Roles: []string{"role-staff"}}), cfg))
	require.True(t, isStaffOrAdmin(interactionWithMember(&discordgo.Member{Roles: []string{"role-admin"}}), cfg))
	require.False(t, isStaffOrAdmin(interactionWithMember(&discordgo.Member{Roles: []string{"role-other"}}), cfg))

	// An empty role binding never matches.
	require.False(t, isStaffOrAdmin(interactionWithMember(&discordgo.Member{Roles: []string{""}}), &entities.GuildConfig{}))
}

func TestModalInputValue(t *testing.T) {
	data := discordgo.ModalSubmitInteractionData{
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: "in_game_name", Value: "Lynx"},
				},
			},
			&discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: "server_name", Value: "Artix"},
				},
			},
		},
	}

	require.Equal(t, "Lynx", modalInputValue(data, 0))
	require.Equal(t, "Artix", modalInputValue(data, 1))

	// Out of range rows are empty, not a panic.
	require.Equal(t, "", modalInputValue(data, 5))
}
