package main

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/lynxbot/lynx/pkg/entities"
	"github.com/lynxbot/lynx/pkg/messages"
)

func respondSlashError(a IApp, i *discordgo.InteractionCreate) error {
	return respondSlashEphemeral(a, i, messages.ErrUserErrorProcessing)
}

func respondSlashEphemeral(a IApp, i *discordgo.InteractionCreate, content string) error {
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func respondEmbed(a IApp, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

func respondEphemeralEmbed(a IApp, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

// deferEphemeral acknowledges an interaction so that a slower follow-up can
// be sent later.
func deferEphemeral(a IApp, i *discordgo.InteractionCreate) error {
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
}

func followupEphemeral(a IApp, i *discordgo.InteractionCreate, content string) error {
	_, err := a.Session().FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	return err
}

// updateComponentMessage edits the message that a component interaction came
// from, dropping its components.
func updateComponentMessage(a IApp, i *discordgo.InteractionCreate, content string) error {
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: []discordgo.MessageComponent{},
		},
	})
}

func memberHasRole(m *discordgo.Member, roleID string) bool {
	if m == nil || roleID == "" {
		return false
	}
	for _, r := range m.Roles {
		if r == roleID {
			return true
		}
	}
	return false
}

// isAdmin reports whether the member has the native administrator permission
// or the configured admin role.
func isAdmin(i *discordgo.InteractionCreate, cfg *entities.GuildConfig) bool {
	if i.Member == nil {
		return false
	}
	if i.Member.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}
	if cfg == nil {
		return false
	}
	return memberHasRole(i.Member, cfg.AdminRoleID)
}

// isStaffOrAdmin reports whether the member is an admin or holds the
// configured staff role.
func isStaffOrAdmin(i *discordgo.InteractionCreate, cfg *entities.GuildConfig) bool {
	if isAdmin(i, cfg) {
		return true
	}
	if cfg == nil {
		return false
	}
	return memberHasRole(i.Member, cfg.StaffRoleID)
}

// requireAdmin checks the caller against the guild configuration, responding
// with a denial when the check fails. The boolean reports whether the caller
// may proceed.
func requireAdmin(a IApp, i *discordgo.InteractionCreate) (bool, error) {
	cfg, err := a.GuildConfigDal().GetConfig(context.Background(), i.GuildID)
	if err != nil {
		return false, fmt.Errorf("error getting guild configuration: %w", err)
	}
	if !isAdmin(i, cfg) {
		return false, respondSlashEphemeral(a, i, messages.ErrAdminOnly)
	}
	return true, nil
}

func requireStaffOrAdmin(a IApp, i *discordgo.InteractionCreate) (bool, error) {
	cfg, err := a.GuildConfigDal().GetConfig(context.Background(), i.GuildID)
	if err != nil {
		return false, fmt.Errorf("error getting guild configuration: %w", err)
	}
	if !isStaffOrAdmin(i, cfg) {
		return false, respondSlashEphemeral(a, i, messages.ErrStaffOnly)
	}
	return true, nil
}

// commandOptions maps the options of a slash command by name.
func commandOptions(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, o := range opts {
		m[o.Name] = o
	}
	return m
}

// modalInputValue extracts the text input value from the given row of a
// modal submission.
func modalInputValue(data discordgo.ModalSubmitInteractionData, row int) string {
	if row >= len(data.Components) {
		return ""
	}
	r, ok := data.Components[row].(*discordgo.ActionsRow)
	if !ok || len(r.Components) == 0 {
		return ""
	}
	in, ok := r.Components[0].(*discordgo.TextInput)
	if !ok {
		return ""
	}
	return in.Value
}
