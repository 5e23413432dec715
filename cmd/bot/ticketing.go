package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/lynxbot/lynx/pkg/entities"
	"github.com/lynxbot/lynx/pkg/logging"
	"github.com/lynxbot/lynx/pkg/messages"
)

const (
	// JoinTicketID is the custom ID of the join-as-helper button.
	JoinTicketID = "ticket_join"

	// LeaveTicketID is the custom ID of the leave button.
	LeaveTicketID = "ticket_leave"

	// RemoveHelperID is the custom ID of the remove-helper button.
	RemoveHelperID = "ticket_remove"

	// RemoveHelperPickID is the custom ID of the remove-helper select menu.
	RemoveHelperPickID = "ticket_remove_pick"

	// CloseTicketID is the custom ID of the close button.
	CloseTicketID = "ticket_close"

	// rosterFieldName is the name of the helpers field on the intake embed.
	rosterFieldName = "👥 Helpers"

	// channelDeleteDelay is the grace period between the close ack and the
	// channel deletion.
	channelDeleteDelay = 5 * time.Second
)

// ticketButtons are the controls on every intake message.
var ticketButtons = discordgo.ActionsRow{
	Components: []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "Join as Helper",
			Style:    discordgo.SuccessButton,
			Emoji:    &discordgo.ComponentEmoji{Name: "🙋"},
			CustomID: JoinTicketID,
		},
		discordgo.Button{
			Label:    "Leave Ticket",
			Style:    discordgo.SecondaryButton,
			Emoji:    &discordgo.ComponentEmoji{Name: "👋"},
			CustomID: LeaveTicketID,
		},
		discordgo.Button{
			Label:    "Remove Helper",
			Style:    discordgo.DangerButton,
			Emoji:    &discordgo.ComponentEmoji{Name: "🗑️"},
			CustomID: RemoveHelperID,
		},
		discordgo.Button{
			Label:    "Close Ticket",
			Style:    discordgo.DangerButton,
			Emoji:    &discordgo.ComponentEmoji{Name: "🔒"},
			CustomID: CloseTicketID,
		},
	},
}

// ticketCategory resolves a category name against the guild's overrides.
func ticketCategory(ctx context.Context, a IApp, guildID, name string) (entities.TicketCategory, error) {
	categories, err := guildCategories(ctx, a, guildID)
	if err != nil {
		return entities.TicketCategory{}, err
	}
	for _, c := range categories {
		if c.Name == name {
			return c, nil
		}
	}
	return entities.TicketCategory{}, fmt.Errorf("unknown ticket category %q", name)
}

// rosterFieldValue renders the roster as a numbered slot list.
func rosterFieldValue(helpers []string, slots int) string {
	var b strings.Builder
	for n := 1; n <= slots; n++ {
		if n > 1 {
			b.WriteString("\n")
		}
		if n <= len(helpers) {
			fmt.Fprintf(&b, "%d. <@%s>", n, helpers[n-1])
		} else {
			fmt.Fprintf(&b, "%d. [Empty]", n)
		}
	}
	return b.String()
}

// ticketIntakeHandler creates a ticket from a submitted intake form.
func ticketIntakeHandler(a IApp, i *discordgo.InteractionCreate) error {
	ctx := context.Background()
	data := i.ModalSubmitData()

	category, err := ticketCategory(ctx, a, i.GuildID, customIDArg(data.CustomID))
	if err != nil {
		return err
	}

	// The intake category must be bound before tickets can be created.
	cfg, err := a.GuildConfigDal().GetConfig(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting guild configuration: %w", err)
	}
	if cfg == nil || cfg.TicketCategoryID == "" {
		return respondSlashEphemeral(a, i, messages.ErrTicketCategoryNotConfigured)
	}

	// Channel creation involves several API round trips, so acknowledge the
	// modal first.
	if err := deferEphemeral(a, i); err != nil {
		return fmt.Errorf("error deferring interaction: %w", err)
	}

	number, err := a.TicketDal().NextTicketNumber(ctx, i.GuildID, category.Name)
	if err != nil {
		return fmt.Errorf("error allocating ticket number: %w", err)
	}

	// Only the creator, the bot, and the configured admin/staff roles can
	// see the ticket.
	allowText := int64(discordgo.PermissionViewChannel | discordgo.PermissionSendMessages)
	overwrites := []*discordgo.PermissionOverwrite{
		{
			ID:   i.GuildID,
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: int64(discordgo.PermissionViewChannel),
		},
		{
			ID:    i.Member.User.ID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: allowText,
		},
		{
			ID:    a.Session().State.User.ID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: allowText | int64(discordgo.PermissionManageMessages|discordgo.PermissionManageChannels),
		},
	}
	if cfg.AdminRoleID != "" {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    cfg.AdminRoleID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: allowText | int64(discordgo.PermissionManageMessages),
		})
	}
	if cfg.StaffRoleID != "" {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    cfg.StaffRoleID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: allowText,
		})
	}

	channel, err := a.Session().GuildChannelCreateComplex(i.GuildID, discordgo.GuildChannelCreateData{
		Name:                 category.ChannelName(number),
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                fmt.Sprintf("%s ticket created by %s", category.Name, i.Member.User.Username),
		ParentID:             cfg.TicketCategoryID,
		PermissionOverwrites: overwrites,
	})
	if err != nil {
		return fmt.Errorf("error creating ticket channel: %w", err)
	}

	ticket := &entities.Ticket{
		GuildID:   i.GuildID,
		ChannelID: channel.ID,
		CreatorID: i.Member.User.ID,
		Type:      category.Name,
		Number:    number,
	}
	if err := a.TicketDal().SaveActiveTicket(ctx, ticket); err != nil {
		return fmt.Errorf("error saving active ticket: %w", err)
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🎫 %s Ticket #%d", category.Name, number),
		Color: 0x2ecc71,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "👤 Created by", Value: fmt.Sprintf("<@%s>", ticket.CreatorID), Inline: true},
		},
	}
	intake := []struct {
		name string
		row  int
	}{
		{"In-game Name", 0},
		{"Server Name", 1},
		{"Room Number", 2},
		{"Additional Info", 3},
	}
	for _, f := range intake {
		if v := modalInputValue(data, f.row); v != "" {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:   f.name,
				Value:  v,
				Inline: true,
			})
		}
	}
	embed.Fields = append(embed.Fields,
		&discordgo.MessageEmbedField{Name: rosterFieldName, Value: rosterFieldValue(nil, category.Slots), Inline: false},
		&discordgo.MessageEmbedField{Name: "🏆 Points Value", Value: fmt.Sprintf("%d points", category.Points), Inline: true},
	)

	msg, err := a.Session().ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Content:    fmt.Sprintf("Hello <@%s>! Your **%s** ticket has been created.", ticket.CreatorID, category.Name),
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{ticketButtons},
	})
	if err != nil {
		return fmt.Errorf("error sending intake message: %w", err)
	}

	ticket.MessageID = msg.ID
	if err := a.TicketDal().UpdateTicketMessage(ctx, i.GuildID, channel.ID, msg.ID); err != nil {
		return fmt.Errorf("error saving intake message ID: %w", err)
	}

	a.Tickets().put(channel.ID, ticket)

	return followupEphemeral(a, i, fmt.Sprintf("✅ Ticket created: <#%s>", channel.ID))
}

// updateRosterMessage rewrites the helpers field on the intake embed.
func updateRosterMessage(a IApp, ticket *entities.Ticket, slots int) error {
	msg, err := a.Session().ChannelMessage(ticket.ChannelID, ticket.MessageID)
	if err != nil {
		return fmt.Errorf("error getting intake message: %w", err)
	}
	if len(msg.Embeds) == 0 {
		return fmt.Errorf("intake message has no embed")
	}

	embeds := msg.Embeds
	for _, f := range embeds[0].Fields {
		if f.Name == rosterFieldName {
			f.Value = rosterFieldValue(ticket.Helpers, slots)
			break
		}
	}

	_, err = a.Session().ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel: ticket.ChannelID,
		ID:      ticket.MessageID,
		Embeds:  &embeds,
	})
	if err != nil {
		return fmt.Errorf("error editing intake message: %w", err)
	}
	return nil
}

func joinTicketHandler(a IApp, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	st := a.Tickets().state(i.ChannelID)
	st.mu.Lock()
	defer st.mu.Unlock()

	ticket, err := st.load(ctx, a, i.GuildID, i.ChannelID)
	if err != nil {
		return fmt.Errorf("error loading ticket: %w", err)
	}
	if ticket == nil {
		return respondSlashEphemeral(a, i, messages.ErrNotActiveTicket)
	}

	category, err := ticketCategory(ctx, a, i.GuildID, ticket.Type)
	if err != nil {
		return err
	}

	switch err := ticket.AddHelper(i.Member.User.ID, category.Slots); {
	case errors.Is(err, entities.ErrAlreadyHelping):
		return respondSlashEphemeral(a, i, messages.ErrAlreadyHelping)
	case errors.Is(err, entities.ErrTicketFull):
		return respondSlashEphemeral(a, i, messages.ErrTicketFull)
	case err != nil:
		return err
	}

	allowText := int64(discordgo.PermissionViewChannel | discordgo.PermissionSendMessages)
	if err := a.Session().ChannelPermissionSet(i.ChannelID, i.Member.User.ID, discordgo.PermissionOverwriteTypeMember, allowText, 0); err != nil {
		return fmt.Errorf("error granting channel permission: %w", err)
	}

	if err := a.TicketDal().UpdateTicketHelpers(ctx, i.GuildID, i.ChannelID, ticket.Helpers); err != nil {
		return fmt.Errorf("error persisting roster: %w", err)
	}

	if err := updateRosterMessage(a, ticket, category.Slots); err != nil {
		a.Log().Error("Error updating roster message", slog.String(logging.KeyError, err.Error()))
	}

	return respondSlashEphemeral(a, i, "✅ "+messages.TicketJoined)
}

func leaveTicketHandler(a IApp, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	st := a.Tickets().state(i.ChannelID)
	st.mu.Lock()
	defer st.mu.Unlock()

	ticket, err := st.load(ctx, a, i.GuildID, i.ChannelID)
	if err != nil {
		return fmt.Errorf("error loading ticket: %w", err)
	}
	if ticket == nil {
		return respondSlashEphemeral(a, i, messages.ErrNotActiveTicket)
	}

	if err := ticket.RemoveHelper(i.Member.User.ID); err != nil {
		if errors.Is(err, entities.ErrNotHelping) {
			return respondSlashEphemeral(a, i, messages.ErrNotHelping)
		}
		return err
	}

	if err := a.Session().ChannelPermissionDelete(i.ChannelID, i.Member.User.ID); err != nil {
		return fmt.Errorf("error revoking channel permission: %w", err)
	}

	if err := a.TicketDal().UpdateTicketHelpers(ctx, i.GuildID, i.ChannelID, ticket.Helpers); err != nil {
		return fmt.Errorf("error persisting roster: %w", err)
	}

	category, err := ticketCategory(ctx, a, i.GuildID, ticket.Type)
	if err != nil {
		return err
	}
	if err := updateRosterMessage(a, ticket, category.Slots); err != nil {
		a.Log().Error("Error updating roster message", slog.String(logging.KeyError, err.Error()))
	}

	return respondSlashEphemeral(a, i, "👋 "+messages.TicketLeft)
}

// removeHelperHandler presents a staff-only selection of the current roster.
func removeHelperHandler(a IApp, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	cfg, err := a.GuildConfigDal().GetConfig(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting guild configuration: %w", err)
	}
	if !isStaffOrAdmin(i, cfg) {
		return respondSlashEphemeral(a, i, messages.ErrRemoveNotPermitted)
	}

	st := a.Tickets().state(i.ChannelID)
	st.mu.Lock()
	defer st.mu.Unlock()

	ticket, err := st.load(ctx, a, i.GuildID, i.ChannelID)
	if err != nil {
		return fmt.Errorf("error loading ticket: %w", err)
	}
	if ticket == nil {
		return respondSlashEphemeral(a, i, messages.ErrNotActiveTicket)
	}
	if len(ticket.Helpers) == 0 {
		return respondSlashEphemeral(a, i, messages.ErrNoHelpersToRemove)
	}

	options := make([]discordgo.SelectMenuOption, 0, len(ticket.Helpers))
	for _, helperID := range ticket.Helpers {
		label := helperID
		if member, err := a.Session().GuildMember(i.GuildID, helperID); err == nil {
			label = member.User.Username
			if member.Nick != "" {
				label = member.Nick
			}
		}
		options = append(options, discordgo.SelectMenuOption{
			Label: label,
			Value: helperID,
		})
	}

	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "Select helper to remove:",
			Flags:   discordgo.MessageFlagsEphemeral,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.SelectMenu{
							MenuType:    discordgo.StringSelectMenu,
							CustomID:    RemoveHelperPickID,
							Placeholder: "Choose a helper to remove...",
							Options:     options,
						},
					},
				},
			},
		},
	})
}

func removeHelperPickHandler(a IApp, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	cfg, err := a.GuildConfigDal().GetConfig(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting guild configuration: %w", err)
	}
	if !isStaffOrAdmin(i, cfg) {
		return respondSlashEphemeral(a, i, messages.ErrRemoveNotPermitted)
	}

	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return fmt.Errorf("no helper selected")
	}
	helperID := values[0]

	st := a.Tickets().state(i.ChannelID)
	st.mu.Lock()
	defer st.mu.Unlock()

	ticket, err := st.load(ctx, a, i.GuildID, i.ChannelID)
	if err != nil {
		return fmt.Errorf("error loading ticket: %w", err)
	}
	if ticket == nil {
		return respondSlashEphemeral(a, i, messages.ErrNotActiveTicket)
	}

	if err := ticket.RemoveHelper(helperID); err != nil {
		if errors.Is(err, entities.ErrNotHelping) {
			// The roster changed since the selection was offered.
			return respondSlashEphemeral(a, i, messages.ErrNotHelping)
		}
		return err
	}

	if err := a.Session().ChannelPermissionDelete(i.ChannelID, helperID); err != nil {
		return fmt.Errorf("error revoking channel permission: %w", err)
	}

	if err := a.TicketDal().UpdateTicketHelpers(ctx, i.GuildID, i.ChannelID, ticket.Helpers); err != nil {
		return fmt.Errorf("error persisting roster: %w", err)
	}

	category, err := ticketCategory(ctx, a, i.GuildID, ticket.Type)
	if err != nil {
		return err
	}
	if err := updateRosterMessage(a, ticket, category.Slots); err != nil {
		a.Log().Error("Error updating roster message", slog.String(logging.KeyError, err.Error()))
	}

	return updateComponentMessage(a, i, fmt.Sprintf("✅ Removed <@%s> from the ticket.", helperID))
}

// closeTicketHandler settles points, exports the transcript, and tears the
// channel down.
func closeTicketHandler(a IApp, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	cfg, err := a.GuildConfigDal().GetConfig(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting guild configuration: %w", err)
	}

	st := a.Tickets().state(i.ChannelID)
	st.mu.Lock()
	defer st.mu.Unlock()

	ticket, err := st.load(ctx, a, i.GuildID, i.ChannelID)
	if err != nil {
		return fmt.Errorf("error loading ticket: %w", err)
	}
	if ticket == nil {
		return respondSlashEphemeral(a, i, messages.ErrNotActiveTicket)
	}

	// Only the ticket owner or staff/admin can close.
	if i.Member.User.ID != ticket.CreatorID && !isStaffOrAdmin(i, cfg) {
		return respondSlashEphemeral(a, i, messages.ErrCloseNotPermitted)
	}

	category, err := ticketCategory(ctx, a, i.GuildID, ticket.Type)
	if err != nil {
		return err
	}

	// Credit every helper on the roster.
	for _, helperID := range ticket.Helpers {
		if err := a.PointsDal().AddUserPoints(ctx, i.GuildID, helperID, category.Points); err != nil {
			return fmt.Errorf("error crediting helper %s: %w", helperID, err)
		}
	}

	// The transcript is best effort; a failed export never blocks the close.
	if err := saveTranscript(ctx, a, ticket, cfg, i.Member.User.ID); err != nil {
		a.Log().Error("Error saving transcript",
			slog.String(logging.KeyError, err.Error()),
			slog.String(logging.KeyChannel, ticket.ChannelID),
		)
	}

	if err := a.TicketDal().RemoveActiveTicket(ctx, i.GuildID, i.ChannelID); err != nil {
		return fmt.Errorf("error removing active ticket: %w", err)
	}
	a.Tickets().forget(i.ChannelID)

	if err := respondSlashEphemeral(a, i,
		fmt.Sprintf("🔒 Ticket closed! %d helpers awarded %d points each.", len(ticket.Helpers), category.Points)); err != nil {
		return fmt.Errorf("error responding to interaction: %w", err)
	}

	// Delete the channel after a grace delay so the ack can be seen.
	go func(channelID string) {
		time.Sleep(channelDeleteDelay)
		if _, err := a.Session().ChannelDelete(channelID); err != nil {
			a.Log().Error("Error deleting ticket channel",
				slog.String(logging.KeyError, err.Error()),
				slog.String(logging.KeyChannel, channelID),
			)
		}
	}(i.ChannelID)

	return nil
}
