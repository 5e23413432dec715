package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/lynxbot/lynx/pkg/entities"
)

const (
	// PanelSelectID is the custom ID of the panel's category select menu.
	PanelSelectID = "ticket_panel"

	// TicketIntakeModalID is the custom ID prefix of the intake modal. The
	// category name is carried as the argument.
	TicketIntakeModalID = "ticket_intake"
)

var panelCmd = &discordgo.ApplicationCommand{
	Name:        "panel",
	Type:        discordgo.ChatApplicationCommand,
	Description: "Post the service panel for creating help tickets.",
}

// guildCategories returns the service categories with any per-guild point and
// slot overrides applied.
func guildCategories(ctx context.Context, a IApp, guildID string) ([]entities.TicketCategory, error) {
	points, err := a.TicketConfigDal().GetPointValues(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("error getting point values: %w", err)
	}
	slots, err := a.TicketConfigDal().GetHelperSlots(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("error getting helper slots: %w", err)
	}
	return entities.MergeCategoryOverrides(points, slots), nil
}

func panelHandler(a IApp, i *discordgo.InteractionCreate) error {
	ok, err := requireStaffOrAdmin(a, i)
	if err != nil || !ok {
		return err
	}

	categories, err := guildCategories(context.Background(), a, i.GuildID)
	if err != nil {
		return err
	}

	var services strings.Builder
	options := make([]discordgo.SelectMenuOption, 0, len(categories))
	for _, c := range categories {
		fmt.Fprintf(&services, "- %s — %d points\n", c.Name, c.Points)
		options = append(options, discordgo.SelectMenuOption{
			Label: c.Name,
			Value: c.Name,
			Emoji: &discordgo.ComponentEmoji{Name: "🎫"},
		})
	}

	embed := &discordgo.MessageEmbed{
		Title: "🎮 In-game Assistance",
		Description: "Select a service below to create a help ticket. Our helpers will assist you!\n\n" +
			"### 📜 Guidelines & Rules\nUse the `/hrules`, `/rrules`, and `/proof` commands.\n" +
			"### 📋 Available Services\n" + services.String() +
			"### ℹ️ How it works\n" +
			"1. Select a service\n" +
			"2. Fill out the form\n" +
			"3. Wait for helpers to join\n" +
			"4. Get help in your private ticket!",
		Color: 0x9b59b6,
	}

	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.SelectMenu{
							MenuType:    discordgo.StringSelectMenu,
							CustomID:    PanelSelectID,
							Placeholder: "Choose a ticket type...",
							Options:     options,
						},
					},
				},
			},
		},
	})
}

// panelSelectHandler opens the intake modal for the selected category.
func panelSelectHandler(a IApp, i *discordgo.InteractionCreate) error {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return fmt.Errorf("no category selected")
	}
	category := values[0]

	if _, ok := entities.CategoryByName(category); !ok {
		return fmt.Errorf("unknown ticket category %q", category)
	}

	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: fmt.Sprintf("%s:%s", TicketIntakeModalID, category),
			Title:    fmt.Sprintf("%s Ticket Form", category),
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "in_game_name",
							Label:       "In-game name?",
							Placeholder: "Enter your in-game name",
							Style:       discordgo.TextInputShort,
							Required:    true,
						},
					},
				},
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "server_name",
							Label:       "Server name?",
							Placeholder: "Enter your server",
							Style:       discordgo.TextInputShort,
							Required:    true,
						},
					},
				},
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "room_number",
							Label:       "Room number?",
							Placeholder: "Enter room number",
							Style:       discordgo.TextInputShort,
							Required:    true,
						},
					},
				},
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "additional_info",
							Label:       "Additional info (optional)",
							Placeholder: "Any extra info...",
							Style:       discordgo.TextInputParagraph,
							Required:    false,
						},
					},
				},
			},
		},
	})
}
