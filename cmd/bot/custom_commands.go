package main

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/lynxbot/lynx/pkg/entities"
	"github.com/lynxbot/lynx/pkg/messages"
)

var (
	rrulesCmd = &discordgo.ApplicationCommand{
		Name:        "rrules",
		Type:        discordgo.ChatApplicationCommand,
		Description: "Display the rules for requesters.",
	}

	hrulesCmd = &discordgo.ApplicationCommand{
		Name:        "hrules",
		Type:        discordgo.ChatApplicationCommand,
		Description: "Display the rules for helpers.",
	}

	proofCmd = &discordgo.ApplicationCommand{
		Name:        "proof",
		Type:        discordgo.ChatApplicationCommand,
		Description: "Display the proof submission instructions.",
	}
)

func rrulesHandler(a IApp, i *discordgo.InteractionCreate) error {
	return renderCustomCommand(a, i, entities.CustomCommandRunnerRules, "📜 Runner Rules", 0x3498db)
}

func hrulesHandler(a IApp, i *discordgo.InteractionCreate) error {
	return renderCustomCommand(a, i, entities.CustomCommandHelperRules, "📋 Helper Rules", 0x2ecc71)
}

func proofHandler(a IApp, i *discordgo.InteractionCreate) error {
	return renderCustomCommand(a, i, entities.CustomCommandProof, "📸 Proof Submission", 0xf1c40f)
}

// renderCustomCommand renders the stored snippet for the given name. An
// unconfigured snippet is an informational "run setup" response, not a fault.
func renderCustomCommand(a IApp, i *discordgo.InteractionCreate, name, title string, color int) error {
	cmd, err := a.CustomCommandDal().GetCustomCommand(context.Background(), i.GuildID, name)
	if err != nil {
		return fmt.Errorf("error getting custom command: %w", err)
	}
	if cmd == nil {
		return respondSlashEphemeral(a, i, messages.CustomCommandNotConfigured(title))
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: cmd.Content,
		Color:       color,
	}
	if cmd.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{
			URL: cmd.ImageURL,
		}
	}
	return respondEmbed(a, i, embed)
}
