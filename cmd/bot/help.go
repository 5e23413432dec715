package main

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

var helpCmd = &discordgo.ApplicationCommand{
	Name:        "help",
	Type:        discordgo.ChatApplicationCommand,
	Description: "Show all bot commands and help.",
}

func helpHandler(a IApp, i *discordgo.InteractionCreate) error {
	cfg, err := a.GuildConfigDal().GetConfig(context.Background(), i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting guild configuration: %w", err)
	}

	admin := isAdmin(i, cfg)
	staff := isStaffOrAdmin(i, cfg)

	ticketCommands := "`/panel` — Post the service panel (admin, staff)"

	pointsCommands := "`/leaderboard` — View top helpers\n" +
		"`/points [user]` — See someone's points\n" +
		"`/mypoints` — See your own points\n" +
		"`/myrank` — See your leaderboard rank\n" +
		"`/history [user]` — See a user's points history\n" +
		"`/pointsinfo` — Learn about the points system"
	if staff {
		pointsCommands += "\n`/addpoints user amount` — Add points (admin)\n" +
			"`/removepoints user amount` — Remove points (admin)\n" +
			"`/setpoints user amount` — Set points (admin)\n" +
			"`/removeuser user` — Remove user from leaderboard (admin)"
	}
	if admin {
		pointsCommands += "\n`/resetlb` — Reset entire leaderboard (admin)"
	}

	rulesCommands := "`/hrules` — Helper guidelines\n" +
		"`/rrules` — Requester guidelines\n" +
		"`/proof` — Proof requirements"
	if admin {
		rulesCommands += "\n`/setup binding` — Bind roles and channels (admin)\n" +
			"`/setup command` — Configure custom commands (admin)\n" +
			"`/setup reset` — Reset all server settings (admin)"
	}

	embed := &discordgo.MessageEmbed{
		Title:       "✨ Bot Commands & Help",
		Description: "Welcome! Here are all the commands you can use.",
		Color:       0x5865f2,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🎫 Ticket Commands", Value: ticketCommands, Inline: false},
			{Name: "📊 Points & Leaderboard", Value: pointsCommands, Inline: false},
			{Name: "📜 Rules & Setup", Value: rulesCommands, Inline: false},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Need more help? Contact a member of the staff team!",
		},
	}

	return respondEphemeralEmbed(a, i, embed)
}
