package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/lynxbot/lynx/pkg/messages"
)

const (
	// ResetConfirmID is the custom ID prefix for the leaderboard reset
	// confirmation button. The issue time is carried as the argument.
	ResetConfirmID = "resetlb_confirm"

	// ResetCancelID is the custom ID for the leaderboard reset cancel button.
	ResetCancelID = "resetlb_cancel"

	// resetConfirmWindow is how long the reset confirmation stays valid.
	resetConfirmWindow = 30 * time.Second
)

// adminOnly marks a command as admin-gated in the Discord permission system.
// The handlers still check the configured admin role themselves.
var adminOnly = func() *int64 {
	p := int64(discordgo.PermissionAdministrator)
	return &p
}()

var (
	pointsCmd = &discordgo.ApplicationCommand{
		Name:        "points",
		Type:        discordgo.ChatApplicationCommand,
		Description: "Check points for yourself or another user.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "user",
				Type:        discordgo.ApplicationCommandOptionUser,
				Description: "The user to check points for.",
				Required:    false,
			},
		},
	}

	mypointsCmd = &discordgo.ApplicationCommand{
		Name:        "mypoints",
		Type:        discordgo.ChatApplicationCommand,
		Description: "See your own points.",
	}

	leaderboardCmd = &discordgo.ApplicationCommand{
		Name:        "leaderboard",
		Type:        discordgo.ChatApplicationCommand,
		Description: "Show the top 10 users on the leaderboard.",
	}

	myrankCmd = &discordgo.ApplicationCommand{
		Name:        "myrank",
		Type:        discordgo.ChatApplicationCommand,
		Description: "Show your current rank in the leaderboard.",
	}

	pointsinfoCmd = &discordgo.ApplicationCommand{
		Name:        "pointsinfo",
		Type:        discordgo.ChatApplicationCommand,
		Description: "Learn about the points system.",
	}

	historyCmd = &discordgo.ApplicationCommand{
		Name:        "history",
		Type:        discordgo.ChatApplicationCommand,
		Description: "Show a user's points history.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "user",
				Type:        discordgo.ApplicationCommandOptionUser,
				Description: "The user to show history for.",
				Required:    false,
			},
		},
	}

	addpointsCmd = &discordgo.ApplicationCommand{
		Name:                     "addpoints",
		Type:                     discordgo.ChatApplicationCommand,
		Description:              "Add points to a user.",
		DefaultMemberPermissions: adminOnly,
		Options:                  userAmountOptions("The user to add points to.", "Amount of points to add."),
	}

	removepointsCmd = &discordgo.ApplicationCommand{
		Name:                     "removepoints",
		Type:                     discordgo.ChatApplicationCommand,
		Description:              "Remove points from a user.",
		DefaultMemberPermissions: adminOnly,
		Options:                  userAmountOptions("The user to remove points from.", "Amount of points to remove."),
	}

	setpointsCmd = &discordgo.ApplicationCommand{
		Name:                     "setpoints",
		Type:                     discordgo.ChatApplicationCommand,
		Description:              "Set points for a user.",
		DefaultMemberPermissions: adminOnly,
		Options:                  userAmountOptions("The user to set points for.", "Amount of points to set."),
	}

	removeuserCmd = &discordgo.ApplicationCommand{
		Name:                     "removeuser",
		Type:                     discordgo.ChatApplicationCommand,
		Description:              "Remove a user from the leaderboard.",
		DefaultMemberPermissions: adminOnly,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "user",
				Type:        discordgo.ApplicationCommandOptionUser,
				Description: "The user to remove from the leaderboard.",
				Required:    true,
			},
		},
	}

	resetlbCmd = &discordgo.ApplicationCommand{
		Name:                     "resetlb",
		Type:                     discordgo.ChatApplicationCommand,
		Description:              "Reset the leaderboard.",
		DefaultMemberPermissions: adminOnly,
	}
)

func userAmountOptions(userDesc, amountDesc string) []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Name:        "user",
			Type:        discordgo.ApplicationCommandOptionUser,
			Description: userDesc,
			Required:    true,
		},
		{
			Name:        "amount",
			Type:        discordgo.ApplicationCommandOptionInteger,
			Description: amountDesc,
			Required:    true,
		},
	}
}

// targetUserID returns the ID of the "user" option, defaulting to the caller.
func targetUserID(i *discordgo.InteractionCreate) string {
	if opt, ok := commandOptions(i)["user"]; ok {
		return opt.UserValue(nil).ID
	}
	return i.Member.User.ID
}

func pointsHandler(a IApp, i *discordgo.InteractionCreate) error {
	userID := targetUserID(i)

	points, err := a.PointsDal().GetUserPoints(context.Background(), i.GuildID, userID)
	if err != nil {
		return fmt.Errorf("error getting user points: %w", err)
	}
	return respondSlashEphemeral(a, i, fmt.Sprintf("💰 <@%s> has %d points.", userID, points))
}

func mypointsHandler(a IApp, i *discordgo.InteractionCreate) error {
	points, err := a.PointsDal().GetUserPoints(context.Background(), i.GuildID, i.Member.User.ID)
	if err != nil {
		return fmt.Errorf("error getting user points: %w", err)
	}
	return respondSlashEphemeral(a, i, fmt.Sprintf("💰 You have %d points.", points))
}

func leaderboardHandler(a IApp, i *discordgo.InteractionCreate) error {
	lb, err := a.PointsDal().GetAllUserPoints(context.Background(), i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting leaderboard: %w", err)
	}
	if len(lb) == 0 {
		return respondSlashEphemeral(a, i, messages.LeaderboardEmpty)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🏆 Leaderboard",
		Description: "Top 10 helpers by points",
		Color:       0xf1c40f,
	}
	for idx, e := range lb {
		if idx >= 10 {
			break
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%d.", idx+1),
			Value:  fmt.Sprintf("<@%s> — Points: **%d**", e.UserID, e.Points),
			Inline: false,
		})
	}
	return respondEmbed(a, i, embed)
}

func myrankHandler(a IApp, i *discordgo.InteractionCreate) error {
	lb, err := a.PointsDal().GetAllUserPoints(context.Background(), i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting leaderboard: %w", err)
	}

	rank := lb.Rank(i.Member.User.ID)
	if rank == 0 {
		return respondSlashEphemeral(a, i, "📊 You have 0 points and are not on the leaderboard.")
	}

	points, err := a.PointsDal().GetUserPoints(context.Background(), i.GuildID, i.Member.User.ID)
	if err != nil {
		return fmt.Errorf("error getting user points: %w", err)
	}
	return respondSlashEphemeral(a, i, fmt.Sprintf("📊 Your rank is #%d with %d points.", rank, points))
}

func pointsinfoHandler(a IApp, i *discordgo.InteractionCreate) error {
	const info = "💠 **Points System Info** 💠\n" +
		"- Helpers earn points for completing tickets.\n" +
		"- Admins can add, remove, or set points.\n" +
		"- Check your points with `/points`.\n" +
		"- See top users with `/leaderboard`.\n" +
		"- Reset the leaderboard with `/resetlb` (admin only).\n" +
		"- Remove users from the leaderboard with `/removeuser` (admin only)."
	return respondSlashEphemeral(a, i, info)
}

func historyHandler(a IApp, i *discordgo.InteractionCreate) error {
	userID := targetUserID(i)

	points, err := a.PointsDal().GetUserPoints(context.Background(), i.GuildID, userID)
	if err != nil {
		return fmt.Errorf("error getting user points: %w", err)
	}
	return respondSlashEphemeral(a, i,
		fmt.Sprintf("📜 <@%s> has %d points. Full history tracking is not available yet.", userID, points))
}

func addpointsHandler(a IApp, i *discordgo.InteractionCreate) error {
	ok, err := requireAdmin(a, i)
	if err != nil || !ok {
		return err
	}

	opts := commandOptions(i)
	userID := opts["user"].UserValue(nil).ID
	amount := int(opts["amount"].IntValue())

	if err := a.PointsDal().AddUserPoints(context.Background(), i.GuildID, userID, amount); err != nil {
		return fmt.Errorf("error adding user points: %w", err)
	}
	return respondSlashEphemeral(a, i, fmt.Sprintf("✅ Added %d points to <@%s>.", amount, userID))
}

func removepointsHandler(a IApp, i *discordgo.InteractionCreate) error {
	ok, err := requireAdmin(a, i)
	if err != nil || !ok {
		return err
	}

	opts := commandOptions(i)
	userID := opts["user"].UserValue(nil).ID
	amount := int(opts["amount"].IntValue())

	// The removal floors at zero in the store.
	if err := a.PointsDal().RemoveUserPoints(context.Background(), i.GuildID, userID, amount); err != nil {
		return fmt.Errorf("error removing user points: %w", err)
	}

	total, err := a.PointsDal().GetUserPoints(context.Background(), i.GuildID, userID)
	if err != nil {
		return fmt.Errorf("error getting user points: %w", err)
	}
	return respondSlashEphemeral(a, i, fmt.Sprintf("✅ Removed %d points from <@%s>. New total: %d", amount, userID, total))
}

func setpointsHandler(a IApp, i *discordgo.InteractionCreate) error {
	ok, err := requireAdmin(a, i)
	if err != nil || !ok {
		return err
	}

	opts := commandOptions(i)
	userID := opts["user"].UserValue(nil).ID
	amount := int(opts["amount"].IntValue())

	if err := a.PointsDal().SetUserPoints(context.Background(), i.GuildID, userID, amount); err != nil {
		return fmt.Errorf("error setting user points: %w", err)
	}
	return respondSlashEphemeral(a, i, fmt.Sprintf("✅ Set <@%s>'s points to %d.", userID, amount))
}

func removeuserHandler(a IApp, i *discordgo.InteractionCreate) error {
	ok, err := requireAdmin(a, i)
	if err != nil || !ok {
		return err
	}

	userID := commandOptions(i)["user"].UserValue(nil).ID
	if err := a.PointsDal().RemoveUser(context.Background(), i.GuildID, userID); err != nil {
		return fmt.Errorf("error removing user: %w", err)
	}
	return respondSlashEphemeral(a, i, fmt.Sprintf("✅ <@%s> has been removed from the leaderboard.", userID))
}

func resetlbHandler(a IApp, i *discordgo.InteractionCreate) error {
	ok, err := requireAdmin(a, i)
	if err != nil || !ok {
		return err
	}

	// The issue time rides in the confirm button's custom ID so that the
	// gate can expire without any server-side state.
	confirmID := fmt.Sprintf("%s:%d", ResetConfirmID, time.Now().UTC().Unix())

	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "⚠️ " + messages.LeaderboardResetConfirm,
			Flags:   discordgo.MessageFlagsEphemeral,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.Button{
							Label:    "Confirm Reset",
							Style:    discordgo.DangerButton,
							CustomID: confirmID,
						},
						discordgo.Button{
							Label:    "Cancel",
							Style:    discordgo.SecondaryButton,
							CustomID: ResetCancelID,
						},
					},
				},
			},
		},
	})
}

func resetlbConfirmHandler(a IApp, i *discordgo.InteractionCreate) error {
	issued, err := strconv.ParseInt(customIDArg(i.MessageComponentData().CustomID), 10, 64)
	if err != nil {
		return fmt.Errorf("error parsing confirmation timestamp: %w", err)
	}

	if time.Since(time.Unix(issued, 0)) > resetConfirmWindow {
		return updateComponentMessage(a, i, messages.ErrConfirmationExpired)
	}

	if err := a.PointsDal().ClearAllPoints(context.Background(), i.GuildID); err != nil {
		return fmt.Errorf("error clearing points: %w", err)
	}
	return updateComponentMessage(a, i, "✅ "+messages.LeaderboardReset)
}

func resetlbCancelHandler(a IApp, i *discordgo.InteractionCreate) error {
	return updateComponentMessage(a, i, "❌ "+messages.LeaderboardResetCancelled)
}
