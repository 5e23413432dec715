package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/lynxbot/lynx/pkg/entities"
	"golang.org/x/time/rate"
)

const (
	// transcriptPageSize is the page size for message history reads.
	transcriptPageSize = 100

	// transcriptTimeLayout is the timestamp format used in transcript lines.
	transcriptTimeLayout = "2006-01-02 15:04:05"
)

// historyLimiter paces the history pagination so that bulk reads of long
// channels stay clear of the REST rate limit.
var historyLimiter = rate.NewLimiter(rate.Limit(2), 1)

// collectChannelMessages reads the full message history of a channel in
// chronological order.
func collectChannelMessages(ctx context.Context, s *discordgo.Session, channelID string) ([]*discordgo.Message, error) {
	var all []*discordgo.Message
	beforeID := ""

	for {
		if err := historyLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("error waiting for rate limiter: %w", err)
		}

		page, err := s.ChannelMessages(channelID, transcriptPageSize, beforeID, "", "")
		if err != nil {
			return nil, fmt.Errorf("error getting channel messages: %w", err)
		}
		if len(page) == 0 {
			break
		}

		all = append(all, page...)
		beforeID = page[len(page)-1].ID

		if len(page) < transcriptPageSize {
			break
		}
	}

	// Pages arrive newest first.
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	return all, nil
}

// formatTranscript renders the message history as a single text blob.
func formatTranscript(channelName string, msgs []*discordgo.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== TRANSCRIPT: %s ===\n", channelName)

	for _, m := range msgs {
		content := m.Content
		if content == "" {
			content = "[No text content]"
		}

		name := m.Author.Username
		if m.Author.GlobalName != "" {
			name = m.Author.GlobalName
		}

		fmt.Fprintf(&b, "[%s] %s: %s\n", m.Timestamp.UTC().Format(transcriptTimeLayout), name, content)

		for _, attachment := range m.Attachments {
			fmt.Fprintf(&b, "    📎 Attachment: %s\n", attachment.Filename)
		}
	}
	return b.String()
}

// saveTranscript exports the ticket channel's history to the configured
// transcript channel. A missing configuration means no export.
func saveTranscript(ctx context.Context, a IApp, ticket *entities.Ticket, cfg *entities.GuildConfig, closerID string) error {
	if cfg == nil || cfg.TranscriptChannelID == "" {
		return nil
	}

	channel, err := a.Session().Channel(ticket.ChannelID)
	if err != nil {
		return fmt.Errorf("error getting ticket channel: %w", err)
	}

	msgs, err := collectChannelMessages(ctx, a.Session(), ticket.ChannelID)
	if err != nil {
		return err
	}

	content := formatTranscript(channel.Name, msgs)

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📄 Ticket Transcript: %s", ticket.Type),
		Color: 0xe74c3c,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Ticket Owner", Value: fmt.Sprintf("<@%s>", ticket.CreatorID), Inline: true},
			{Name: "Closed By", Value: fmt.Sprintf("<@%s>", closerID), Inline: true},
			{Name: "Channel", Value: "#" + channel.Name, Inline: true},
			{Name: "Helpers", Value: fmt.Sprintf("%d helpers", len(ticket.Helpers)), Inline: true},
		},
	}

	_, err = a.Session().ChannelMessageSendComplex(cfg.TranscriptChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Files: []*discordgo.File{
			{
				Name:        fmt.Sprintf("transcript-%s.txt", channel.Name),
				ContentType: "text/plain",
				Reader:      strings.NewReader(content),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("error sending transcript: %w", err)
	}
	return nil
}
