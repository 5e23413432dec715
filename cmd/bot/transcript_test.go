package main

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

func TestFormatTranscript(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	msgs := []*discordgo.Message{
		{
			Author:    &discordgo.User{Username: "alice", GlobalName: "Alice"},
			Content:   "hello",
			Timestamp: ts,
		},
		{
			Author:    &discordgo.User{Username: "bob"},
			Content:   "",
			Timestamp: ts.Add(time.Minute),
			Attachments: []*discordgo.MessageAttachment{
				{Filename: "proof.png"},
			},
		},
	}

	got := formatTranscript("grimchallenge-3", msgs)

	want := "=== TRANSCRIPT: grimchallenge-3 ===\n" +
		"[2024-03-01 12:30:00] Alice: hello\n" +
		"[2024-03-01 12:31:00] bob: [No text content]\n" +
		"    📎 Attachment: proof.png\n"
	require.Equal(t, want, got)
}

func TestFormatTranscript_Empty(t *testing.T) {
	got := formatTranscript("ultra-speaker-1", nil)
	require.Equal(t, "=== TRANSCRIPT: ultra-speaker-1 ===\n", got)
}
