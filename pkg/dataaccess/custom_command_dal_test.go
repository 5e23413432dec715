package dataaccess

import (
	"context"
	"testing"

	"github.com/lynxbot/lynx/pkg/entities"
	"github.com/stretchr/testify/require"
)

func TestCustomCommandDal_RoundTrip(t *testing.T) {
	d := NewCustomCommandDal(newTestDB(t), testLogger())
	ctx := context.Background()

	require.NoError(t, d.SetCustomCommand(ctx, &entities.CustomCommand{
		GuildID:  testGuild,
		Name:     entities.CustomCommandProof,
		Content:  "Post a screenshot of the completion screen.",
		ImageURL: "https://example.com/proof.png",
	}))

	cmd, err := d.GetCustomCommand(ctx, testGuild, entities.CustomCommandProof)
	require.NoError(t, err)
	require.NotNil(t, cmd)
	require.Equal(t, "Post a screenshot of the completion screen.", cmd.Content)
	require.Equal(t, "https://example.com/proof.png", cmd.ImageURL)
}

func TestCustomCommandDal_UnconfiguredIsNilNotError(t *testing.T) {
	d := NewCustomCommandDal(newTestDB(t), testLogger())

	cmd, err := d.GetCustomCommand(context.Background(), testGuild, entities.CustomCommandRunnerRules)
	require.NoError(t, err)
	require.Nil(t, cmd)
}

func TestCustomCommandDal_UpsertReplaces(t *testing.T) {
	d := NewCustomCommandDal(newTestDB(t), testLogger())
	ctx := context.Background()

	require.NoError(t, d.SetCustomCommand(ctx, &entities.CustomCommand{
		GuildID: testGuild,
		Name:    entities.CustomCommandHelperRules,
		Content: "v1",
	}))
	require.NoError(t, d.SetCustomCommand(ctx, &entities.CustomCommand{
		GuildID: testGuild,
		Name:    entities.CustomCommandHelperRules,
		Content: "v2",
	}))

	cmd, err := d.GetCustomCommand(ctx, testGuild, entities.CustomCommandHelperRules)
	require.NoError(t, err)
	require.Equal(t, "v2", cmd.Content)

	// The unset image is stored as the empty string.
	require.Equal(t, "", cmd.ImageURL)
}

func TestCustomCommandDal_RejectsUnknownName(t *testing.T) {
	d := NewCustomCommandDal(newTestDB(t), testLogger())

	err := d.SetCustomCommand(context.Background(), &entities.CustomCommand{
		GuildID: testGuild,
		Name:    "greeting",
		Content: "hello",
	})
	require.ErrorIs(t, err, entities.ErrUnknownCustomCommand)
}
