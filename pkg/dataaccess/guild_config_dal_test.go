package dataaccess

import (
	"context"
	"testing"

	"github.com/lynxbot/lynx/pkg/entities"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestGuildConfigDal_GetMissingConfig(t *testing.T) {
	d := NewGuildConfigDal(newTestDB(t), testLogger())

	cfg, err := d.GetConfig(context.Background(), testGuild)
	require.NoError(t, err)
	require.Nil(t, cfg)
}

func TestGuildConfigDal_PartialUpdatePreservesFields(t *testing.T) {
	d := NewGuildConfigDal(newTestDB(t), testLogger())
	ctx := context.Background()

	require.NoError(t, d.UpdateConfig(ctx, testGuild, &entities.ConfigPatch{
		AdminRoleID: strPtr("role-admin"),
		StaffRoleID: strPtr("role-staff"),
	}))

	// A later patch naming only one field leaves the others alone.
	require.NoError(t, d.UpdateConfig(ctx, testGuild, &entities.ConfigPatch{
		TicketCategoryID: strPtr("cat-1"),
	}))

	cfg, err := d.GetConfig(ctx, testGuild)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, "role-admin", cfg.AdminRoleID)
	require.Equal(t, "role-staff", cfg.StaffRoleID)
	require.Equal(t, "cat-1", cfg.TicketCategoryID)
	require.Empty(t, cfg.HelperRoleID)
	require.Empty(t, cfg.TranscriptChannelID)
}

func TestGuildConfigDal_FieldPatchRoundTrip(t *testing.T) {
	d := NewGuildConfigDal(newTestDB(t), testLogger())
	ctx := context.Background()

	field, err := entities.ParseConfigField("transcript_channel")
	require.NoError(t, err)

	require.NoError(t, d.UpdateConfig(ctx, testGuild, field.Patch("chan-9")))

	cfg, err := d.GetConfig(ctx, testGuild)
	require.NoError(t, err)
	require.Equal(t, "chan-9", cfg.TranscriptChannelID)
}

func TestGuildConfigDal_Reset(t *testing.T) {
	d := NewGuildConfigDal(newTestDB(t), testLogger())
	ctx := context.Background()

	require.NoError(t, d.UpdateConfig(ctx, testGuild, &entities.ConfigPatch{
		AdminRoleID:         strPtr("role-admin"),
		TicketCategoryID:    strPtr("cat-1"),
		TranscriptChannelID: strPtr("chan-1"),
	}))
	require.NoError(t, d.ResetConfig(ctx, testGuild))

	cfg, err := d.GetConfig(ctx, testGuild)
	require.NoError(t, err)
	require.NotNil(t, cfg, "reset nulls the fields but keeps the row")
	require.Empty(t, cfg.AdminRoleID)
	require.Empty(t, cfg.TicketCategoryID)
	require.Empty(t, cfg.TranscriptChannelID)
}

func TestGuildConfigDal_ClearSingleField(t *testing.T) {
	d := NewGuildConfigDal(newTestDB(t), testLogger())
	ctx := context.Background()

	require.NoError(t, d.UpdateConfig(ctx, testGuild, &entities.ConfigPatch{
		AdminRoleID: strPtr("role-admin"),
		StaffRoleID: strPtr("role-staff"),
	}))

	// A pointer to the empty string clears just that binding.
	require.NoError(t, d.UpdateConfig(ctx, testGuild, &entities.ConfigPatch{
		StaffRoleID: strPtr(""),
	}))

	cfg, err := d.GetConfig(ctx, testGuild)
	require.NoError(t, err)
	require.Equal(t, "role-admin", cfg.AdminRoleID)
	require.Empty(t, cfg.StaffRoleID)
}
