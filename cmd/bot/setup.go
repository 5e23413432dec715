package main

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/lynxbot/lynx/pkg/entities"
	"github.com/lynxbot/lynx/pkg/messages"
)

const (
	// SetupCmdName is the command for configuring the server.
	SetupCmdName = "setup"

	// BindingSubCmdName binds a role or channel to a config field.
	BindingSubCmdName = "binding"

	// CommandSubCmdName configures a custom command.
	CommandSubCmdName = "command"

	// ResetSubCmdName clears the server configuration.
	ResetSubCmdName = "reset"

	// BindingModalID is the custom ID of the role/channel binding modal.
	BindingModalID = "setup_binding"

	// CustomCommandModalID is the custom ID prefix of the custom command
	// editor modal. The command name is carried as the argument.
	CustomCommandModalID = "setup_command"
)

var setupCmd = &discordgo.ApplicationCommand{
	Name:                     SetupCmdName,
	Type:                     discordgo.ChatApplicationCommand,
	Description:              "Configure the server for the bot.",
	DefaultMemberPermissions: adminOnly,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Name:        BindingSubCmdName,
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Description: "Bind a role or channel to the bot.",
		},
		{
			Name:        CommandSubCmdName,
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Description: "Configure a custom command.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "name",
					Type:        discordgo.ApplicationCommandOptionString,
					Description: "The custom command to configure.",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "rrules", Value: entities.CustomCommandRunnerRules},
						{Name: "hrules", Value: entities.CustomCommandHelperRules},
						{Name: "proof", Value: entities.CustomCommandProof},
					},
				},
			},
		},
		{
			Name:        ResetSubCmdName,
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Description: "Reset the server configuration.",
		},
	},
}

func setupHandler(a IApp, i *discordgo.InteractionCreate) error {
	ok, err := requireAdmin(a, i)
	if err != nil || !ok {
		return err
	}

	sub := i.ApplicationCommandData().Options[0]
	switch sub.Name {
	case BindingSubCmdName:
		return openBindingModal(a, i)
	case CommandSubCmdName:
		return openCustomCommandModal(a, i, sub.Options[0].StringValue())
	case ResetSubCmdName:
		return resetSetup(a, i)
	default:
		return fmt.Errorf("unknown setup subcommand %s", sub.Name)
	}
}

func openBindingModal(a IApp, i *discordgo.InteractionCreate) error {
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: BindingModalID,
			Title:    "Set Role or Channel",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "binding_type",
							Label:       "Type",
							Placeholder: "admin/staff/helper/viewer/blocked/reward/ticket_category/transcript_channel",
							Style:       discordgo.TextInputShort,
							Required:    true,
							MaxLength:   50,
						},
					},
				},
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "binding_id",
							Label:       "ID",
							Placeholder: "Enter the role or channel ID here",
							Style:       discordgo.TextInputShort,
							Required:    true,
						},
					},
				},
			},
		},
	})
}

func bindingModalHandler(a IApp, i *discordgo.InteractionCreate) error {
	data := i.ModalSubmitData()
	token := modalInputValue(data, 0)
	id := modalInputValue(data, 1)

	field, err := entities.ParseConfigField(token)
	if err != nil {
		return respondSlashEphemeral(a, i, messages.ErrUnknownBindingType)
	}

	if err := a.GuildConfigDal().UpdateConfig(context.Background(), i.GuildID, field.Patch(id)); err != nil {
		return fmt.Errorf("error updating guild configuration: %w", err)
	}
	return respondSlashEphemeral(a, i, fmt.Sprintf("✅ `%s` set to ID `%s`.", field, id))
}

func openCustomCommandModal(a IApp, i *discordgo.InteractionCreate, name string) error {
	if err := entities.ValidateCustomCommandName(name); err != nil {
		return respondSlashEphemeral(a, i, messages.ErrUnknownCustomCommand)
	}

	// Prefill the editor with the current snippet, if one exists.
	existing, err := a.CustomCommandDal().GetCustomCommand(context.Background(), i.GuildID, name)
	if err != nil {
		return fmt.Errorf("error getting custom command: %w", err)
	}

	content := ""
	image := ""
	if existing != nil {
		content = existing.Content
		image = existing.ImageURL
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    "command_content",
					Label:       "Command Content",
					Placeholder: "Enter content...",
					Value:       content,
					Style:       discordgo.TextInputParagraph,
					Required:    true,
					MaxLength:   2000,
				},
			},
		},
	}

	// Only the proof snippet carries an image.
	if name == entities.CustomCommandProof {
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    "command_image",
					Label:       "Image URL (Optional)",
					Placeholder: "Image URL",
					Value:       image,
					Style:       discordgo.TextInputShort,
					Required:    false,
				},
			},
		})
	}

	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   fmt.Sprintf("%s:%s", CustomCommandModalID, name),
			Title:      fmt.Sprintf("Setup %s Command", name),
			Components: components,
		},
	})
}

func customCommandModalHandler(a IApp, i *discordgo.InteractionCreate) error {
	data := i.ModalSubmitData()
	name := customIDArg(data.CustomID)

	cmd := &entities.CustomCommand{
		GuildID:  i.GuildID,
		Name:     name,
		Content:  modalInputValue(data, 0),
		ImageURL: modalInputValue(data, 1),
	}

	if err := a.CustomCommandDal().SetCustomCommand(context.Background(), cmd); err != nil {
		return fmt.Errorf("error setting custom command: %w", err)
	}
	return respondSlashEphemeral(a, i, fmt.Sprintf("✅ Custom command `/%s` configured!", name))
}

func resetSetup(a IApp, i *discordgo.InteractionCreate) error {
	if err := a.GuildConfigDal().ResetConfig(context.Background(), i.GuildID); err != nil {
		return fmt.Errorf("error resetting guild configuration: %w", err)
	}
	return respondSlashEphemeral(a, i, "⚠️ "+messages.SetupReset)
}
