package entities

import "fmt"

const (
	// CustomCommandRunnerRules is the rules-for-requesters snippet.
	CustomCommandRunnerRules = "rrules"

	// CustomCommandHelperRules is the rules-for-helpers snippet.
	CustomCommandHelperRules = "hrules"

	// CustomCommandProof is the proof-submission-instructions snippet. It is
	// the only snippet that carries an image.
	CustomCommandProof = "proof"
)

// CustomCommand is an admin-editable named snippet served verbatim on
// request.
type CustomCommand struct {
	// GuildID is the ID of the guild the command belongs to.
	GuildID string `json:"guild_id"`

	// Name is the command name. Only the fixed allowed names are valid.
	Name string `json:"name"`

	// Content is the free-text body.
	Content string `json:"content"`

	// ImageURL is an optional image. Stored as an empty string when unset.
	ImageURL string `json:"image_url"`
}

// ValidateCustomCommandName rejects names outside the fixed allowed set.
func ValidateCustomCommandName(name string) error {
	switch name {
	case CustomCommandRunnerRules, CustomCommandHelperRules, CustomCommandProof:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCustomCommand, name)
	}
}
