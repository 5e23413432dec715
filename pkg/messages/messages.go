// Package messages holds the user-facing response strings for the bot.
package messages

const (
	// ErrUserErrorProcessing is shown when a command fails unexpectedly.
	ErrUserErrorProcessing = "Something went wrong while processing your request. Please try again."

	// ErrAdminOnly is shown when a non-administrator runs an admin command.
	ErrAdminOnly = "You must be an administrator to use this command."

	// ErrStaffOnly is shown when a non-staff member runs a staff command.
	ErrStaffOnly = "Only staff or admins can do that."

	// ErrTicketCategoryNotConfigured is shown when a ticket is created before
	// the intake category has been bound.
	ErrTicketCategoryNotConfigured = "Ticket category not configured! Run `/setup binding` first."

	// ErrNotActiveTicket is shown when a ticket action is used outside of an
	// active ticket channel.
	ErrNotActiveTicket = "This channel is not an active ticket."

	// ErrTicketFull is shown when the helper roster is at capacity.
	ErrTicketFull = "This ticket is full!"

	// ErrAlreadyHelping is shown on a duplicate join attempt.
	ErrAlreadyHelping = "You're already helping with this ticket!"

	// ErrNotHelping is shown when leaving a ticket the user never joined.
	ErrNotHelping = "You're not helping with this ticket!"

	// ErrNoHelpersToRemove is shown when the remove-helper flow finds an
	// empty roster.
	ErrNoHelpersToRemove = "No helpers to remove!"

	// ErrCloseNotPermitted is shown when a non-owner, non-staff user tries to
	// close a ticket.
	ErrCloseNotPermitted = "Only the ticket owner or staff can close this ticket!"

	// ErrRemoveNotPermitted is shown when a non-staff user tries to remove a
	// helper.
	ErrRemoveNotPermitted = "Only staff/admins can remove helpers!"

	// ErrUnknownBindingType is shown when a setup binding token is not
	// recognised.
	ErrUnknownBindingType = "Invalid type! Use admin, staff, helper, viewer, blocked, reward, ticket_category or transcript_channel."

	// ErrUnknownCustomCommand is shown when configuring a custom command with
	// an unknown name.
	ErrUnknownCustomCommand = "Invalid command name. Use rrules, hrules, or proof."

	// ErrConfirmationExpired is shown when a confirmation button is pressed
	// after its window has passed.
	ErrConfirmationExpired = "This confirmation has expired. Run the command again."

	// LeaderboardEmpty is shown when no points have been recorded yet.
	LeaderboardEmpty = "No points recorded yet."

	// LeaderboardReset is shown after a confirmed leaderboard reset.
	LeaderboardReset = "Leaderboard has been reset!"

	// LeaderboardResetCancelled is shown when a leaderboard reset is
	// cancelled.
	LeaderboardResetCancelled = "Leaderboard reset cancelled."

	// LeaderboardResetConfirm asks for confirmation before a reset.
	LeaderboardResetConfirm = "Are you sure you want to reset the leaderboard?"

	// SetupReset is shown after the server configuration has been cleared.
	SetupReset = "Setup has been fully reset!"

	// TicketJoined is shown after joining a ticket as a helper.
	TicketJoined = "You joined this ticket as a helper!"

	// TicketLeft is shown after leaving a ticket.
	TicketLeft = "You left the ticket."
)

// CustomCommandNotConfigured is the "run setup" hint for an unconfigured
// custom command. It is informational, not an error.
func CustomCommandNotConfigured(title string) string {
	return title + " have not been configured. Use `/setup command` to configure custom commands."
}
