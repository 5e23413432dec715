package entities

import "errors"

var (
	// ErrTicketFull is returned when the helper roster is at capacity.
	ErrTicketFull = errors.New("ticket helper roster is full")

	// ErrAlreadyHelping is returned when a user joins a ticket twice.
	ErrAlreadyHelping = errors.New("user is already helping with this ticket")

	// ErrNotHelping is returned when removing a user that is not on the
	// roster.
	ErrNotHelping = errors.New("user is not helping with this ticket")

	// ErrUnknownConfigField is returned for an unrecognised binding token.
	ErrUnknownConfigField = errors.New("unknown config field")

	// ErrUnknownCustomCommand is returned for an unrecognised custom command
	// name.
	ErrUnknownCustomCommand = errors.New("unknown custom command")
)
