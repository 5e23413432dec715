package logging

const (
	// KeyAppName is the attribute key for the application name.
	KeyAppName = "app"

	// KeyError is the attribute key for errors.
	KeyError = "err"

	// KeyDal is the attribute key for the data access layer name.
	KeyDal = "dal"

	// KeySignal is the attribute key for OS signals.
	KeySignal = "signal"

	// KeyGuild is the attribute key for guild IDs.
	KeyGuild = "guild_id"

	// KeyChannel is the attribute key for channel IDs.
	KeyChannel = "channel_id"

	// KeyCommand is the attribute key for command names.
	KeyCommand = "command"
)
