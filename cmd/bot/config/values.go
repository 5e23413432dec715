package config

const (
	// AppName is the name of the application.
	AppName = "lynx"

	// EnvBotToken is the environment variable for the bot token.
	EnvBotToken = `BOT_TOKEN`

	// EnvApplicationId is the environment variable for the application ID.
	EnvApplicationId = `APPLICATION_ID`

	// EnvDbPath is the environment variable for the SQLite database path.
	EnvDbPath = `DB_PATH`

	// EnvMonitoringPort is the environment variable for the monitoring port.
	EnvMonitoringPort = `MONITORING_PORT`

	// EnvConfigFile is the environment variable for the optional YAML
	// configuration file.
	EnvConfigFile = `CONFIG_FILE`
)

var (
	// BotToken is the token for the bot.
	BotToken string

	// ApplicationId is the ID of the application.
	ApplicationId string

	// DbPath is the path to the SQLite database file.
	DbPath string

	// MonitoringPort is the port for the monitoring server.
	MonitoringPort string
)
