package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lynxbot/lynx/pkg/logging"
	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML configuration file. Environment variables
// take precedence over values read from the file.
type fileConfig struct {
	BotToken       string `yaml:"bot_token"`
	ApplicationId  string `yaml:"application_id"`
	DbPath         string `yaml:"db_path"`
	MonitoringPort string `yaml:"monitoring_port"`
}

func loadFile(path string) (*fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg := new(fileConfig)
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return cfg, nil
}

func Parse(l *slog.Logger) {
	if envFile := os.Getenv(EnvConfigFile); envFile != "" {
		l.Debug("Found config file in environment", slog.String("key", EnvConfigFile))

		cfg, err := loadFile(envFile)
		if err != nil {
			l.Error("Error loading config file", slog.String(logging.KeyError, err.Error()))
			os.Exit(1)
		}

		BotToken = cfg.BotToken
		ApplicationId = cfg.ApplicationId
		DbPath = cfg.DbPath
		MonitoringPort = cfg.MonitoringPort
	}

	if envBT := os.Getenv(EnvBotToken); envBT != "" {
		l.Debug("Found bot token in environment", slog.String("key", EnvBotToken))
		BotToken = envBT
	}

	if envAppId := os.Getenv(EnvApplicationId); envAppId != "" {
		l.Debug("Found application ID in environment", slog.String("key", EnvApplicationId))
		ApplicationId = envAppId
	}

	if envDbPath := os.Getenv(EnvDbPath); envDbPath != "" {
		l.Debug("Found database path in environment", slog.String("key", EnvDbPath))
		DbPath = envDbPath
	} else if DbPath == "" {
		// Default to a local file next to the binary.
		DbPath = "lynx.db"

		l.Info("No database path provided, defaulting to lynx.db", slog.String("key", EnvDbPath))
	}

	if envMonitoringPort := os.Getenv(EnvMonitoringPort); envMonitoringPort != "" {
		l.Debug("Found monitoring port in environment", slog.String("key", EnvMonitoringPort))
		MonitoringPort = envMonitoringPort
	} else if MonitoringPort == "" {
		// Default to 8080 if not provided.
		MonitoringPort = "8080"

		l.Info("No monitoring port provided in environment, defaulting to 8080", slog.String("key", EnvMonitoringPort))
	}

	if BotToken != "" &&
		ApplicationId != "" {

		// All required configuration has been provided.
		l.Debug("All required configuration has been provided")
		return
	}

	l.Error("Not all required configuration has been provided", slog.String(logging.KeyError, "Incomplete configuration"))
	os.Exit(1)
}
