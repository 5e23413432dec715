package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/lynxbot/lynx/cmd/bot/config"
	"github.com/lynxbot/lynx/pkg/logging"
)

func main() {
	config.Parse(slog.Default())

	a, err := InitializeApp()
	if err != nil {
		log.Fatalln(err)
	}

	a.Info("Starting application")
	if err := a.Run(); err != nil {
		a.Error("Error running application", slog.String(logging.KeyError, err.Error()))
		os.Exit(1)
	}
}
