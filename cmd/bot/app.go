package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/mux"
	"github.com/lynxbot/lynx/cmd/bot/config"
	"github.com/lynxbot/lynx/cmd/bot/monitoring"
	"github.com/lynxbot/lynx/pkg/dataaccess"
	"github.com/lynxbot/lynx/pkg/logging"
	"github.com/lynxbot/lynx/pkg/request"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// IApp is the interface for the application.
type IApp interface {
	// Log returns the application logger.
	Log() *slog.Logger

	// Session returns the discord session.
	Session() *discordgo.Session

	// GuildConfigDal returns the guild configuration data access layer.
	GuildConfigDal() dataaccess.GuildConfigDal

	// PointsDal returns the points data access layer.
	PointsDal() dataaccess.PointsDal

	// TicketConfigDal returns the ticket configuration data access layer.
	TicketConfigDal() dataaccess.TicketConfigDal

	// CustomCommandDal returns the custom command data access layer.
	CustomCommandDal() dataaccess.CustomCommandDal

	// TicketDal returns the ticket data access layer.
	TicketDal() dataaccess.TicketDal

	// Tickets returns the in-memory registry of active ticket state.
	Tickets() *ticketRegistry
}

type App struct {
	// is the logger.
	*slog.Logger

	// r is the router for the application.
	r *mux.Router

	// svr is the server for the application.
	svr *http.Server

	// s is the discord session.
	s *discordgo.Session

	// db is the handle to the SQLite database.
	db *sql.DB

	// The data access layers, constructed once and shared.
	guildConfigDal   dataaccess.GuildConfigDal
	pointsDal        dataaccess.PointsDal
	ticketConfigDal  dataaccess.TicketConfigDal
	customCommandDal dataaccess.CustomCommandDal
	ticketDal        dataaccess.TicketDal

	// tickets caches per-channel ticket state and its mutation locks.
	tickets *ticketRegistry
}

// newDatabase opens the SQLite database and ensures the schema exists.
func newDatabase(l *slog.Logger) (*sql.DB, error) {
	return dataaccess.NewDatabase(config.DbPath, l)
}

// NewApp creates a new instance of App.
func NewApp(l *slog.Logger, r *mux.Router, db *sql.DB) *App {
	return &App{
		Logger:           l,
		r:                r,
		db:               db,
		guildConfigDal:   dataaccess.NewGuildConfigDal(db, l),
		pointsDal:        dataaccess.NewPointsDal(db, l),
		ticketConfigDal:  dataaccess.NewTicketConfigDal(db, l),
		customCommandDal: dataaccess.NewCustomCommandDal(db, l),
		ticketDal:        dataaccess.NewTicketDal(db, l),
		tickets:          newTicketRegistry(),
	}
}

func (a *App) Run() error {
	// Register bot.
	if err := a.RegisterBot(); err != nil {
		return fmt.Errorf("error registering bot: %w", err)
	}

	a.s.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		a.Info(fmt.Sprintf("Logged in as %s#%s", r.User.Username, r.User.Discriminator))
	})

	if err := a.RegisterDiscordHandlers(); err != nil {
		return fmt.Errorf("error registering discord handlers: %w", err)
	}

	// Open websocket.
	if err := a.s.Open(); err != nil {
		return fmt.Errorf("error opening connection to Discord: %w", err)
	}

	// Register slash commands. This needs the session open so that the
	// joined guilds can be listed.
	if err := a.registerSlashCommands(); err != nil {
		return fmt.Errorf("error registering slash commands: %w", err)
	}

	a.Info("Bot is now running.")

	a.generateServer()
	a.setupRoutes()
	a.runServer()

	// Register listener for shutdown signal.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)

	// Process shutdown signal.
	for sig := range c {
		a.Info("Received shutdown signal", slog.String(logging.KeySignal, sig.String()))
		if err := a.ShutdownHook(); err != nil {
			a.Error("Error shutting down application", slog.String(logging.KeyError, err.Error()))
		}
		os.Exit(0)
	}
	return nil
}

func (a *App) ShutdownHook() error {
	// Reset the total number of guilds to 0.
	monitoring.TotalDiscordGuilds.Set(0)

	// Unregister slash commands.
	if err := a.unregisterSlashCommands(); err != nil {
		return fmt.Errorf("error unregistering slash commands: %w", err)
	}

	// Close the connection to Discord.
	if err := a.s.Close(); err != nil {
		return fmt.Errorf("error closing connection to Discord: %w", err)
	}

	// Close the database handle.
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("error closing database: %w", err)
	}
	return nil
}

func (a *App) RegisterBot() error {
	// Default the number of guilds to 0.
	monitoring.TotalDiscordGuilds.Set(0)

	dg, err := discordgo.New("Bot " + config.BotToken)
	if err != nil {
		return fmt.Errorf("error creating Discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.MakeIntent(discordgo.IntentsAll)

	a.s = dg
	return nil
}

func (a *App) runServer() {
	go func() {
		a.Info("Starting monitoring server")
		if err := a.svr.ListenAndServe(); err != nil {
			a.Error("Error starting monitoring server", slog.String(logging.KeyError, err.Error()))
			a.Warn("Monitoring server will not be available")
		}
	}()
}

func (a *App) setupRoutes() {
	// PathLiveness is the fixed liveness response for uptime probes.
	a.r.HandleFunc(PathLiveness, middlewareHttp(a.livenessCheck(), a)).Methods(http.MethodGet)

	// PathMetrics is the path for metrics.
	a.r.HandleFunc(PathMetrics, promhttp.Handler().ServeHTTP).Methods(http.MethodGet)

	// PathHealth is the path for health check.
	a.r.HandleFunc(PathHealth, middlewareHttp(a.healthCheck(), a)).Methods(http.MethodGet)

	// NotFoundHandler is the handler for 404.
	a.r.NotFoundHandler = request.NotFoundHandler(a.Logger)

	// MethodNotAllowedHandler is the handler for 405.
	a.r.MethodNotAllowedHandler = request.MethodNotAllowedHandler(a.Logger)
}

func (a *App) generateServer() {
	a.svr = &http.Server{
		Addr:    ":" + config.MonitoringPort,
		Handler: a.r,
	}
}

func (a *App) GetJoinedGuilds() ([]*discordgo.UserGuild, error) {
	guilds, err := a.s.UserGuilds(0, "", "", false)
	if err != nil {
		return nil, fmt.Errorf("error getting guilds: %w", err)
	}
	return guilds, nil
}

func (a *App) RegisterDiscordHandlers() error {
	// Bot joined guild.
	a.s.AddHandler(guildJoinedHandler(a))

	// Bot left guild.
	a.s.AddHandler(guildLeaveHandler(a))

	// Count every gateway event by type.
	a.s.AddHandler(func(_ *discordgo.Session, e *discordgo.Event) {
		if e.Type != "" {
			monitoring.TotalDiscordEvents.WithLabelValues(e.Type).Inc()
		}
	})

	// Interaction create handler.
	a.s.AddHandler(interactionHandler(a,
		// Slash command processors
		map[string]commandProcessor{
			pointsCmd.Name:       pointsHandler,
			mypointsCmd.Name:     mypointsHandler,
			leaderboardCmd.Name:  leaderboardHandler,
			myrankCmd.Name:       myrankHandler,
			pointsinfoCmd.Name:   pointsinfoHandler,
			historyCmd.Name:      historyHandler,
			addpointsCmd.Name:    addpointsHandler,
			removepointsCmd.Name: removepointsHandler,
			setpointsCmd.Name:    setpointsHandler,
			removeuserCmd.Name:   removeuserHandler,
			resetlbCmd.Name:      resetlbHandler,
			setupCmd.Name:        setupHandler,
			rrulesCmd.Name:       rrulesHandler,
			hrulesCmd.Name:       hrulesHandler,
			proofCmd.Name:        proofHandler,
			panelCmd.Name:        panelHandler,
			helpCmd.Name:         helpHandler,
		},
		// Message component processors, keyed by custom ID prefix
		map[string]commandProcessor{
			ResetConfirmID:     resetlbConfirmHandler,
			ResetCancelID:      resetlbCancelHandler,
			PanelSelectID:      panelSelectHandler,
			JoinTicketID:       joinTicketHandler,
			LeaveTicketID:      leaveTicketHandler,
			RemoveHelperID:     removeHelperHandler,
			RemoveHelperPickID: removeHelperPickHandler,
			CloseTicketID:      closeTicketHandler,
		},
		// Modal submit processors, keyed by custom ID prefix
		map[string]commandProcessor{
			BindingModalID:       bindingModalHandler,
			CustomCommandModalID: customCommandModalHandler,
			TicketIntakeModalID:  ticketIntakeHandler,
		}))
	return nil
}

func (a *App) registerSlashCommands() error {
	// Get all guilds the bot is in.
	guilds, err := a.GetJoinedGuilds()
	if err != nil {
		return fmt.Errorf("error getting guilds: %w", err)
	}

	// Register the full command set for each guild in one call.
	for _, g := range guilds {
		if _, err := a.s.ApplicationCommandBulkOverwrite(config.ApplicationId, g.ID, slashCommands); err != nil {
			return fmt.Errorf("error creating commands for guild %s: %w", g.ID, err)
		}
	}
	return nil
}

func (a *App) unregisterSlashCommands() error {
	// Get all guilds the bot is in.
	guilds, err := a.GetJoinedGuilds()
	if err != nil {
		return fmt.Errorf("error getting guilds: %w", err)
	}

	// Overwriting with an empty set removes every registered command.
	for _, g := range guilds {
		if _, err := a.s.ApplicationCommandBulkOverwrite(config.ApplicationId, g.ID, nil); err != nil {
			return fmt.Errorf("error deleting commands for guild %s: %w", g.ID, err)
		}
	}
	return nil
}

func (a *App) Log() *slog.Logger {
	return a.Logger
}

func (a *App) Session() *discordgo.Session {
	return a.s
}

func (a *App) GuildConfigDal() dataaccess.GuildConfigDal {
	return a.guildConfigDal
}

func (a *App) PointsDal() dataaccess.PointsDal {
	return a.pointsDal
}

func (a *App) TicketConfigDal() dataaccess.TicketConfigDal {
	return a.ticketConfigDal
}

func (a *App) CustomCommandDal() dataaccess.CustomCommandDal {
	return a.customCommandDal
}

func (a *App) TicketDal() dataaccess.TicketDal {
	return a.ticketDal
}

func (a *App) Tickets() *ticketRegistry {
	return a.tickets
}

// slashCommands is every command the bot registers per guild.
var slashCommands = []*discordgo.ApplicationCommand{
	pointsCmd,
	mypointsCmd,
	leaderboardCmd,
	myrankCmd,
	pointsinfoCmd,
	historyCmd,
	addpointsCmd,
	removepointsCmd,
	setpointsCmd,
	removeuserCmd,
	resetlbCmd,
	setupCmd,
	rrulesCmd,
	hrulesCmd,
	proofCmd,
	panelCmd,
	helpCmd,
}
