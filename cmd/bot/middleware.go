package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/mux"
	"github.com/lynxbot/lynx/cmd/bot/monitoring"
	"github.com/lynxbot/lynx/pkg/logging"
	"github.com/lynxbot/lynx/pkg/request"
)

// commandProcessor processes a single interaction.
type commandProcessor func(a IApp, i *discordgo.InteractionCreate) error

type Controller func(w http.ResponseWriter, r *http.Request)

func middlewareHttp(handler Controller, a IApp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC()
		cw := request.NewClientWriter(w)

		// Recover from any panics that occur in the handler.
		defer func() {
			if rec := recover(); rec != nil {
				a.Log().Error("Panic in handler",
					slog.String(logging.KeyError, fmt.Sprintf("%v", rec)),
					slog.String("stack", string(debug.Stack())),
				)
				cw.WriteHeader(http.StatusInternalServerError)
				if err := json.NewEncoder(cw).Encode(request.NewMessage(request.ErrInternalServer.Error())); err != nil {
					a.Log().Error("Error encoding response", slog.String(logging.KeyError, err.Error()))
				}
			}
		}()

		var path string
		route := mux.CurrentRoute(r)
		if route != nil { // The route may be nil if the request is not routed.
			var err error
			path, err = route.GetPathTemplate()
			if err != nil {
				// An error here is only returned if the route does not define a path.
				a.Log().Error("Error getting path template", slog.String(logging.KeyError, err.Error()))
				path = r.URL.Path // If the route does not define a path, use the URL path.
			}
		} else {
			path = r.URL.Path // If the route is nil, use the URL path.
		}

		defer func() {
			// Run the deferred function after the request has been handled, as the status code will not be available until then.
			monitoring.HttpTotalRequests.WithLabelValues(path, r.Method, fmt.Sprintf("%d", cw.StatusCode())).Inc()
			monitoring.HttpRequestDuration.WithLabelValues(path, r.Method, fmt.Sprintf("%d", cw.StatusCode())).Observe(time.Since(now).Seconds())
		}()

		handler(cw, r)
	}
}

// customIDKey returns the dispatch key of a component or modal custom ID.
// Arguments are carried after a colon, e.g. "ticket_intake:Grim Express".
func customIDKey(id string) string {
	if idx := strings.Index(id, ":"); idx >= 0 {
		return id[:idx]
	}
	return id
}

// customIDArg returns the argument carried in a component or modal custom ID,
// or the empty string when there is none.
func customIDArg(id string) string {
	if idx := strings.Index(id, ":"); idx >= 0 {
		return id[idx+1:]
	}
	return ""
}

// interactionHandler dispatches interactions to the matching processor:
// slash commands by name, message components and modal submissions by
// custom ID prefix.
func interactionHandler(
	a IApp,
	slash map[string]commandProcessor,
	components map[string]commandProcessor,
	modals map[string]commandProcessor,
) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		var name string
		var processor commandProcessor
		var ok bool

		switch i.Type {
		case discordgo.InteractionApplicationCommand:
			name = i.ApplicationCommandData().Name
			processor, ok = slash[name]
		case discordgo.InteractionMessageComponent:
			name = customIDKey(i.MessageComponentData().CustomID)
			processor, ok = components[name]
		case discordgo.InteractionModalSubmit:
			name = customIDKey(i.ModalSubmitData().CustomID)
			processor, ok = modals[name]
		default:
			return
		}

		if !ok {
			a.Log().Error("No processor found for interaction", slog.String(logging.KeyCommand, name))

			if err := respondSlashError(a, i); err != nil {
				a.Log().Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
			}
			return
		}

		a.Log().Debug("Handling interaction",
			slog.String(logging.KeyCommand, name),
			slog.String(logging.KeyGuild, i.GuildID),
		)

		// Time the command.
		now := time.Now().UTC()
		defer func() {
			monitoring.DiscordCommandDuration.WithLabelValues(name).Observe(time.Since(now).Seconds())
		}()

		if err := processor(a, i); err != nil {
			a.Log().Error(fmt.Sprintf("Error processing interaction %s", name),
				slog.String(logging.KeyError, err.Error()))

			if err := respondSlashError(a, i); err != nil {
				a.Log().Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
			}
		}
	}
}
