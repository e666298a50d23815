package router

import (
	"log/slog"
	"sort"

	"github.com/m3rciful/ginabot/core/logger"
	tg "github.com/m3rciful/ginabot/core/telegram"
	"github.com/m3rciful/ginabot/core/telegram/commands"
	"github.com/m3rciful/ginabot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// CommandRouteOptions configures how commands are wrapped and exposed.
type CommandRouteOptions struct {
	AdminID       int64
	OnAdminReject tele.HandlerFunc
}

func (o CommandRouteOptions) admin() middleware.AdminOptions {
	return middleware.AdminOptions{AdminID: o.AdminID, OnReject: o.OnAdminReject}
}

// wrapCommand applies the admin gate and the summary log to a command handler.
func wrapCommand(name string, def commands.Command, opts CommandRouteOptions) tele.HandlerFunc {
	h := def.Handler
	if def.AdminOnly {
		h = middleware.AdminOnlyMiddleware(opts.admin())(h)
	}
	s := summary{name: "cmd." + normalizeHandlerName(name)}
	return func(c tele.Context) error {
		return s.run(c, func() error { return h(c) })
	}
}

// CommandRoutes binds every registered command to its slash endpoint.
func CommandRoutes(reg *tg.Registry, opts CommandRouteOptions) []tg.Route {
	if reg == nil {
		return nil
	}
	defs := reg.Commands()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	routes := make([]tg.Route, 0, len(names))
	for _, name := range names {
		routes = append(routes, tg.Route{
			Endpoint: name,
			Handler:  wrapCommand(name, defs[name], opts),
		})
	}

	logger.TWire.Info("routes",
		slog.String("event", "wire.complete"),
		slog.Int("commands", len(names)),
		slog.Int("callbacks", len(reg.ListCallbacks())),
	)
	return routes
}
