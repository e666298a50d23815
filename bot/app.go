// Package bot wires the lesson machine into the Telegram runtime and the liveness server.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/m3rciful/ginabot/core/bootstrap"
	corecmd "github.com/m3rciful/ginabot/core/cmd"
	"github.com/m3rciful/ginabot/core/health"
	"github.com/m3rciful/ginabot/core/logger"
	"github.com/m3rciful/ginabot/core/state"
	coretelegram "github.com/m3rciful/ginabot/core/telegram"
	"github.com/m3rciful/ginabot/core/telegram/router"
	"github.com/m3rciful/ginabot/lesson"

	tele "gopkg.in/telebot.v4"
)

// SendFunc delivers a rendered reply to the chat of c.
type SendFunc func(c tele.Context, r lesson.Reply) error

// App owns the sessions of every conversation and the machine that drives them.
type App struct {
	cfg      *Config
	machine  *lesson.Machine
	sessions *state.Store[lesson.Session]
	send     SendFunc
}

// New builds an App around machine. A nil cfg is treated as an empty configuration.
func New(cfg *Config, machine *lesson.Machine) *App {
	if cfg == nil {
		cfg = &Config{}
	}
	return &App{
		cfg:      cfg,
		machine:  machine,
		sessions: state.NewStore[lesson.Session](),
		send:     sendReply,
	}
}

// Bootstrap initialises logging, loads the catalog and returns the ready App.
func Bootstrap(ctx context.Context, cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("bot: nil config")
	}
	var catalog *lesson.Catalog
	err := bootstrap.Run(ctx, bootstrap.Options{
		Config: &cfg.Config,
		Steps: []bootstrap.Step{{
			Name: "catalog",
			Run: func(ctx context.Context) error {
				c, err := lesson.LoadCatalog(cfg.Lesson.CatalogPath)
				if err != nil {
					return err
				}
				catalog = c
				source := cfg.Lesson.CatalogPath
				if source == "" {
					source = "embedded"
				}
				logger.Info(ctx, "app", "catalog.loaded",
					slog.String("source", source),
					slog.Int("topics", len(c.Topics())),
					slog.Int("drill", c.DrillLen()),
				)
				return nil
			},
		}},
	})
	if err != nil {
		return nil, err
	}
	return New(cfg, lesson.NewMachine(catalog)), nil
}

// Sessions exposes the conversation store.
func (a *App) Sessions() *state.Store[lesson.Session] { return a.sessions }

// TelegramRunOptions builds the registry, routes and middlewares of the bot.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()
	if err := a.register(reg); err != nil {
		return coretelegram.RunOptions{}, fmt.Errorf("bot: register handlers: %w", err)
	}

	routeOpts := router.CommandRouteOptions{AdminID: a.cfg.Telegram.AdminID}
	routes := router.CommandRoutes(reg, routeOpts)
	routes = append(routes,
		router.CallbackRoute(reg),
		router.TextRoute(reg, routeOpts),
	)

	return coretelegram.RunOptions{
		Config:      &a.cfg.Config,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(&a.cfg.Config, nil),
		Routes:      routes,
	}, nil
}

// Tasks returns the liveness server unless it is disabled.
func (a *App) Tasks() []corecmd.Task {
	if a.cfg.HTTP.Disabled {
		return nil
	}
	srv := health.New(a.cfg.HTTP)
	return []corecmd.Task{{Name: "http", Run: srv.Run}}
}
