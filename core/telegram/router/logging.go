// Package router turns the registry into telebot routes with per-handler summary logs.
package router

import (
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/m3rciful/ginabot/core/logger"
	tghelpers "github.com/m3rciful/ginabot/core/telegram/helpers"
	"github.com/m3rciful/ginabot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// summary describes how a handler run is reported.
type summary struct {
	name   string
	status string
	extras []slog.Attr
}

// run executes fn under the handler name and logs one handler.handled line.
func (s summary) run(c tele.Context, fn func() error) error {
	start := time.Now()
	tghelpers.WithHandler(c, s.name)
	err := fn()
	s.log(c, start, err)
	return err
}

func (s summary) log(c tele.Context, start time.Time, err error) {
	ctx := tghelpers.WithHandler(c, s.name)
	msgs, kb := middleware.GetCounters(c)

	status, outcome := s.status, "ok"
	if err != nil {
		status, outcome = "fail", "fail"
	}
	if status == "" {
		status = "ok"
	}

	attrs := []slog.Attr{
		slog.String("status", status),
		slog.String("outcome", outcome),
		slog.Int("messages", msgs),
		slog.Bool("kb", kb),
		slog.Duration("duration", time.Since(start)),
	}
	level := slog.LevelInfo
	if err != nil {
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			slog.String("err_code", deriveErrorCode(err)),
			slog.String("cause", s.name),
		)
	}
	attrs = append(attrs, s.extras...)
	logger.LogEvent(ctx, logger.Component("tg"), level, "handler.handled", attrs...)
}

func normalizeHandlerName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "unknown"
	}
	name = strings.TrimPrefix(name, "/")
	name = strings.ReplaceAll(name, " ", "_")
	return strings.ToLower(name)
}

// deriveErrorCode returns a stable upper-case code: the telebot API description when
// available, otherwise the innermost error type name.
func deriveErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *tele.Error
	if errors.As(err, &apiErr) && apiErr.Description != "" {
		return codeify(apiErr.Description)
	}
	for {
		inner := errors.Unwrap(err)
		if inner == nil {
			break
		}
		err = inner
	}
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" {
		return "UNKNOWN_ERROR"
	}
	return codeify(t.Name())
}

func codeify(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(" ", "_", ":", "", ".", "").Replace(s)
	return strings.ToUpper(s)
}
