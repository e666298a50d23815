package helpers

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/m3rciful/ginabot/core/logger"
	"github.com/m3rciful/ginabot/core/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

var globalDispatcher atomic.Pointer[sender.Dispatcher]

// SetDispatcher wires the sender pool used by helper functions. nil disables it.
func SetDispatcher(d *sender.Dispatcher) {
	globalDispatcher.Store(d)
}

// deliver runs the call on the sender pool and waits for it, so the caller observes
// the outcome and successive sends from one handler keep their order. When the pool
// is missing, saturated or closed the call runs inline.
func deliver(c tele.Context, action, endpoint string, run func() error) error {
	disp := globalDispatcher.Load()
	if disp == nil {
		return run()
	}

	ctx := BuildContext(c)
	err := disp.Send(ctx, action, endpoint, run)
	if errors.Is(err, sender.ErrQueueFull) || errors.Is(err, sender.ErrQueueClosed) {
		logger.Warn(ctx, "tg.sender", "queue.fallback",
			slog.String("action", action),
			slog.String("endpoint", endpoint),
			slog.String("err", err.Error()),
		)
		return run()
	}
	return err
}

// Send delivers text to the current chat with the given options (which may be nil).
func Send(c tele.Context, text string, opts *tele.SendOptions) error {
	return deliver(c, "send.text", "sendMessage", func() error {
		if opts != nil {
			return c.Send(text, opts)
		}
		return c.Send(text)
	})
}

// SendText sends plain text with optional reply markup.
func SendText(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	return Send(c, text, sendOptions("", markup))
}

// SendMD sends a message with legacy Markdown parse mode and optional reply markup.
func SendMD(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	return Send(c, text, sendOptions(tele.ModeMarkdown, markup))
}

// Respond acknowledges the current callback query so the client stops its spinner.
func Respond(c tele.Context) error {
	if c.Callback() == nil {
		return nil
	}
	return deliver(c, "callback.answer", "answerCallbackQuery", func() error {
		return c.Respond()
	})
}

func sendOptions(mode tele.ParseMode, markup []*tele.ReplyMarkup) *tele.SendOptions {
	var rm *tele.ReplyMarkup
	if len(markup) > 0 {
		rm = markup[0]
	}
	if mode == "" && rm == nil {
		return nil
	}
	return &tele.SendOptions{ParseMode: mode, ReplyMarkup: rm}
}
