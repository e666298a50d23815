package router

import (
	"log/slog"

	tg "github.com/m3rciful/ginabot/core/telegram"
	"github.com/m3rciful/ginabot/core/telegram/callbacks"
	tghelpers "github.com/m3rciful/ginabot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// CallbackRoute routes every inline-button press through the registry. The query is
// acknowledged before the handler runs; unknown keys go to the registry fallback.
func CallbackRoute(reg *tg.Registry) tg.Route {
	handler := func(c tele.Context) error {
		if c.Callback() == nil {
			return nil
		}
		key, _ := callbacks.ParseCallbackData(c.Callback())
		s := summary{
			name:   "callback." + normalizeHandlerName(key),
			extras: []slog.Attr{slog.String("cb_key", key)},
		}

		_ = tghelpers.Respond(c)

		h, ok := reg.GetCallback(key)
		if !ok || h == nil {
			s.status = "ignored"
			s.extras = append(s.extras, slog.String("reason", "not_found"))
			h = reg.CallbackNotFound()
		}
		return s.run(c, func() error {
			if h == nil {
				return nil
			}
			return h(c)
		})
	}
	return tg.Route{Endpoint: tele.OnCallback, Handler: handler}
}
