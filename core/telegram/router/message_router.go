package router

import (
	"time"

	tg "github.com/m3rciful/ginabot/core/telegram"

	tele "gopkg.in/telebot.v4"
)

// TextRoute handles plain text. Telegram only recognises ASCII command names, so
// text such as "/초기화" lands here and is resolved against command aliases first;
// everything else goes to the registry text fallback.
func TextRoute(reg *tg.Registry, opts CommandRouteOptions) tg.Route {
	handler := func(c tele.Context) error {
		if key, def, ok := reg.LookupCommand(c.Text()); ok && def.Handler != nil {
			return wrapCommand(key, def, opts)(c)
		}
		if fb := reg.TextFallback(); fb != nil {
			return summary{name: "text"}.run(c, func() error { return fb(c) })
		}
		summary{name: "text", status: "skip"}.log(c, time.Now(), nil)
		return nil
	}
	return tg.Route{Endpoint: tele.OnText, Handler: handler}
}
