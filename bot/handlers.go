package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m3rciful/ginabot/core/buildinfo"
	coretelegram "github.com/m3rciful/ginabot/core/telegram"
	"github.com/m3rciful/ginabot/core/telegram/commands"
	"github.com/m3rciful/ginabot/core/telegram/helpers"
	"github.com/m3rciful/ginabot/lesson"

	tele "gopkg.in/telebot.v4"
)

func (a *App) register(reg *coretelegram.Registry) error {
	errs := []error{
		reg.RegisterCommand("/start", commands.Command{
			Handler:     a.onStart,
			Description: "레슨 시작",
		}),
		reg.RegisterCommand("/reset", commands.Command{
			Handler:     a.onReset,
			Description: "세션 초기화",
			Aliases:     []string{"초기화"},
		}),
	}
	if a.cfg.Telegram.AdminID != 0 {
		errs = append(errs, reg.RegisterCommand("/stats", commands.Command{
			Handler:     a.onStats,
			Description: "세션 통계",
			AdminOnly:   true,
			Hidden:      true,
		}))
	}
	for _, tag := range lesson.Tags {
		errs = append(errs, reg.RegisterCallback(string(tag), a.onButton(tag)))
	}
	reg.SetTextFallback(a.onText)
	return errors.Join(errs...)
}

func (a *App) onStart(c tele.Context) error {
	return a.dispatch(c, lesson.Start())
}

func (a *App) onReset(c tele.Context) error {
	return a.dispatch(c, lesson.Press(lesson.TagReset))
}

func (a *App) onText(c tele.Context) error {
	return a.dispatch(c, lesson.Text(c.Text()))
}

func (a *App) onButton(tag lesson.Tag) tele.HandlerFunc {
	return func(c tele.Context) error {
		return a.dispatch(c, lesson.Press(tag))
	}
}

// dispatch runs one signal to completion under the conversation lock, send included,
// so replies of one chat go out in the order their updates arrived.
func (a *App) dispatch(c tele.Context, sig lesson.Signal) error {
	key := conversationKey(c)
	if key == 0 {
		return nil
	}
	ctx := helpers.BuildContext(c)
	return a.sessions.With(key, func(s *lesson.Session) error {
		reply, ok := a.machine.Handle(ctx, s, sig)
		if !ok {
			return nil
		}
		return a.send(c, reply)
	})
}

func conversationKey(c tele.Context) int64 {
	chatID, userID := helpers.IDs(c)
	if chatID != 0 {
		return chatID
	}
	return userID
}

func (a *App) onStats(c tele.Context) error {
	return helpers.SendText(c, a.statsText())
}

func (a *App) statsText() string {
	var idle int
	perStep := make(map[lesson.Step]int, len(lesson.Steps))
	a.sessions.Range(func(_ int64, s lesson.Session) {
		if s.Step == lesson.StepIdle {
			idle++
			return
		}
		perStep[s.Step]++
	})

	var b strings.Builder
	fmt.Fprintf(&b, "build: %s\n", buildinfo.Summary())
	fmt.Fprintf(&b, "sessions: %d\n", a.sessions.Len())
	fmt.Fprintf(&b, "%s: %d\n", lesson.StepIdle, idle)
	for _, st := range lesson.Steps {
		fmt.Fprintf(&b, "%s: %d\n", st, perStep[st])
	}
	return strings.TrimRight(b.String(), "\n")
}

func sendReply(c tele.Context, r lesson.Reply) error {
	markup := Markup(r)
	if r.Markdown {
		return helpers.SendMD(c, r.Text, markup)
	}
	return helpers.SendText(c, r.Text, markup)
}
