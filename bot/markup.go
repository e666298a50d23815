package bot

import (
	"github.com/m3rciful/ginabot/core/telegram/keyboard"
	"github.com/m3rciful/ginabot/lesson"

	tele "gopkg.in/telebot.v4"
)

// Markup turns the reply button rows into an inline keyboard; nil when the reply has none.
func Markup(r lesson.Reply) *tele.ReplyMarkup {
	rows := make([][]keyboard.InlineBtn, 0, len(r.Buttons))
	for _, row := range r.Buttons {
		btns := make([]keyboard.InlineBtn, 0, len(row))
		for _, b := range row {
			btns = append(btns, keyboard.InlineBtn{Text: b.Label, Unique: string(b.Tag)})
		}
		rows = append(rows, btns)
	}
	return keyboard.InlineButtonsRows(rows...)
}
