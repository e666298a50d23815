// Package commands describes slash commands exposed by the bot.
package commands

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Command represents a bot command with its handler, description, and metadata.
// Aliases may be written with or without the leading slash; they are matched on
// the text path only, which lets non-ASCII names such as "/초기화" work even though
// Telegram does not treat them as commands.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	AdminOnly   bool
	Hidden      bool
	Aliases     []string
}

// Name extracts the command token from message text: the first word, with any
// "@botname" suffix removed. It returns "" when text is not a slash command.
func Name(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return ""
	}
	name, _, _ := strings.Cut(fields[0], "@")
	return name
}

// HasAlias reports whether name (with leading slash) is one of the command aliases.
func (c Command) HasAlias(name string) bool {
	for _, a := range c.Aliases {
		if !strings.HasPrefix(a, "/") {
			a = "/" + a
		}
		if a == name {
			return true
		}
	}
	return false
}
