// Package callbacks decodes inline-button callback data.
package callbacks

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// uniquePrefix marks callback data produced by buttons that carry a unique key.
const uniquePrefix = "\f"

// Parse splits raw callback data of the form "\f<unique>|<payload>". Data without the
// prefix is treated as a bare key.
func Parse(data string) (key, payload string) {
	raw := strings.TrimPrefix(data, uniquePrefix)
	key, payload, _ = strings.Cut(raw, "|")
	return strings.TrimSpace(key), payload
}

// ParseCallbackData returns the key and payload of cb. Telebot fills Unique only when a
// dedicated handler matched, so the generic OnCallback path has to decode Data itself.
func ParseCallbackData(cb *tele.Callback) (string, string) {
	if cb == nil {
		return "", ""
	}
	if cb.Unique != "" {
		return cb.Unique, cb.Data
	}
	return Parse(cb.Data)
}

// CallbackKey returns the unique key of the current callback, if any.
func CallbackKey(c tele.Context) string {
	k, _ := ParseCallbackData(c.Callback())
	return k
}

// CallbackPayload returns the payload after '|' of the current callback, if any.
func CallbackPayload(c tele.Context) string {
	_, p := ParseCallbackData(c.Callback())
	return p
}
