package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/ginabot/core/telegram/commands"
)

func noop(tele.Context) error { return nil }

func TestRegistryCommands(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "Start"}))
	require.NoError(t, reg.RegisterCommand("/reset", commands.Command{Handler: noop, Description: "Reset", Aliases: []string{"초기화"}}))
	require.NoError(t, reg.RegisterCommand("/stats", commands.Command{Handler: noop, Description: "Stats", AdminOnly: true, Hidden: true}))

	assert.ErrorIs(t, reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "again"}), ErrDuplicate)
	assert.ErrorIs(t, reg.RegisterCommand("start", commands.Command{Handler: noop, Description: "x"}), ErrInvalidCommand)
	assert.ErrorIs(t, reg.RegisterCommand("/nohandler", commands.Command{Description: "x"}), ErrInvalidCommand)

	visible := reg.ListCommands(true)
	require.Len(t, visible, 2)
	assert.Equal(t, "/reset", visible[0].Text)
	assert.Equal(t, "/start", visible[1].Text)
	assert.Len(t, reg.ListCommands(false), 3)
	assert.Len(t, reg.Commands(), 3)
}

func TestRegistryLookupCommand(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterCommand("/reset", commands.Command{Handler: noop, Description: "Reset", Aliases: []string{"초기화"}}))

	key, _, ok := reg.LookupCommand("/reset")
	assert.True(t, ok)
	assert.Equal(t, "/reset", key)

	key, _, ok = reg.LookupCommand("/초기화")
	assert.True(t, ok)
	assert.Equal(t, "/reset", key)

	key, _, ok = reg.LookupCommand("/reset@gina_bot")
	assert.True(t, ok)
	assert.Equal(t, "/reset", key)

	_, _, ok = reg.LookupCommand("reset")
	assert.False(t, ok, "plain words must reach the text fallback")
	_, _, ok = reg.LookupCommand("초기화")
	assert.False(t, ok)
	_, _, ok = reg.LookupCommand("/시작")
	assert.False(t, ok)
}

func TestRegistryCallbacks(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterCallback("NEXT", noop))
	require.NoError(t, reg.RegisterCallback("RESET", noop))
	assert.ErrorIs(t, reg.RegisterCallback("NEXT", noop), ErrDuplicate)
	assert.ErrorIs(t, reg.RegisterCallback("", noop), ErrInvalidCallback)
	assert.ErrorIs(t, reg.RegisterCallback("X", nil), ErrInvalidCallback)

	_, ok := reg.GetCallback("NEXT")
	assert.True(t, ok)
	_, ok = reg.GetCallback("BOGUS")
	assert.False(t, ok)
	assert.Equal(t, []string{"NEXT", "RESET"}, reg.ListCallbacks())

	require.NotNil(t, reg.CallbackNotFound())
	assert.NoError(t, reg.CallbackNotFound()(nil))

	assert.Nil(t, reg.TextFallback())
	reg.SetTextFallback(noop)
	assert.NotNil(t, reg.TextFallback())
}
