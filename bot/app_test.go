package bot

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/m3rciful/ginabot/core/config"
	coretelegram "github.com/m3rciful/ginabot/core/telegram"
	"github.com/m3rciful/ginabot/lesson"
)

type recorder struct {
	mu      sync.Mutex
	replies map[int64][]lesson.Reply
}

func (r *recorder) send(c tele.Context, reply lesson.Reply) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.replies == nil {
		r.replies = make(map[int64][]lesson.Reply)
	}
	key := conversationKey(c)
	r.replies[key] = append(r.replies[key], reply)
	return nil
}

func (r *recorder) last(t *testing.T, chat int64) lesson.Reply {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	got := r.replies[chat]
	require.NotEmpty(t, got)
	return got[len(got)-1]
}

func (r *recorder) count(chat int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.replies[chat])
}

type harness struct {
	app *App
	reg *coretelegram.Registry
	rec *recorder
	bot *tele.Bot
}

func newHarness(t *testing.T, adminID int64) *harness {
	t.Helper()
	catalog, err := lesson.DefaultCatalog()
	require.NoError(t, err)
	m := lesson.NewMachine(catalog,
		lesson.WithRand(rand.New(rand.NewPCG(7, 11))),
		lesson.WithIDGenerator(func() string { return "lesson-1" }),
	)
	cfg := &Config{}
	cfg.Telegram.AdminID = adminID
	app := New(cfg, m)
	rec := &recorder{}
	app.send = rec.send

	reg := coretelegram.NewRegistry()
	require.NoError(t, app.register(reg))

	b, err := tele.NewBot(tele.Settings{Offline: true})
	require.NoError(t, err)
	return &harness{app: app, reg: reg, rec: rec, bot: b}
}

func (h *harness) text(t *testing.T, chat int64, text string) {
	t.Helper()
	c := h.bot.NewContext(tele.Update{ID: 1, Message: &tele.Message{
		Text:   text,
		Sender: &tele.User{ID: chat},
		Chat:   &tele.Chat{ID: chat, Type: tele.ChatPrivate},
	}})
	if _, def, ok := h.reg.LookupCommand(text); ok {
		require.NoError(t, def.Handler(c))
		return
	}
	require.NoError(t, h.reg.TextFallback()(c))
}

func (h *harness) press(t *testing.T, chat int64, tag lesson.Tag) {
	t.Helper()
	c := h.bot.NewContext(tele.Update{ID: 2, Callback: &tele.Callback{
		Data:    "\f" + string(tag),
		Sender:  &tele.User{ID: chat},
		Message: &tele.Message{Chat: &tele.Chat{ID: chat}},
	}})
	cb, ok := h.reg.GetCallback(string(tag))
	require.True(t, ok, tag)
	require.NoError(t, cb(c))
}

func (h *harness) step(t *testing.T, chat int64) lesson.Step {
	t.Helper()
	s, ok := h.app.Sessions().Get(chat)
	require.True(t, ok)
	return s.Step
}

func TestRegisterHandlers(t *testing.T) {
	h := newHarness(t, 0)
	assert.ElementsMatch(t, []string{"/start", "/reset"}, keys(h.reg.Commands()))
	assert.Len(t, h.reg.ListCallbacks(), len(lesson.Tags))
	assert.NotNil(t, h.reg.TextFallback())

	_, def, ok := h.reg.LookupCommand("/초기화")
	require.True(t, ok)
	assert.Equal(t, "세션 초기화", def.Description)
	_, _, ok = h.reg.LookupCommand("/시작")
	assert.False(t, ok, "start phrases stay on the text path")

	admin := newHarness(t, 99)
	cmd, ok := admin.reg.Commands()["/stats"]
	require.True(t, ok)
	assert.True(t, cmd.AdminOnly)
	assert.True(t, cmd.Hidden)
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestFullLessonFlow(t *testing.T) {
	h := newHarness(t, 0)
	const chat = 501

	h.text(t, chat, "/start")
	assert.Equal(t, lesson.Step1, h.step(t, chat))
	r := h.rec.last(t, chat)
	assert.True(t, r.Markdown)
	assert.Equal(t, []lesson.Tag{lesson.TagNext, lesson.TagReset}, tags(r))

	h.press(t, chat, lesson.TagNext)
	assert.Equal(t, lesson.Step2, h.step(t, chat))

	h.text(t, chat, "음...")
	assert.Equal(t, lesson.Step2, h.step(t, chat))

	h.text(t, chat, "OK")
	assert.Equal(t, lesson.Step3, h.step(t, chat))

	h.text(t, chat, "I'd like to book a room.")
	assert.Equal(t, lesson.Step4, h.step(t, chat))

	h.press(t, chat, lesson.TagYes)
	assert.Equal(t, lesson.Step5, h.step(t, chat))

	h.text(t, chat, "answer")
	h.text(t, chat, "answer")
	assert.Equal(t, lesson.Step7, h.step(t, chat))

	drill := h.app.machine.Catalog().DrillLen()
	for i := 0; i < drill; i++ {
		h.press(t, chat, lesson.TagShadowNext)
	}
	assert.Equal(t, lesson.Step8, h.step(t, chat))
	assert.Equal(t, []lesson.Tag{lesson.TagNew, lesson.TagEnd}, tags(h.rec.last(t, chat)))

	h.press(t, chat, lesson.TagEnd)
	s, _ := h.app.Sessions().Get(chat)
	assert.Equal(t, lesson.Session{}, s)
}

func TestResetAlias(t *testing.T) {
	h := newHarness(t, 0)
	const chat = 502

	h.text(t, chat, "시작")
	require.Equal(t, lesson.Step1, h.step(t, chat))
	h.text(t, chat, "/초기화")
	assert.Equal(t, lesson.StepIdle, h.step(t, chat))
	assert.Empty(t, h.rec.last(t, chat).Buttons)
}

func TestUnknownTagSendsNothing(t *testing.T) {
	h := newHarness(t, 0)
	const chat = 503

	_, registered := h.reg.GetCallback("BOGUS")
	require.False(t, registered)

	c := h.bot.NewContext(tele.Update{ID: 3, Callback: &tele.Callback{
		Data:    "\fBOGUS",
		Sender:  &tele.User{ID: chat},
		Message: &tele.Message{Chat: &tele.Chat{ID: chat}},
	}})
	require.NoError(t, h.app.dispatch(c, lesson.Press(lesson.Tag("BOGUS"))))
	assert.Equal(t, 0, h.rec.count(chat))
	assert.Equal(t, lesson.StepIdle, h.step(t, chat))
}

func TestStaleEndButtonEndsLesson(t *testing.T) {
	h := newHarness(t, 0)
	const chat = 505

	h.text(t, chat, "/start")
	h.press(t, chat, lesson.TagNext)
	h.press(t, chat, lesson.TagNext)
	require.Equal(t, lesson.Step3, h.step(t, chat))

	h.press(t, chat, lesson.TagEnd)
	s, _ := h.app.Sessions().Get(chat)
	assert.Equal(t, lesson.Session{}, s)
	assert.Empty(t, h.rec.last(t, chat).Buttons)
}

func TestStartPhraseRestartsDuringReadinessPrompt(t *testing.T) {
	h := newHarness(t, 0)
	const chat = 506

	h.text(t, chat, "/start")
	h.press(t, chat, lesson.TagNext)
	before, _ := h.app.Sessions().Get(chat)
	require.Equal(t, lesson.Step2, before.Step)

	h.text(t, chat, "시작")
	after, _ := h.app.Sessions().Get(chat)
	assert.Equal(t, lesson.Step1, after.Step)
	assert.Equal(t, before.Topic, after.LastTopic)
}

func TestConversationsAreIndependent(t *testing.T) {
	h := newHarness(t, 0)

	var wg sync.WaitGroup
	for chat := int64(1); chat <= 8; chat++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.text(t, chat, "/start")
			h.press(t, chat, lesson.TagNext)
			h.press(t, chat, lesson.TagYes)
		}()
	}
	wg.Wait()

	for chat := int64(1); chat <= 8; chat++ {
		assert.Equal(t, lesson.Step3, h.step(t, chat), chat)
		assert.Equal(t, 3, h.rec.count(chat), chat)
	}
}

func TestSameConversationSerialised(t *testing.T) {
	h := newHarness(t, 0)
	const chat = 504
	h.text(t, chat, "/start")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.press(t, chat, lesson.TagNext)
		}()
	}
	wg.Wait()

	assert.Equal(t, lesson.Step8, h.step(t, chat))
	assert.Equal(t, 21, h.rec.count(chat))
}

func TestStatsText(t *testing.T) {
	h := newHarness(t, 99)
	h.text(t, 1, "/start")
	h.text(t, 2, "/start")
	h.press(t, 2, lesson.TagNext)
	h.text(t, 3, "hello")

	out := h.app.statsText()
	assert.Contains(t, out, "sessions: 3")
	assert.Contains(t, out, "IDLE: 1")
	assert.Contains(t, out, "S1: 1")
	assert.Contains(t, out, "S2: 1")
	assert.Contains(t, out, "S8: 0")
	assert.True(t, strings.HasPrefix(out, "build: "))
}

func TestTelegramRunOptions(t *testing.T) {
	h := newHarness(t, 0)
	opts, err := h.app.TelegramRunOptions()
	require.NoError(t, err)
	assert.Len(t, opts.Routes, 4)
	assert.NotEmpty(t, opts.Middlewares)
	assert.Same(t, &h.app.cfg.Config, opts.Config)
}

func TestTasks(t *testing.T) {
	app := New(&Config{Config: coreconfig.Config{HTTP: coreconfig.HTTPConfig{Port: 8000}}}, nil)
	tasks := app.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "http", tasks[0].Name)

	app.cfg.HTTP.Disabled = true
	assert.Empty(t, app.Tasks())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "telegram:\n  admin_id: 5\nlesson:\n  catalog_path: /etc/catalog.yaml\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("LESSON_CATALOG_PATH", "")
	require.NoError(t, os.Unsetenv("LESSON_CATALOG_PATH"))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, int64(5), cfg.Telegram.AdminID)
	assert.Equal(t, "/etc/catalog.yaml", cfg.Lesson.CatalogPath)
	assert.Equal(t, coreconfig.DefaultHTTPPort, cfg.CoreConfig().HTTP.Port)

	t.Setenv("LESSON_CATALOG_PATH", "/override.yaml")
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/override.yaml", cfg.Lesson.CatalogPath)
}

func TestLoadConfigRequiresToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	_, err := LoadConfig("")
	assert.ErrorContains(t, err, "BOT_TOKEN")
}

func TestBootstrapRejectsBadCatalog(t *testing.T) {
	cfg := &Config{}
	cfg.Lesson.CatalogPath = filepath.Join(t.TempDir(), "absent.yaml")
	_, err := Bootstrap(context.Background(), cfg)
	assert.ErrorContains(t, err, "bootstrap: catalog")

	_, err = Bootstrap(context.Background(), nil)
	assert.Error(t, err)
}

func tags(r lesson.Reply) []lesson.Tag {
	var out []lesson.Tag
	for _, row := range r.Buttons {
		for _, b := range row {
			out = append(out, b.Tag)
		}
	}
	return out
}
