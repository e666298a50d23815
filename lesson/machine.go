// Package lesson implements the scripted eight-step speaking lesson: the session
// model, the transition rules and the content rendered for every step.
package lesson

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m3rciful/ginabot/core/logger"
)

const component = "lesson"

// Session is the per-conversation lesson state. The zero value is an idle session.
type Session struct {
	Step      Step
	Topic     string
	LastTopic string
	ShadowIx  int
	LessonID  string
}

// Machine maps (session, signal) to the next session and the reply to send.
// It holds no per-conversation state and is safe for concurrent use; callers
// serialise signals of one conversation themselves.
type Machine struct {
	catalog *Catalog

	rndMu sync.Mutex
	rnd   *rand.Rand
	newID func() string
}

// Option customises a Machine.
type Option func(*Machine)

// WithRand replaces the random source used for topic selection.
func WithRand(r *rand.Rand) Option {
	return func(m *Machine) {
		if r != nil {
			m.rnd = r
		}
	}
}

// WithIDGenerator replaces the lesson id generator.
func WithIDGenerator(fn func() string) Option {
	return func(m *Machine) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// NewMachine builds a machine over an immutable catalog.
func NewMachine(catalog *Catalog, opts ...Option) *Machine {
	now := uint64(time.Now().UnixNano())
	m := &Machine{
		catalog: catalog,
		rnd:     rand.New(rand.NewPCG(now, now>>1|1)),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Catalog exposes the content the machine renders.
func (m *Machine) Catalog() *Catalog { return m.catalog }

// Handle applies sig to s in place and returns the reply to send. The boolean is false
// when the signal produces no message; the session is unchanged in that case. A session
// holding an undefined step is reset to idle before the signal is applied.
func (m *Machine) Handle(ctx context.Context, s *Session, sig Signal) (Reply, bool) {
	if !s.Step.Valid() {
		logger.Warn(ctx, component, "lesson.corrupt", slog.String("step", s.Step.String()))
		*s = Session{}
	}
	from := s.Step
	var (
		reply Reply
		ok    bool
	)
	switch sig.Kind {
	case SignalStart:
		reply, ok = m.begin(ctx, s), true
	case SignalText:
		reply, ok = m.onText(ctx, s, sig.Text)
	case SignalButton:
		reply, ok = m.onButton(ctx, s, sig.Tag)
	}

	outcome := "stay"
	switch {
	case !ok:
		outcome = "ignored"
	case s.Step != from:
		outcome = "advance"
	}
	if s.LessonID != "" {
		ctx = logger.WithLessonID(ctx, s.LessonID)
	}
	logger.Debug(ctx, component, "lesson.transition",
		slog.String("signal", sig.String()),
		slog.String("step_from", from.String()),
		slog.String("step", s.Step.String()),
		slog.String("outcome", outcome),
		slog.Int("shadow_ix", s.ShadowIx),
	)
	return reply, ok
}

func (m *Machine) begin(ctx context.Context, s *Session) Reply {
	if s.Topic != "" {
		s.LastTopic = s.Topic
	}
	s.Topic = m.pick(s.LastTopic)
	s.Step = Step1
	s.ShadowIx = 0
	s.LessonID = m.newID()

	logger.Info(logger.WithLessonID(ctx, s.LessonID), component, "lesson.begin",
		slog.String("topic", s.Topic),
	)
	return m.Render(*s)
}

func (m *Machine) pick(exclude string) string {
	m.rndMu.Lock()
	defer m.rndMu.Unlock()
	return m.catalog.Pick(m.rnd, exclude)
}

func (m *Machine) reset(ctx context.Context, s *Session, event string) {
	if s.LessonID != "" {
		ctx = logger.WithLessonID(ctx, s.LessonID)
	}
	logger.Info(ctx, component, event, slog.String("step_from", s.Step.String()))
	*s = Session{}
}

// enter moves to step, rewinding the drill whenever the shadowing step is entered.
func (m *Machine) enter(s *Session, step Step) {
	s.Step = step
	if step == Step7 {
		s.ShadowIx = 0
	}
}

func (m *Machine) onText(ctx context.Context, s *Session, text string) (Reply, bool) {
	if IsStartPhrase(text) {
		return m.begin(ctx, s), true
	}

	switch s.Step {
	case StepIdle:
		return plain(msgIdleGuidance), true
	case Step1:
		return Reply{Text: msgStep1Hint, Buttons: [][]Button{{{Label: LabelNext, Tag: TagNext}}}}, true
	case Step2:
		if !isReady(text) {
			return plain(msgReadyPrompt), true
		}
		m.enter(s, Step3)
	case Step3:
		m.enter(s, Step4)
	case Step4:
		if !isConfirm(text) {
			return plain(msgConfirm), true
		}
		m.enter(s, Step5)
	case Step5:
		m.enter(s, Step6)
	case Step6:
		m.enter(s, Step7)
	case Step7:
		return Reply{Text: msgShadowNudge, Buttons: [][]Button{rowShadow}}, true
	case Step8:
		switch {
		case wantsNewScenario(text):
			return m.begin(ctx, s), true
		case wantsEnd(text):
			m.reset(ctx, s, "lesson.end")
			return plain(msgFarewell), true
		}
		return plain(msgChoose), true
	default:
		return Reply{}, false
	}
	return m.Render(*s), true
}

func (m *Machine) onButton(ctx context.Context, s *Session, tag Tag) (Reply, bool) {
	if !tag.Known() {
		return Reply{}, false
	}
	switch tag {
	case TagReset:
		m.reset(ctx, s, "lesson.reset")
		return plain(msgReset), true
	case TagNew:
		return m.begin(ctx, s), true
	case TagNext, TagYes:
		if s.Step == StepIdle {
			return m.Render(*s), true
		}
		m.enter(s, s.Step.Next())
		return m.Render(*s), true
	case TagWait:
		if s.Step == StepIdle {
			return m.Render(*s), true
		}
		return plain(msgWait), true
	case TagEnd:
		// Stale END buttons from an earlier wrap-up still close the lesson.
		m.reset(ctx, s, "lesson.end")
		return plain(msgFarewell), true
	case TagShadowNext:
		if s.Step != Step7 {
			return Reply{}, false
		}
		s.ShadowIx++
		if s.ShadowIx >= m.catalog.DrillLen() {
			m.enter(s, Step8)
			logger.Info(logger.WithLessonID(ctx, s.LessonID), component, "lesson.complete",
				slog.String("topic", s.Topic),
			)
		}
		return m.Render(*s), true
	}
	return Reply{}, false
}
