package lesson

import (
	"fmt"
	"strings"

	"github.com/m3rciful/ginabot/core/telegram/format"
)

// Button is one inline button of a reply.
type Button struct {
	Label string
	Tag   Tag
}

// Reply is one outbound message. Markdown selects legacy Telegram Markdown parsing.
type Reply struct {
	Text     string
	Markdown bool
	Buttons  [][]Button
}

// Labels for the inline buttons.
const (
	LabelNext       = "▶ STEP 2로"
	LabelYes        = "✅ 네, 시작할게요"
	LabelWait       = "⏳ 잠시만요"
	LabelConfirm    = "✅ 네"
	LabelReset      = "🔄 Reset"
	LabelShadowNext = "다음 문장 ▶"
	LabelNew        = "새로운 시나리오"
	LabelEnd        = "여기까지"
)

// Prompts sent without moving the lesson.
const (
	msgIdleRender   = "“시작!”이라고 입력하시면 STEP 1부터 진행할게요."
	msgIdleGuidance = "지금은 대기 상태예요. “시작!”이라고 입력하면 STEP 1부터 진행합니다."
	msgStep1Hint    = "준비되셨다면 아래 ‘▶ STEP 2로’ 버튼을 눌러 주세요."
	msgReadyPrompt  = "준비되셨다면 “네” 또는 “시작”이라고 답해 주세요."
	msgConfirm      = "응용 챌린지 진행할까요? “네”라고 답해 주세요."
	msgShadowNudge  = "좋아요! 버튼으로 다음 문장으로 넘어가요."
	msgChoose       = "세션을 종료할까요? “여기까지” 또는 “새로운 시나리오” 중 하나를 선택해 주세요."
	msgReset        = "세션이 초기화되었어요. “시작!”이라고 입력해 주세요."
	msgWait         = "알겠습니다. 준비되시면 “시작”이라고 알려주세요."
	msgFarewell     = "오늘 학습을 종료합니다. 수고 많으셨어요! 👋"
)

var keyExpressions = []string{
	"1) Could you help me with…? — …좀 도와주실 수 있나요?",
	"2) I’d like to… — …하려고 합니다.",
	"3) Is it possible to…? — …가능할까요?",
	"4) Could you explain how to…? — …하는 방법을 설명해 주실 수 있나요?",
	"5) That’s all, thank you. — 여기까지입니다. 감사합니다.",
}

const step2Demo = `안녕하세요! 튜터 지나입니다. 제가 먼저 1인 2역 시연을 보여드릴게요.
(시연 시작)
Gina (Staff): "Hello! How can I help you today?"
Gina (Customer): "Hi, I’d like to send a small parcel, please."
Gina (Staff): "Sure. Domestic or international?"
Gina (Customer): "Domestic, please."
Gina (Staff): "Great. Please fill out this form."
Gina (Customer): "Okay. That’s all, thank you."
(시연 끝)

자, 이제 저와 함께 역할극을 해볼까요? 준비되셨나요?`

const step4Feedback = `롤플레이 좋았어요! 😊
응용 롤플레이를 위해 표현 2가지를 드릴게요:
• I have a small request: …
• Could you double-check that for me?
이 표현들을 사용해 응용 챌린지에 도전해 보시겠어요?`

const step5Demo = `응용 상황 시연을 보여드릴게요.
(시연) Gina(Staff): "Are you ready to proceed?"
Gina(Customer): "Yes, I have a small request: could you double-check the address?"
Gina(Staff): "Of course. It matches the form."
(끝)

자, 그럼 두 번째 롤플레이를 시작해볼까요?
Teacher: "Are you ready to proceed, or do you need a moment?"`

const step6Summary = `훌륭해요! 오늘 ‘I’d like to…’와 정중한 요청 표현을 잘 쓰셨어요.
교정 팁: “I want to …” 대신 “I’d like to …”가 더 공손합니다.
추가 어휘: receipt, fragile, domestic, declare
암기 문장: “Could you double-check that for me?”`

const step8Finish = `오늘 수고 많으셨어요! 🎉
새로운 시나리오에 도전하시겠어요, 아니면 여기까지 할까요?
• 새로운 시나리오 → "새로운 시나리오"
• 종료 → "여기까지"`

var (
	rowReset  = []Button{{Label: LabelReset, Tag: TagReset}}
	rowShadow = []Button{{Label: LabelShadowNext, Tag: TagShadowNext}}
)

// Render builds the message for the session's current step. It reads the session only.
func (m *Machine) Render(s Session) Reply {
	switch s.Step {
	case StepIdle:
		return plain(msgIdleRender)
	case Step1:
		return Reply{
			Text:     m.step1(s.Topic),
			Markdown: true,
			Buttons:  [][]Button{{{Label: LabelNext, Tag: TagNext}}, rowReset},
		}
	case Step2:
		return Reply{
			Text: step2Demo,
			Buttons: [][]Button{
				{{Label: LabelYes, Tag: TagYes}, {Label: LabelWait, Tag: TagWait}},
				rowReset,
			},
		}
	case Step3:
		return Reply{Text: m.step3(s.Topic), Markdown: true}
	case Step4:
		return Reply{
			Text:    step4Feedback,
			Buttons: [][]Button{{{Label: LabelConfirm, Tag: TagYes}}, rowReset},
		}
	case Step5:
		return plain(step5Demo)
	case Step6:
		return plain(step6Summary)
	case Step7:
		line, ok := m.catalog.DrillLine(s.ShadowIx)
		if !ok {
			return m.Render(Session{Step: Step8})
		}
		return Reply{
			Text:    fmt.Sprintf("쉐도잉 %d/%d\n저를 따라 말해보세요:\n\"%s\"", s.ShadowIx+1, m.catalog.DrillLen(), line),
			Buttons: [][]Button{rowShadow, rowReset},
		}
	case Step8:
		return Reply{
			Text: step8Finish,
			Buttons: [][]Button{
				{{Label: LabelNew, Tag: TagNew}},
				{{Label: LabelEnd, Tag: TagEnd}},
			},
		}
	}
	return plain(msgIdleRender)
}

func (m *Machine) step1(topic string) string {
	var b strings.Builder
	b.WriteString("⭐ *STEP 1: 미션 제시*\n")
	fmt.Fprintf(&b, "오늘의 미션/역할: %s\n", format.Markdown(topic))
	b.WriteString("상황 시나리오: 당신은 해당 장소에서 필요한 일을 처리해야 합니다. 저는 직원/상대역(지나)입니다.\n\n")
	b.WriteString("핵심 표현 5가지:\n")
	for _, e := range keyExpressions {
		b.WriteString(e)
		b.WriteByte('\n')
	}
	b.WriteString("\n전체 대화 예시:\n")
	for _, l := range m.catalog.Example(topic) {
		b.WriteString(format.Markdown(l.String()))
		b.WriteByte('\n')
	}
	b.WriteString("\n오늘의 꿀팁: 요청할 때 ‘I want…’ 대신 ‘I’d like to…’를 쓰면 더 공손하게 들립니다.")
	return b.String()
}

func (m *Machine) step3(topic string) string {
	return "*(STEP 3: 기본 롤플레이)*\n" +
		"Teacher: \"" + format.Markdown(m.catalog.Opening(topic)) + "\"\n" +
		"_(영어로 자유 답변)_"
}

func plain(text string) Reply { return Reply{Text: text} }
