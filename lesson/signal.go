package lesson

// Tag identifies an inline button. Its string value is the callback key.
type Tag string

// Button tags understood by the lesson.
const (
	TagReset      Tag = "RESET"
	TagNext       Tag = "NEXT"
	TagYes        Tag = "YES"
	TagWait       Tag = "WAIT"
	TagNew        Tag = "NEW"
	TagEnd        Tag = "END"
	TagShadowNext Tag = "SHADOW_NEXT"
)

// Tags lists every tag the bot registers a callback for.
var Tags = []Tag{TagReset, TagNext, TagYes, TagWait, TagNew, TagEnd, TagShadowNext}

// Known reports whether t belongs to the button vocabulary.
func (t Tag) Known() bool {
	for _, k := range Tags {
		if t == k {
			return true
		}
	}
	return false
}

// SignalKind distinguishes the inbound events the machine reacts to.
type SignalKind uint8

const (
	// SignalStart is an explicit "begin lesson" command such as /start.
	SignalStart SignalKind = iota + 1
	// SignalText is a free-form user message.
	SignalText
	// SignalButton is an inline button press.
	SignalButton
)

// Signal is one inbound event for a conversation.
type Signal struct {
	Kind SignalKind
	Text string
	Tag  Tag
}

// Start builds a start signal.
func Start() Signal { return Signal{Kind: SignalStart} }

// Text builds a free-text signal.
func Text(text string) Signal { return Signal{Kind: SignalText, Text: text} }

// Press builds a button signal.
func Press(tag Tag) Signal { return Signal{Kind: SignalButton, Tag: tag} }

func (s Signal) String() string {
	switch s.Kind {
	case SignalStart:
		return "start"
	case SignalText:
		return "text"
	case SignalButton:
		return "button:" + string(s.Tag)
	}
	return "unknown"
}
