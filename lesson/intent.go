package lesson

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var (
	startPhrases = []string{"시작", "시작!", "/시작"}
	readyWords   = []string{"네", "시작", "좋", "ok", "ready", "go"}
	confirmWords = []string{"네", "좋", "ok", "시작"}
)

const (
	newScenarioWord = "새로운"
	endLessonWord   = "여기까지"
)

// normalize composes Hangul syllables and case-folds, so that "OK", "Ok" and
// decomposed jamo input compare equal to the vocabulary.
func normalize(text string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(text)))
}

// IsStartPhrase reports whether text is one of the literal lesson-start phrases.
func IsStartPhrase(text string) bool {
	text = norm.NFC.String(strings.TrimSpace(text))
	for _, p := range startPhrases {
		if text == p {
			return true
		}
	}
	return false
}

func containsAny(text string, words []string) bool {
	text = normalize(text)
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func isReady(text string) bool   { return containsAny(text, readyWords) }
func isConfirm(text string) bool { return containsAny(text, confirmWords) }

func wantsNewScenario(text string) bool { return containsAny(text, []string{newScenarioWord}) }
func wantsEnd(text string) bool         { return containsAny(text, []string{endLessonWord}) }
