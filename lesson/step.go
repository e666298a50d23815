package lesson

import "fmt"

// Step is a lesson state. The zero value is StepIdle.
type Step uint8

const (
	// StepIdle means no lesson is running.
	StepIdle Step = iota
	// Step1 presents the mission, key expressions and an example dialogue.
	Step1
	// Step2 is the tutor's two-role demonstration.
	Step2
	// Step3 is the basic role-play opener.
	Step3
	// Step4 gives feedback and two extra expressions.
	Step4
	// Step5 demonstrates the applied situation.
	Step5
	// Step6 summarises the lesson.
	Step6
	// Step7 is the shadowing drill.
	Step7
	// Step8 wraps up and offers a new scenario.
	Step8
)

// Steps lists the lesson steps in their fixed order, excluding StepIdle.
var Steps = [...]Step{Step1, Step2, Step3, Step4, Step5, Step6, Step7, Step8}

// String returns the wire name used in logs and diagnostics.
func (s Step) String() string {
	switch s {
	case StepIdle:
		return "IDLE"
	case Step1, Step2, Step3, Step4, Step5, Step6, Step7, Step8:
		return fmt.Sprintf("S%d", uint8(s))
	}
	return fmt.Sprintf("Step(%d)", uint8(s))
}

// Valid reports whether s is one of the nine defined states.
func (s Step) Valid() bool {
	return s <= Step8
}

// Next returns the following lesson step. Step8 is terminal and returns itself;
// StepIdle advances to Step1.
func (s Step) Next() Step {
	if s >= Step8 {
		return Step8
	}
	return s + 1
}
