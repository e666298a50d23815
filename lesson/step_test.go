package lesson

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepString(t *testing.T) {
	assert.Equal(t, "IDLE", StepIdle.String())
	assert.Equal(t, "S1", Step1.String())
	assert.Equal(t, "S8", Step8.String())
	assert.Equal(t, "Step(9)", Step(9).String())
}

func TestStepNextClamps(t *testing.T) {
	assert.Equal(t, Step1, StepIdle.Next())
	for i := 0; i < len(Steps)-1; i++ {
		assert.Equal(t, Steps[i+1], Steps[i].Next())
	}
	assert.Equal(t, Step8, Step8.Next())
	assert.Equal(t, Step8, Step8.Next().Next())
}

func TestStepValid(t *testing.T) {
	assert.True(t, StepIdle.Valid())
	for _, s := range Steps {
		assert.True(t, s.Valid())
	}
	assert.False(t, Step(9).Valid())
}

func TestTagKnown(t *testing.T) {
	for _, tag := range Tags {
		assert.True(t, tag.Known(), tag)
	}
	assert.False(t, Tag("BOGUS").Known())
	assert.Equal(t, "button:NEXT", Press(TagNext).String())
	assert.Equal(t, "text", Text("hi").String())
	assert.Equal(t, "start", Start().String())
}
