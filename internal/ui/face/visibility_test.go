package face

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type suspendRecorder struct {
	calls []bool
}

func (recorder *suspendRecorder) SetSuspend(suspend bool) {
	recorder.calls = append(recorder.calls, suspend)
}

func TestVisibilityCombinesReasons(t *testing.T) {
	recorder := &suspendRecorder{}
	visibility := NewVisibility(recorder)

	visibility.Set(ReasonUnselected, true)
	visibility.Set(ReasonHidden, true)
	visibility.Set(ReasonUnselected, false)
	assert.True(t, visibility.Suspended())
	assert.True(t, visibility.Holds(ReasonHidden))
	assert.False(t, visibility.Holds(ReasonUnselected))

	visibility.Set(ReasonHidden, false)
	visibility.Set(ReasonAway, false)

	assert.Equal(t, []bool{true, false}, recorder.calls)
	assert.False(t, visibility.Suspended())
}

func TestVisibilityRetarget(t *testing.T) {
	first := &suspendRecorder{}
	visibility := NewVisibility(first)
	visibility.Set(ReasonAway, true)

	second := &suspendRecorder{}
	visibility.Retarget(second)
	visibility.Set(ReasonAway, false)

	assert.Equal(t, []bool{true}, first.calls)
	assert.Equal(t, []bool{true, false}, second.calls)
}
