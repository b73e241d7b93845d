package platform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdleMillis(t *testing.T) {
	idle, err := parseIdleMillis("1500\n")
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, idle)

	idle, err = parseIdleMillis("-3")
	require.NoError(t, err)
	assert.Zero(t, idle)

	_, err = parseIdleMillis("not a number")
	assert.ErrorContains(t, err, "parse idle milliseconds")
}

func TestParseHIDIdleTime(t *testing.T) {
	output := `+-o IOHIDSystem  <class IOHIDSystem, id 0x100000456>
    {
      "HIDParameters" = {"HIDClickTime"=500000000}
      "HIDIdleTime" = 2500000000
    }
`
	idle, err := parseHIDIdleTime(output)
	require.NoError(t, err)
	assert.Equal(t, 2500*time.Millisecond, idle)

	_, err = parseHIDIdleTime(`"HIDIdleTime" = soon`)
	assert.ErrorContains(t, err, "parse HIDIdleTime")

	_, err = parseHIDIdleTime("+-o IOHIDSystem\n")
	assert.ErrorContains(t, err, "property not found")
}

func TestMissingIdleCommandIsUnsupported(t *testing.T) {
	provider := lookupIdleCommand("lemonclock-no-such-idle-tool", parseIdleMillis)

	_, err := provider.IdleDuration()
	assert.ErrorIs(t, err, ErrIdleUnsupported)
}
