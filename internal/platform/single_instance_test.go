package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortFromNameIsStableAndInRange(t *testing.T) {
	port := portFromName("LemonClock")
	assert.Equal(t, port, portFromName("LemonClock"))
	assert.GreaterOrEqual(t, port, 20000)
	assert.LessOrEqual(t, port, 39999)
	assert.NotEqual(t, instanceAddress("LemonClock"), instanceAddress("LemonClock-other"))
}

func TestSecondInstanceIsRejectedUntilRelease(t *testing.T) {
	name := "LemonClock-test-" + t.Name()

	first, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	assert.Equal(t, instanceAddress(name), first.Address())

	_, err = AcquireSingleInstance(name)
	require.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, first.Release())
	require.NoError(t, first.Release())

	second, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	require.NoError(t, second.Release())
}

func TestNilGuard(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
}
