package platform

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestBootClockIsMonotonic(t *testing.T) {
	clock := BootClock(zaptest.NewLogger(t))

	previous := clock.Now()
	assert.Positive(t, previous)
	for i := 0; i < 1000; i++ {
		now := clock.Now()
		assert.GreaterOrEqual(t, now, previous)
		assert.Zero(t, now%time.Millisecond)
		previous = now
	}
}

func TestBootClockSeedIsWholeMilliseconds(t *testing.T) {
	seed := 10000*time.Hour + 1234567*time.Nanosecond
	clock := newBootClock(seed)

	now := clock.Now()
	assert.Equal(t, 10000*time.Hour+time.Millisecond, now, "a seed ahead of the host is held, truncated")
	assert.Zero(t, now%time.Millisecond)
}

func TestConfigDirEndsWithAppName(t *testing.T) {
	dir, err := ConfigDir("lemonclock")
	if err != nil {
		t.Skipf("no config dir on this host: %v", err)
	}
	assert.Equal(t, "lemonclock", filepath.Base(dir))
}
