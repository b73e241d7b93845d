package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIconsLoad(t *testing.T) {
	for _, name := range []string{AppIcon, TrayRunningIcon, TrayIdleIcon} {
		resource, err := Icon(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(resource.Content()), "<svg")
		assert.Same(t, resource, MustIcon(name), "icons are cached")
	}

	_, err := Icon("missing.svg")
	assert.ErrorContains(t, err, "load resource icons/missing.svg")
	assert.Panics(t, func() { MustIcon("missing.svg") })
}
