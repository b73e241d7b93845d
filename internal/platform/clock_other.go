//go:build !linux && !darwin && !windows

package platform

import (
	"errors"
	"time"
)

func bootReading() (time.Duration, error) {
	return 0, errors.New("boot clock unsupported")
}
