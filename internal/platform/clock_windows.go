package platform

import (
	"time"

	"golang.org/x/sys/windows"
)

func bootReading() (time.Duration, error) {
	return time.Duration(windows.GetTickCount64()) * time.Millisecond, nil
}
