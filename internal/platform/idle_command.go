package platform

import (
	"bufio"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// commandIdleProvider asks an external tool for the idle time.
type commandIdleProvider struct {
	path  string
	args  []string
	parse func(output string) (time.Duration, error)
}

// lookupIdleCommand resolves name on PATH. A missing tool means idle
// detection is unsupported on this host.
func lookupIdleCommand(name string, parse func(string) (time.Duration, error), args ...string) IdleProvider {
	path, err := exec.LookPath(name)
	if err != nil {
		return IdleFunc(unsupportedIdle)
	}
	return &commandIdleProvider{path: path, args: args, parse: parse}
}

func (provider *commandIdleProvider) IdleDuration() (time.Duration, error) {
	output, err := exec.Command(provider.path, provider.args...).Output()
	if err != nil {
		return 0, fmt.Errorf("run %s: %w", provider.path, err)
	}
	return provider.parse(string(output))
}

func unsupportedIdle() (time.Duration, error) {
	return 0, ErrIdleUnsupported
}

// parseIdleMillis reads xprintidle output.
func parseIdleMillis(output string) (time.Duration, error) {
	idleMillis, err := strconv.ParseInt(strings.TrimSpace(output), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle milliseconds: %w", err)
	}
	if idleMillis < 0 {
		idleMillis = 0
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}

// parseHIDIdleTime reads the HIDIdleTime property, in nanoseconds, from
// ioreg output.
func parseHIDIdleTime(output string) (time.Duration, error) {
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, `"HIDIdleTime"`) {
			continue
		}
		_, value, found := strings.Cut(line, "=")
		if !found {
			break
		}
		idleNanos, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse HIDIdleTime: %w", err)
		}
		if idleNanos < 0 {
			idleNanos = 0
		}
		return time.Duration(idleNanos), nil
	}
	return 0, fmt.Errorf("parse HIDIdleTime: property not found")
}
