package model

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"
)

// NoMark is the reading stored when no mark has been taken. Zero is reserved
// and never returned by a monotonic clock.
const NoMark time.Duration = 0

// MaxMillis is the largest millisecond count that fits in a time.Duration.
const MaxMillis = int64(math.MaxInt64 / int64(time.Millisecond))

const (
	stopwatchStateSize = 1 + 8 + 8
	timerStateSize     = 8 + 8 + 8 + 1
)

var (
	// ErrInvalidState indicates a snapshot whose fields contradict each other.
	ErrInvalidState = errors.New("invalid snapshot")

	// ErrShortBuffer indicates an encoded snapshot of the wrong length.
	ErrShortBuffer = errors.New("snapshot buffer has wrong length")
)

// StopwatchState is the persisted state of a stopwatch. It is an immutable
// value: the owning machine hands out copies and replaces its own fields
// wholesale when a snapshot is restored.
type StopwatchState struct {
	base    time.Duration
	pause   time.Duration
	started bool
}

// NewStopwatchState builds a stopwatch snapshot from raw clock readings.
func NewStopwatchState(started bool, base, pause time.Duration) StopwatchState {
	return StopwatchState{base: base, pause: pause, started: started}
}

// Started reports whether the stopwatch was started since its last reset.
func (state StopwatchState) Started() bool { return state.started }

// Base returns the clock reading that corresponds to a zero reading.
func (state StopwatchState) Base() time.Duration { return state.base }

// PauseMark returns the clock reading taken at pause, or NoMark.
func (state StopwatchState) PauseMark() time.Duration { return state.pause }

// Paused reports whether the snapshot describes a paused stopwatch.
func (state StopwatchState) Paused() bool {
	return state.started && state.pause != NoMark
}

// Validate checks the structural invariants of the snapshot.
func (state StopwatchState) Validate() error {
	if err := validateMarks(state.started, state.base, state.pause); err != nil {
		return err
	}
	if state.Paused() && state.pause < state.base {
		return fmt.Errorf("%w: paused before the base reading", ErrInvalidState)
	}
	return nil
}

func (state StopwatchState) String() string {
	return fmt.Sprintf("StopwatchState[base=%d, pause=%d, started=%t]",
		state.base.Milliseconds(), state.pause.Milliseconds(), state.started)
}

// MarshalBinary encodes the snapshot as started, base and pause, with the
// readings stored as big-endian milliseconds.
func (state StopwatchState) MarshalBinary() ([]byte, error) {
	data := make([]byte, stopwatchStateSize)
	data[0] = boolByte(state.started)
	putMillis(data[1:], state.base)
	putMillis(data[9:], state.pause)
	return data, nil
}

// UnmarshalBinary decodes a snapshot written by MarshalBinary.
func (state *StopwatchState) UnmarshalBinary(data []byte) error {
	if len(data) != stopwatchStateSize {
		return fmt.Errorf("decode stopwatch state: %w: got %d bytes", ErrShortBuffer, len(data))
	}
	base, baseErr := millis(data[1:])
	pause, pauseErr := millis(data[9:])
	if err := errors.Join(baseErr, pauseErr); err != nil {
		return fmt.Errorf("decode stopwatch state: %w", err)
	}
	decoded := StopwatchState{
		started: data[0] != 0,
		base:    base,
		pause:   pause,
	}
	if err := decoded.Validate(); err != nil {
		return fmt.Errorf("decode stopwatch state: %w", err)
	}
	*state = decoded
	return nil
}

// TimerState is the persisted state of a countdown timer.
type TimerState struct {
	base    time.Duration
	pause   time.Duration
	total   time.Duration
	started bool
}

// NewTimerState builds a timer snapshot from raw clock readings.
func NewTimerState(started bool, base, pause, total time.Duration) TimerState {
	return TimerState{base: base, pause: pause, total: total, started: started}
}

// Started reports whether the timer was started since its last reset.
func (state TimerState) Started() bool { return state.started }

// Base returns the clock reading that corresponds to a full countdown.
func (state TimerState) Base() time.Duration { return state.base }

// PauseMark returns the clock reading taken at pause, or NoMark.
func (state TimerState) PauseMark() time.Duration { return state.pause }

// Total returns the configured countdown length.
func (state TimerState) Total() time.Duration { return state.total }

// Paused reports whether the snapshot describes a paused timer.
func (state TimerState) Paused() bool {
	return state.started && state.pause != NoMark
}

// Validate checks the structural invariants of the snapshot.
func (state TimerState) Validate() error {
	if state.total < 0 {
		return fmt.Errorf("%w: negative total %v", ErrInvalidState, state.total)
	}
	if state.started && state.total == 0 {
		return fmt.Errorf("%w: started without a total", ErrInvalidState)
	}
	if err := validateMarks(state.started, state.base, state.pause); err != nil {
		return err
	}
	if state.Paused() {
		if elapsed := state.pause - state.base; elapsed < 0 || elapsed > state.total {
			return fmt.Errorf("%w: paused elapsed %v outside [0, %v]", ErrInvalidState, elapsed, state.total)
		}
	}
	return nil
}

func (state TimerState) String() string {
	return fmt.Sprintf("TimerState[base=%d, pause=%d, total=%d, started=%t]",
		state.base.Milliseconds(), state.pause.Milliseconds(), state.total.Milliseconds(), state.started)
}

// MarshalBinary encodes the snapshot as base, pause, total and started.
func (state TimerState) MarshalBinary() ([]byte, error) {
	data := make([]byte, timerStateSize)
	putMillis(data[0:], state.base)
	putMillis(data[8:], state.pause)
	putMillis(data[16:], state.total)
	data[24] = boolByte(state.started)
	return data, nil
}

// UnmarshalBinary decodes a snapshot written by MarshalBinary.
func (state *TimerState) UnmarshalBinary(data []byte) error {
	if len(data) != timerStateSize {
		return fmt.Errorf("decode timer state: %w: got %d bytes", ErrShortBuffer, len(data))
	}
	base, baseErr := millis(data[0:])
	pause, pauseErr := millis(data[8:])
	total, totalErr := millis(data[16:])
	if err := errors.Join(baseErr, pauseErr, totalErr); err != nil {
		return fmt.Errorf("decode timer state: %w", err)
	}
	decoded := TimerState{
		base:    base,
		pause:   pause,
		total:   total,
		started: data[24] != 0,
	}
	if err := decoded.Validate(); err != nil {
		return fmt.Errorf("decode timer state: %w", err)
	}
	*state = decoded
	return nil
}

func validateMarks(started bool, base, pause time.Duration) error {
	if base < 0 || pause < 0 {
		return fmt.Errorf("%w: negative clock reading", ErrInvalidState)
	}
	if !started && (base != NoMark || pause != NoMark) {
		return fmt.Errorf("%w: marks set on an idle machine", ErrInvalidState)
	}
	if started && base == NoMark {
		return fmt.Errorf("%w: started without a base", ErrInvalidState)
	}
	return nil
}

func putMillis(data []byte, value time.Duration) {
	binary.BigEndian.PutUint64(data, uint64(value.Milliseconds()))
}

func millis(data []byte) (time.Duration, error) {
	return FromMillis(int64(binary.BigEndian.Uint64(data)))
}

// FromMillis converts a stored millisecond reading, rejecting values that are
// negative or do not fit in a time.Duration.
func FromMillis(ms int64) (time.Duration, error) {
	if ms < 0 || ms > MaxMillis {
		return 0, fmt.Errorf("%w: reading %dms out of range", ErrInvalidState, ms)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func boolByte(value bool) byte {
	if value {
		return 1
	}
	return 0
}
