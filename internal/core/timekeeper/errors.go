package timekeeper

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Error classes reported by the machines.
//   - ErrConfig: the caller must configure the machine before using it.
//   - ErrInternal: an invariant was violated; the machine state is corrupt.
var (
	// ErrConfig indicates an operation was attempted on an unconfigured machine.
	ErrConfig = errors.New("configuration error")

	// ErrInternal indicates an internal invariant violation.
	ErrInternal = errors.New("internal error")

	// ErrNotConfigured is returned when starting a timer without a total.
	ErrNotConfigured = wrapConfig("timer total is not set")
)

// InvariantError describes a broken invariant. Machines panic with it: the
// condition means a corrupted snapshot or clock, and no reading can be trusted.
type InvariantError struct {
	Op     string
	Detail string
	State  string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%v: %s: %s: %s", ErrInternal, e.Op, e.Detail, e.State)
}

func (e *InvariantError) Unwrap() error {
	return ErrInternal
}

func wrapConfig(msg string) error {
	return fmt.Errorf("%w: %s", ErrConfig, msg)
}

func violate(logger *zap.Logger, op string, state fmt.Stringer, format string, args ...any) {
	err := &InvariantError{
		Op:     op,
		Detail: fmt.Sprintf(format, args...),
		State:  state.String(),
	}
	logger.Error("invariant violated",
		zap.String("op", err.Op),
		zap.String("detail", err.Detail),
		zap.String("state", err.State))
	panic(err)
}
