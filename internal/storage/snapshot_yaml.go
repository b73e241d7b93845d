package storage

import (
	"errors"
	"fmt"

	"lemonclock/internal/core/model"

	"gopkg.in/yaml.v3"
)

// Snapshot documents keep the field order of the binary layout.
type yamlStopwatchState struct {
	Started bool  `yaml:"started"`
	BaseMs  int64 `yaml:"base_ms"`
	PauseMs int64 `yaml:"pause_ms"`
}

type yamlTimerState struct {
	BaseMs  int64 `yaml:"base_ms"`
	PauseMs int64 `yaml:"pause_ms"`
	TotalMs int64 `yaml:"total_ms"`
	Started bool  `yaml:"started"`
}

// MarshalStopwatchState renders a stopwatch snapshot as YAML.
func MarshalStopwatchState(state model.StopwatchState) ([]byte, error) {
	serialized, err := yaml.Marshal(yamlStopwatchState{
		Started: state.Started(),
		BaseMs:  state.Base().Milliseconds(),
		PauseMs: state.PauseMark().Milliseconds(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal stopwatch state: %w", err)
	}
	return serialized, nil
}

// UnmarshalStopwatchState parses and validates a YAML stopwatch snapshot.
func UnmarshalStopwatchState(data []byte) (model.StopwatchState, error) {
	var document yamlStopwatchState
	if err := yaml.Unmarshal(data, &document); err != nil {
		return model.StopwatchState{}, fmt.Errorf("parse stopwatch state: %w", err)
	}
	base, baseErr := model.FromMillis(document.BaseMs)
	pause, pauseErr := model.FromMillis(document.PauseMs)
	if err := errors.Join(baseErr, pauseErr); err != nil {
		return model.StopwatchState{}, fmt.Errorf("parse stopwatch state: %w", err)
	}
	state := model.NewStopwatchState(document.Started, base, pause)
	if err := state.Validate(); err != nil {
		return model.StopwatchState{}, fmt.Errorf("parse stopwatch state: %w", err)
	}
	return state, nil
}

// MarshalTimerState renders a timer snapshot as YAML.
func MarshalTimerState(state model.TimerState) ([]byte, error) {
	serialized, err := yaml.Marshal(yamlTimerState{
		BaseMs:  state.Base().Milliseconds(),
		PauseMs: state.PauseMark().Milliseconds(),
		TotalMs: state.Total().Milliseconds(),
		Started: state.Started(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal timer state: %w", err)
	}
	return serialized, nil
}

// UnmarshalTimerState parses and validates a YAML timer snapshot.
func UnmarshalTimerState(data []byte) (model.TimerState, error) {
	var document yamlTimerState
	if err := yaml.Unmarshal(data, &document); err != nil {
		return model.TimerState{}, fmt.Errorf("parse timer state: %w", err)
	}
	base, baseErr := model.FromMillis(document.BaseMs)
	pause, pauseErr := model.FromMillis(document.PauseMs)
	total, totalErr := model.FromMillis(document.TotalMs)
	if err := errors.Join(baseErr, pauseErr, totalErr); err != nil {
		return model.TimerState{}, fmt.Errorf("parse timer state: %w", err)
	}
	state := model.NewTimerState(document.Started, base, pause, total)
	if err := state.Validate(); err != nil {
		return model.TimerState{}, fmt.Errorf("parse timer state: %w", err)
	}
	return state, nil
}
