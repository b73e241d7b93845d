// Package alert announces a finished countdown with visual pulses and a chime.
package alert

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Engine runs one pulse sequence at a time. The pulse callback runs on the
// engine goroutine.
type Engine struct {
	mu      sync.Mutex
	config  Config
	player  Player
	logger  *zap.Logger
	onPulse func(on bool)
	cancel  context.CancelFunc
}

// New creates an alert engine. player may be nil for a silent alert.
func New(config Config, player Player, logger *zap.Logger, onPulse func(on bool)) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		config:  config,
		player:  player,
		logger:  logger,
		onPulse: onPulse,
	}
}

// UpdateConfig replaces the options used by the next sequence.
func (engine *Engine) UpdateConfig(config Config) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.config = config
}

// Start runs a pulse sequence in the background, replacing any running one.
func (engine *Engine) Start(ctx context.Context) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	engine.cancel = cancel
	config := engine.config
	engine.mu.Unlock()

	go engine.run(runCtx, config)
}

// Stop terminates the running sequence.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

// run plays the sequence and reports whether it ran to completion. The pulse
// is always left off.
func (engine *Engine) run(ctx context.Context, config Config) bool {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	sound := config.Sound && engine.player != nil
	defer engine.pulse(false)

	for index := 0; index < config.Pulses; index++ {
		engine.pulse(true)
		if sound {
			if err := engine.player.Play(config.Volume); err != nil {
				engine.logger.Warn("alert sound disabled", zap.Error(err))
				sound = false
			}
		}
		if !sleepWithContext(ctx, config.PulseOn.Random(rng)) {
			return false
		}
		engine.pulse(false)
		if !sleepWithContext(ctx, config.PulseOff.Random(rng)) {
			return false
		}
	}
	return true
}

func (engine *Engine) pulse(on bool) {
	if engine.onPulse != nil {
		engine.onPulse(on)
	}
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
