package platform

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// PresenceConfig controls when the user counts as away.
type PresenceConfig struct {
	AwayAfter     time.Duration
	CheckInterval time.Duration
}

// PresenceMonitor polls an IdleProvider and reports transitions between
// present and away. The callback runs on the monitor goroutine.
type PresenceMonitor struct {
	mu       sync.Mutex
	provider IdleProvider
	config   PresenceConfig
	logger   *zap.Logger
	onChange func(away bool)
	away     bool
	disabled bool
	stopCh   chan struct{}
	running  bool
}

// NewPresenceMonitor creates a stopped monitor.
func NewPresenceMonitor(provider IdleProvider, config PresenceConfig, logger *zap.Logger, onChange func(away bool)) *PresenceMonitor {
	if config.CheckInterval <= 0 {
		config.CheckInterval = 5 * time.Second
	}
	if config.AwayAfter <= 0 {
		config.AwayAfter = 2 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PresenceMonitor{
		provider: provider,
		config:   config,
		logger:   logger,
		onChange: onChange,
	}
}

// Start begins polling. Calling Start on a running monitor does nothing.
func (monitor *PresenceMonitor) Start() {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	if monitor.running {
		return
	}
	monitor.running = true
	monitor.stopCh = make(chan struct{})
	go monitor.run(monitor.stopCh)
}

// Stop ends polling. A user marked away is reported present again.
func (monitor *PresenceMonitor) Stop() {
	monitor.mu.Lock()
	if !monitor.running {
		monitor.mu.Unlock()
		return
	}
	monitor.running = false
	close(monitor.stopCh)
	wasAway := monitor.away
	monitor.away = false
	monitor.mu.Unlock()

	if wasAway && monitor.onChange != nil {
		monitor.onChange(false)
	}
}

// Away reports the last observed presence.
func (monitor *PresenceMonitor) Away() bool {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	return monitor.away
}

func (monitor *PresenceMonitor) run(stopCh chan struct{}) {
	ticker := time.NewTicker(monitor.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !monitor.check() {
				return
			}
		}
	}
}

// check polls the provider once. It returns false once idle detection turns
// out to be unsupported.
func (monitor *PresenceMonitor) check() bool {
	idleDuration, err := monitor.provider.IdleDuration()

	monitor.mu.Lock()
	if err != nil {
		if errors.Is(err, ErrIdleUnsupported) {
			monitor.disabled = true
			monitor.mu.Unlock()
			monitor.logger.Info("idle detection unsupported, presence monitor stopped")
			return false
		}
		monitor.mu.Unlock()
		monitor.logger.Warn("idle check failed", zap.Error(err))
		return true
	}
	away := idleDuration >= monitor.config.AwayAfter
	changed := away != monitor.away
	monitor.away = away
	monitor.mu.Unlock()

	if changed {
		monitor.logger.Debug("presence changed",
			zap.Bool("away", away),
			zap.Duration("idle", idleDuration))
		if monitor.onChange != nil {
			monitor.onChange(away)
		}
	}
	return true
}

// Disabled reports whether the monitor gave up on an unsupported host.
func (monitor *PresenceMonitor) Disabled() bool {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	return monitor.disabled
}
