package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow            func()
	OnToggleTimer     func()
	OnResetTimer      func()
	OnToggleStopwatch func()
	OnLap             func()
	OnResetStopwatch  func()
	OnPreferences     func()
	OnQuit            func()
}

// Manager handles system tray state.
type Manager struct {
	app             desktop.App
	menu            *fyne.Menu
	statusItem      *fyne.MenuItem
	timerItem       *fyne.MenuItem
	timerResetItem  *fyne.MenuItem
	stopwatchItem   *fyne.MenuItem
	lapItem         *fyne.MenuItem
	stopwatchReset  *fyne.MenuItem
	callbacks       Callbacks
	statusLabel     string
	timerRunning    bool
	stopwatchActive bool
}

// New creates a tray manager with the provided callbacks. app may be nil
// where the driver has no system tray.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Timer idle", nil)
	manager.statusItem.Disabled = true

	manager.timerItem = fyne.NewMenuItem("Start timer", call(&manager.callbacks.OnToggleTimer))
	manager.timerResetItem = fyne.NewMenuItem("Reset timer", call(&manager.callbacks.OnResetTimer))
	manager.stopwatchItem = fyne.NewMenuItem("Start stopwatch", call(&manager.callbacks.OnToggleStopwatch))
	manager.lapItem = fyne.NewMenuItem("Lap", call(&manager.callbacks.OnLap))
	manager.stopwatchReset = fyne.NewMenuItem("Reset stopwatch", call(&manager.callbacks.OnResetStopwatch))

	manager.menu = fyne.NewMenu("LemonClock",
		manager.statusItem,
		fyne.NewMenuItem("Show LemonClock", call(&manager.callbacks.OnShow)),
		fyne.NewMenuItemSeparator(),
		manager.timerItem,
		manager.timerResetItem,
		fyne.NewMenuItemSeparator(),
		manager.stopwatchItem,
		manager.lapItem,
		manager.stopwatchReset,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", call(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", call(&manager.callbacks.OnQuit)),
	)
	manager.SetTimerState(false, false)
	manager.SetStopwatchState(false, false)
	return manager
}

// Menu returns the tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	if status == manager.statusLabel {
		return
	}
	manager.statusLabel = status
	manager.statusItem.Label = status
	manager.refreshMenu()
}

// SetTimerState updates the timer items.
func (manager *Manager) SetTimerState(started, paused bool) {
	manager.timerRunning = started && !paused
	manager.timerItem.Label = toggleLabel("timer", started, paused)
	manager.timerResetItem.Disabled = !started
	if !started {
		manager.statusLabel = "Timer idle"
		manager.statusItem.Label = manager.statusLabel
	}
	manager.refreshMenu()
}

// SetStopwatchState updates the stopwatch items.
func (manager *Manager) SetStopwatchState(started, paused bool) {
	manager.stopwatchActive = started
	manager.stopwatchItem.Label = toggleLabel("stopwatch", started, paused)
	manager.lapItem.Disabled = !started || paused
	manager.stopwatchReset.Disabled = !started
	manager.refreshMenu()
}

// TimerRunning reports whether the timer was last seen running.
func (manager *Manager) TimerRunning() bool {
	return manager.timerRunning
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu)
	}
}

func toggleLabel(name string, started, paused bool) string {
	switch {
	case !started:
		return fmt.Sprintf("Start %s", name)
	case paused:
		return fmt.Sprintf("Resume %s", name)
	default:
		return fmt.Sprintf("Pause %s", name)
	}
}

// call resolves the callback when the item is clicked, so callbacks can be
// replaced after the menu is built.
func call(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}
