package main

import (
	"context"
	"fmt"
	"time"

	"lemonclock/internal/core/model"
	"lemonclock/internal/core/timekeeper"
	"lemonclock/internal/platform"
	"lemonclock/internal/storage"
	"lemonclock/internal/ui/alert"
	"lemonclock/internal/ui/face"
	"lemonclock/internal/ui/overlay"
	"lemonclock/internal/ui/preferences"
	"lemonclock/internal/ui/tray"
	"lemonclock/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"go.uber.org/zap"
)

const overlayOpacity = 215

// clockApp owns the windows and the two faces. All methods run on the
// fyne main goroutine.
type clockApp struct {
	fyneApp  fyne.App
	desktop  desktop.App
	logger   *zap.Logger
	clock    timekeeper.Clock
	looper   *face.Looper
	settings preferences.Settings
	states   *storage.SavedStates

	window              fyne.Window
	tabs                *container.AppTabs
	timer               *face.TimerFace
	stopwatch           *face.StopwatchFace
	timerVisibility     *face.Visibility
	stopwatchVisibility *face.Visibility

	overlay  *overlay.Window
	alerts   *alert.Engine
	prefs    *preferences.Window
	tray     *tray.Manager
	presence *platform.PresenceMonitor

	timerRunning     bool
	stopwatchRunning bool
}

func newApplication(fyneApp fyne.App, clock timekeeper.Clock, settings preferences.Settings, logger *zap.Logger) *clockApp {
	application := &clockApp{
		fyneApp:  fyneApp,
		logger:   logger,
		clock:    clock,
		looper:   face.NewLooper(),
		settings: settings,
		states:   storage.NewSavedStates(),
	}
	application.desktop, _ = fyneApp.(desktop.App)
	application.timerVisibility = face.NewVisibility(nil)
	application.stopwatchVisibility = face.NewVisibility(nil)
	return application
}

func (application *clockApp) start() {
	application.window = application.fyneApp.NewWindow(appName)
	application.buildFaces()
	application.tabs = container.NewAppTabs(
		container.NewTabItemWithIcon("Timer", theme.HistoryIcon(), application.timer.CanvasObject()),
		container.NewTabItemWithIcon("Stopwatch", theme.MediaPlayIcon(), application.stopwatch.CanvasObject()),
	)
	application.tabs.OnSelected = func(*container.TabItem) {
		application.applySelection()
	}
	application.window.SetContent(application.tabs)
	application.window.Resize(fyne.NewSize(360, 440))
	application.window.SetCloseIntercept(application.hideWindow)

	application.overlay = overlay.New(application.fyneApp, application.overlayConfig())
	application.overlay.SetOnDismiss(func() {
		application.alerts.Stop()
		application.timer.Reset()
	})
	application.overlay.SetOnRestart(func() {
		application.alerts.Stop()
		if err := application.timer.Restart(); err != nil {
			application.showError(err)
		}
	})
	application.alerts = alert.New(alert.FromModel(application.settings.AlertConfig()), alert.NewSpeakerPlayer(),
		application.logger.Named("alert"), func(on bool) {
			fyne.Do(func() {
				application.overlay.SetPulse(on)
			})
		})

	application.prefs = preferences.New(application.fyneApp, application.settings, application.applySettings)
	application.buildTray()

	application.attachFaces()
	application.applySelection()
	application.restartPresence()

	application.fyneApp.Lifecycle().SetOnStopped(application.stop)
	application.window.Show()
}

func (application *clockApp) stop() {
	application.logger.Info("shutting down")
	if application.presence != nil {
		application.presence.Stop()
	}
	application.alerts.Stop()
	application.timer.Detach()
	application.stopwatch.Detach()
}

func (application *clockApp) buildFaces() {
	config := application.settings.FaceConfig()

	application.timer = face.NewTimerFace(application.machineOptions("timer"), config)
	application.timer.OnError = application.showError
	application.timer.SetListener(timekeeper.TimerFuncs{
		TimeChanged:  application.onTimerTime,
		StateChanged: application.onTimerState,
		Timeout:      application.onTimeout,
	})
	application.timer.SetTotal(application.settings.TimerTotal)

	application.stopwatch = face.NewStopwatchFace(application.machineOptions("stopwatch"), config)
	application.stopwatch.SetListener(timekeeper.StopwatchFuncs{
		StateChanged: application.onStopwatchState,
	})

	application.restoreFace(application.timer)
	application.restoreFace(application.stopwatch)
}

func (application *clockApp) machineOptions(name string) timekeeper.Options {
	return timekeeper.Options{
		Clock:  application.clock,
		Logger: application.logger.Named(name),
	}
}

func (application *clockApp) attachFaces() {
	application.timer.Attach(application.looper)
	application.stopwatch.Attach(application.looper)
	application.timerVisibility.Retarget(application.timer)
	application.stopwatchVisibility.Retarget(application.stopwatch)
}

// rebuildFaces tears both faces down and builds them again with the current
// settings, carrying the machine state across.
func (application *clockApp) rebuildFaces() {
	for _, current := range []face.Face{application.timer, application.stopwatch} {
		data, err := current.SaveState()
		current.Detach()
		if err != nil {
			application.logger.Warn("face state lost on rebuild", zap.String("face", current.ID()), zap.Error(err))
			continue
		}
		application.states.Put(current.ID(), data)
		application.logSavedState(current.ID(), data)
	}

	application.buildFaces()
	application.tabs.Items[0].Content = application.timer.CanvasObject()
	application.tabs.Items[1].Content = application.stopwatch.CanvasObject()
	application.tabs.Refresh()
	application.attachFaces()
	application.logger.Debug("faces rebuilt", zap.Bool("compact", application.settings.Compact))
}

func (application *clockApp) restoreFace(target face.Face) {
	data, ok := application.states.Take(target.ID())
	if !ok {
		return
	}
	if err := target.RestoreState(data); err != nil {
		application.logger.Warn("discarding saved face state", zap.String("face", target.ID()), zap.Error(err))
	}
}

func (application *clockApp) logSavedState(id string, data []byte) {
	entry := application.logger.Check(zap.DebugLevel, "face state saved")
	if entry == nil {
		return
	}
	document, err := describeState(id, data)
	if err != nil {
		entry.Write(zap.String("face", id), zap.Error(err))
		return
	}
	entry.Write(zap.String("face", id), zap.ByteString("state", document))
}

func describeState(id string, data []byte) ([]byte, error) {
	switch id {
	case face.TimerID:
		var state model.TimerState
		if err := state.UnmarshalBinary(data); err != nil {
			return nil, err
		}
		return storage.MarshalTimerState(state)
	case face.StopwatchID:
		var state model.StopwatchState
		if err := state.UnmarshalBinary(data); err != nil {
			return nil, err
		}
		return storage.MarshalStopwatchState(state)
	default:
		return nil, fmt.Errorf("describe state: unknown face %q", id)
	}
}

func (application *clockApp) applySelection() {
	selected := application.tabs.SelectedIndex()
	application.timerVisibility.Set(face.ReasonUnselected, selected != 0)
	application.stopwatchVisibility.Set(face.ReasonUnselected, selected != 1)
}

func (application *clockApp) setHidden(hidden bool) {
	application.timerVisibility.Set(face.ReasonHidden, hidden)
	application.stopwatchVisibility.Set(face.ReasonHidden, hidden)
}

func (application *clockApp) setAway(away bool) {
	application.timerVisibility.Set(face.ReasonAway, away)
	application.stopwatchVisibility.Set(face.ReasonAway, away)
}

func (application *clockApp) hideWindow() {
	if application.desktop == nil {
		application.fyneApp.Quit()
		return
	}
	application.window.Hide()
	application.setHidden(true)
}

func (application *clockApp) showWindow() {
	application.window.Show()
	application.window.RequestFocus()
	application.setHidden(false)
}

func (application *clockApp) showError(err error) {
	application.logger.Info("action rejected", zap.Error(err))
	dialog.ShowError(err, application.window)
}

func (application *clockApp) onTimerTime(rest, total time.Duration) {
	if application.tray != nil && application.timerRunning {
		application.tray.SetStatus("Timer " + face.FormatRest(rest))
	}
}

func (application *clockApp) onTimerState(started, paused bool) {
	application.timerRunning = started && !paused
	if application.tray != nil {
		application.tray.SetTimerState(started, paused)
	}
	if !started && application.overlay != nil && application.overlay.Visible() {
		application.alerts.Stop()
		application.overlay.Hide()
	}
	application.refreshTrayIcon()
}

func (application *clockApp) onStopwatchState(started, paused bool) {
	application.stopwatchRunning = started && !paused
	if application.tray != nil {
		application.tray.SetStopwatchState(started, paused)
	}
	application.refreshTrayIcon()
}

func (application *clockApp) onTimeout() {
	if application.overlay.Visible() {
		return
	}
	total := application.timer.Machine().Total()
	application.logger.Info("timer finished", zap.Duration("total", total))
	application.overlay.Show(total)
	application.alerts.Start(context.Background())
	application.fyneApp.SendNotification(fyne.NewNotification(appName, "Time's up"))
	if application.tray != nil {
		application.tray.SetStatus("Time's up")
	}
}

func (application *clockApp) buildTray() {
	if application.desktop == nil {
		application.logger.Info("system tray unsupported on this platform")
		return
	}
	application.tray = tray.New(application.desktop, tray.Callbacks{
		OnShow: application.showWindow,
		OnToggleTimer: func() {
			if err := application.timer.Toggle(); err != nil {
				application.showError(err)
			}
		},
		OnResetTimer:      application.timer.Reset,
		OnToggleStopwatch: application.stopwatch.Toggle,
		OnLap:             application.stopwatch.Lap,
		OnResetStopwatch:  application.stopwatch.Reset,
		OnPreferences:     application.prefs.Show,
		OnQuit:            application.fyneApp.Quit,
	})
	application.desktop.SetSystemTrayMenu(application.tray.Menu())
	application.refreshTrayIcon()
}

func (application *clockApp) refreshTrayIcon() {
	if application.desktop == nil {
		return
	}
	icon := resources.TrayIdleIcon
	if application.timerRunning || application.stopwatchRunning {
		icon = resources.TrayRunningIcon
	}
	application.desktop.SetSystemTrayIcon(resources.MustIcon(icon))
}

func (application *clockApp) applySettings(updated preferences.Settings) {
	previous := application.settings
	application.settings = updated
	if err := storage.SaveSettings(appName, updated); err != nil {
		application.logger.Warn("settings not saved", zap.Error(err))
	}

	if updated.Compact != previous.Compact || updated.AccentColor != previous.AccentColor {
		application.rebuildFaces()
	}
	application.timer.SetTotal(updated.TimerTotal)
	application.alerts.UpdateConfig(alert.FromModel(updated.AlertConfig()))
	application.overlay.UpdateConfig(application.overlayConfig())
	if updated.IdleConfig() != previous.IdleConfig() {
		application.restartPresence()
	}
}

func (application *clockApp) overlayConfig() overlay.Config {
	return overlay.Config{
		Opacity:    overlayOpacity,
		Fullscreen: application.settings.OverlayFullscreen,
		Accent:     application.settings.FaceConfig().Accent,
	}
}

func (application *clockApp) restartPresence() {
	if application.presence != nil {
		application.presence.Stop()
		application.presence = nil
	}
	idle := application.settings.IdleConfig()
	if !idle.Enabled {
		return
	}
	application.presence = platform.NewPresenceMonitor(platform.NewIdleProvider(), platform.PresenceConfig{
		AwayAfter:     idle.SuspendAfter,
		CheckInterval: idle.CheckInterval,
	}, application.logger.Named("presence"), func(away bool) {
		fyne.Do(func() {
			application.setAway(away)
		})
	})
	application.presence.Start()
}
