package main

import (
	"errors"
	"log"
	"os"

	"lemonclock/internal/platform"
	"lemonclock/internal/storage"
	"lemonclock/resources"

	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"
)

const (
	appName = "LemonClock"
	appID   = "io.lemonclock.app"

	debugEnv = "LEMONCLOCK_DEBUG"
)

func main() {
	logger, err := newLogger()
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Info("another instance is already running")
			return
		}
		logger.Fatal("single instance", zap.Error(err))
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		logger.Warn("using default settings", zap.Error(err))
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.AppIcon))

	clock := platform.BootClock(logger.Named("clock"))
	application := newApplication(fyneApp, clock, settings, logger)
	application.start()
	fyneApp.Run()
}

func newLogger() (*zap.Logger, error) {
	if os.Getenv(debugEnv) != "" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
