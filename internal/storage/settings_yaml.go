package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"lemonclock/internal/platform"
	"lemonclock/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	TimerTotalSeconds       int     `yaml:"timer_total_seconds"`
	AccentColor             string  `yaml:"accent_color"`
	CompactFaces            bool    `yaml:"compact_faces"`
	AlertSound              bool    `yaml:"alert_sound"`
	AlertVolume             float64 `yaml:"alert_volume"`
	SuspendWhenIdle         bool    `yaml:"suspend_when_idle"`
	IdleSuspendAfterSeconds int     `yaml:"idle_suspend_after_seconds"`
	OverlayFullscreen       bool    `yaml:"overlay_fullscreen"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return loadSettingsFile(configPath)
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return err
	}
	return saveSettingsFile(configPath, settings)
}

func loadSettingsFile(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

func saveSettingsFile(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		TimerTotalSeconds:       int(settings.TimerTotal / time.Second),
		AccentColor:             settings.AccentColor,
		CompactFaces:            settings.Compact,
		AlertSound:              settings.AlertSound,
		AlertVolume:             settings.AlertVolume,
		SuspendWhenIdle:         settings.SuspendWhenIdle,
		IdleSuspendAfterSeconds: int(settings.IdleSuspendAfter / time.Second),
		OverlayFullscreen:       settings.OverlayFullscreen,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func resolveConfigPath(appName string) (string, error) {
	configDir, err := platform.ConfigDir(appName)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return filepath.Join(configDir, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	total := time.Duration(fileData.TimerTotalSeconds) * time.Second
	if total >= preferences.MinTimerTotal && total <= preferences.MaxTimerTotal {
		settings.TimerTotal = total
	}
	if _, ok := preferences.ResolveAccent(fileData.AccentColor); ok {
		settings.AccentColor = fileData.AccentColor
	}
	if fileData.AlertVolume >= 0 && fileData.AlertVolume <= 1 {
		settings.AlertVolume = fileData.AlertVolume
	}
	if fileData.IdleSuspendAfterSeconds >= 30 && fileData.IdleSuspendAfterSeconds <= 3600 {
		settings.IdleSuspendAfter = time.Duration(fileData.IdleSuspendAfterSeconds) * time.Second
	}

	settings.Compact = fileData.CompactFaces
	settings.AlertSound = fileData.AlertSound
	settings.SuspendWhenIdle = fileData.SuspendWhenIdle
	settings.OverlayFullscreen = fileData.OverlayFullscreen
}
