// Package config provides configuration loading for cwtrain.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/lo"
)

// Config represents the cwtrain configuration file structure.
type Config struct {
	Morse *MorseConfig `json:"morse,omitempty"`
}

// MorseConfig holds the default speed and audio settings for practice sessions.
type MorseConfig struct {
	ElementWPM float64 `json:"element_wpm,omitempty"`
	OverallWPM float64 `json:"overall_wpm,omitempty"`
	Adjustment float64 `json:"adjustment,omitempty"`
	Frequency  float64 `json:"frequency,omitempty"`
	SampleRate int     `json:"sample_rate,omitempty"`
	Ramp       float64 `json:"ramp,omitempty"`
	ShowText   bool    `json:"show_text"`
	// Pause between messages, in seconds. Nil means the default; 0 is a valid setting.
	Pause *float64 `json:"pause,omitempty"`
}

// DefaultPause is the pause between messages when none is configured.
const DefaultPause = 1.0

// PauseSeconds returns the configured pause, or DefaultPause when unset.
func (m *MorseConfig) PauseSeconds() float64 {
	if m == nil || m.Pause == nil {
		return DefaultPause
	}
	return *m.Pause
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Morse: &MorseConfig{
			ElementWPM: 20,
			OverallWPM: 10,
			Adjustment: 1.0,
			Frequency:  700,
			SampleRate: 44100,
			Ramp:       0,
			ShowText:   false,
			Pause:      lo.ToPtr(DefaultPause),
		},
	}
}

// ConfigDir returns the cwtrain config directory (~/.cwtrain).
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cwtrain")
}

// ConfigPath returns the path to the config file (~/.cwtrain/config.json).
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// Load loads the config from ~/.cwtrain/config.json.
// Returns default config if file doesn't exist.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom loads the config from path, filling in defaults for missing fields.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// Apply defaults for missing sections
	defaults := DefaultConfig().Morse
	if config.Morse == nil {
		config.Morse = defaults
	} else {
		m := config.Morse
		if m.ElementWPM == 0 {
			m.ElementWPM = defaults.ElementWPM
		}
		if m.OverallWPM == 0 {
			m.OverallWPM = min(defaults.OverallWPM, m.ElementWPM)
		}
		if m.Adjustment == 0 {
			m.Adjustment = defaults.Adjustment
		}
		if m.Frequency == 0 {
			m.Frequency = defaults.Frequency
		}
		if m.SampleRate == 0 {
			m.SampleRate = defaults.SampleRate
		}
		if m.Pause == nil {
			m.Pause = defaults.Pause
		}
	}

	return &config, nil
}

// Save saves the config to ~/.cwtrain/config.json.
func Save(config *Config) error {
	return SaveTo(ConfigPath(), config)
}

// SaveTo writes the config to path, creating the directory if needed.
func SaveTo(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
