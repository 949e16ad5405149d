// Package config provides YAML-based configuration loading for minemarker.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config contains all configuration for the minemarker tools.
type Config struct {
	Log       LogConfig       `yaml:"log"`
	Storage   StorageConfig   `yaml:"storage"`
	Scenarios ScenariosConfig `yaml:"scenarios"`
	Replay    ReplayConfig    `yaml:"replay"`
	SSH       SSHConfig       `yaml:"ssh"`
}

// LogConfig controls the command-line logger.
type LogConfig struct {
	Level      string `yaml:"level"`
	Timestamps bool   `yaml:"timestamps"`
}

// StorageConfig defines where marking results are kept.
type StorageConfig struct {
	Path   string `yaml:"path"`
	Record bool   `yaml:"record"` // Record every mark run without --record
}

// ScenariosConfig locates scenario files.
type ScenariosConfig struct {
	Dir string `yaml:"dir"` // Empty for the built-in scenarios
}

// ReplayConfig controls the interactive replay viewer.
type ReplayConfig struct {
	Speed    ReplaySpeed   `yaml:"speed"`
	Interval time.Duration `yaml:"interval,omitempty"` // Overrides Speed when set
	Autoplay bool          `yaml:"autoplay"`
}

// StepInterval returns the delay between autoplayed steps.
func (r ReplayConfig) StepInterval() time.Duration {
	if r.Interval > 0 {
		return r.Interval
	}
	return IntervalForSpeed(r.Speed)
}

// SSHConfig configures the replay server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	MaxTimeout  time.Duration `yaml:"max_timeout"`
}

// ReplaySpeed represents a named autoplay speed.
type ReplaySpeed string

const (
	SpeedSlow   ReplaySpeed = "slow"
	SpeedNormal ReplaySpeed = "normal"
	SpeedFast   ReplaySpeed = "fast"
)

// IntervalForSpeed returns the step interval for a speed preset.
// Unknown presets behave as normal.
func IntervalForSpeed(speed ReplaySpeed) time.Duration {
	switch speed {
	case SpeedSlow:
		return time.Second
	case SpeedFast:
		return 150 * time.Millisecond
	default:
		return 500 * time.Millisecond
	}
}

// ParseSpeed validates a speed name.
func ParseSpeed(s string) (ReplaySpeed, error) {
	switch speed := ReplaySpeed(strings.ToLower(strings.TrimSpace(s))); speed {
	case SpeedSlow, SpeedNormal, SpeedFast:
		return speed, nil
	default:
		return "", fmt.Errorf("unknown replay speed %q (want slow, normal or fast)", s)
	}
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	if _, err := ParseSpeed(string(c.Replay.Speed)); err != nil {
		return err
	}
	if c.Replay.Interval < 0 {
		return fmt.Errorf("replay interval must not be negative")
	}
	if c.SSH.IdleTimeout < 0 || c.SSH.MaxTimeout < 0 {
		return fmt.Errorf("ssh timeouts must not be negative")
	}
	return nil
}
