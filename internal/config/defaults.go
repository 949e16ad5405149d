package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/minemarker.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:      "info",
			Timestamps: true,
		},
		Storage: StorageConfig{
			Path: "~/.minemarker/results.db",
		},
		Replay: ReplayConfig{
			Speed: SpeedNormal,
		},
		SSH: SSHConfig{
			Address:     ":23235",
			HostKeyPath: "~/.minemarker/ssh_host_ed25519",
			IdleTimeout: 10 * time.Minute,
			MaxTimeout:  time.Hour,
		},
	}
}

// DefaultYAML returns the embedded default configuration file, suitable as a
// starting point for a user config.
func DefaultYAML() []byte {
	return defaultYAML
}
