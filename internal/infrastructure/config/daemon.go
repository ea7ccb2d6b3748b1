package config

import "time"

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	// PIDFile enforces a single running instance
	PIDFile string `mapstructure:"pid_file"`

	// ShutdownTimeout bounds the drain on SIGTERM
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}
