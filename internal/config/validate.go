package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateSilence(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.TempDir == "" {
		return errors.New("paths.temp_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateTools() error {
	if c.Tools.FFprobe == "" {
		return errors.New("tools.ffprobe must be set")
	}
	if c.Tools.OperationTimeout < 0 {
		return errors.New("tools.operation_timeout must not be negative")
	}
	if c.Tools.ProbeTimeout <= 0 {
		return errors.New("tools.probe_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateSilence() error {
	if c.Silence.NoiseFloorDb >= 0 {
		return errors.New("silence.noise_floor_db must be negative (dBFS)")
	}
	if c.Silence.MinSilenceSeconds <= 0 {
		return errors.New("silence.min_silence_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
