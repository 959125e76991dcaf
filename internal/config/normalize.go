package config

import "strings"

func (c *Config) normalize() error {
	var err error
	if c.Paths.TempDir, err = expandPath(c.Paths.TempDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}

	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)

	// Configured absolute or home-relative tool paths get expanded; bare
	// command names stay as-is for PATH resolution.
	if strings.ContainsAny(c.Tools.FFmpeg, "/~") {
		if c.Tools.FFmpeg, err = expandPath(c.Tools.FFmpeg); err != nil {
			return err
		}
	}
	if strings.ContainsAny(c.Tools.FFprobe, "/~") {
		if c.Tools.FFprobe, err = expandPath(c.Tools.FFprobe); err != nil {
			return err
		}
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}
