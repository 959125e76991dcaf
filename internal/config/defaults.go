package config

const (
	defaultTempDir           = "~/.cache/splice/work"
	defaultLogDir            = "~/.local/share/splice/logs"
	defaultFFmpegBinary      = "ffmpeg"
	defaultFFprobeBinary     = "ffprobe"
	defaultOperationTimeout  = 0
	defaultProbeTimeout      = 30
	defaultNoiseFloorDb      = -30.0
	defaultMinSilenceSeconds = 2.0
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			TempDir: defaultTempDir,
			LogDir:  defaultLogDir,
		},
		Tools: Tools{
			FFmpeg:           defaultFFmpegBinary,
			FFprobe:          defaultFFprobeBinary,
			OperationTimeout: defaultOperationTimeout,
			ProbeTimeout:     defaultProbeTimeout,
		},
		Silence: Silence{
			NoiseFloorDb:      defaultNoiseFloorDb,
			MinSilenceSeconds: defaultMinSilenceSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
