package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"splice/internal/config"
	"splice/internal/history"
	"splice/internal/logging"
	"splice/internal/media/ffprobe"
	"splice/internal/media/ops"
	"splice/internal/media/silence"
	"splice/internal/process"
)

// commandContext lazily wires the shared collaborators. Config, logger, and
// services are built once on first use so cheap commands (config init, help)
// never touch the environment.
type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	logOnce sync.Once
	log     *slog.Logger

	opsOnce sync.Once
	ops     *ops.Service
	opsErr  error

	silenceOnce sync.Once
	silence     *silence.Service
	silenceErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() *slog.Logger {
	c.logOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.log = slog.Default()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.log = slog.Default()
			return
		}
		c.log = logger
	})
	return c.log
}

func (c *commandContext) prober() (*ffprobe.Prober, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	runner := process.NewRunner(
		process.WithTimeout(time.Duration(cfg.Tools.ProbeTimeout)*time.Second),
		process.WithLogger(c.logger()),
	)
	return ffprobe.NewProber(cfg.Tools.FFprobe, runner), nil
}

func (c *commandContext) operationRunner() (*process.Runner, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return process.NewRunner(
		process.WithTimeout(time.Duration(cfg.Tools.OperationTimeout)*time.Second),
		process.WithLogger(c.logger()),
	), nil
}

func (c *commandContext) mediaService() (*ops.Service, error) {
	c.opsOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.opsErr = err
			return
		}
		runner, err := c.operationRunner()
		if err != nil {
			c.opsErr = err
			return
		}
		prober, err := c.prober()
		if err != nil {
			c.opsErr = err
			return
		}
		c.ops = ops.NewService(cfg.Tools.FFmpeg, prober, runner, cfg.Paths.TempDir, ops.WithLogger(c.logger()))
	})
	return c.ops, c.opsErr
}

func (c *commandContext) silenceService() (*silence.Service, error) {
	c.silenceOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.silenceErr = err
			return
		}
		runner, err := c.operationRunner()
		if err != nil {
			c.silenceErr = err
			return
		}
		prober, err := c.prober()
		if err != nil {
			c.silenceErr = err
			return
		}
		c.silence = silence.NewService(cfg.Tools.FFmpeg, prober, runner, cfg.Paths.TempDir, silence.WithLogger(c.logger()))
	})
	return c.silence, c.silenceErr
}

// silenceOptions builds detection thresholds from config defaults, overridden
// by any flag the user set.
func (c *commandContext) silenceOptions(noiseFloor float64, noiseFloorSet bool, minSilence time.Duration, minSilenceSet bool) silence.Options {
	opts := silence.Options{}
	if cfg, err := c.ensureConfig(); err == nil {
		opts.NoiseFloorDb = cfg.Silence.NoiseFloorDb
		opts.MinSilence = time.Duration(cfg.Silence.MinSilenceSeconds * float64(time.Second))
	}
	if noiseFloorSet {
		opts.NoiseFloorDb = noiseFloor
	}
	if minSilenceSet {
		opts.MinSilence = minSilence
	}
	return opts
}

// recordOperation wraps fn with best-effort history bookkeeping. History
// failures degrade to warnings; they never fail the operation.
func (c *commandContext) recordOperation(ctx context.Context, kind, source, output string, fn func() error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	store, openErr := history.Open(cfg.HistoryDBPath())
	if openErr != nil {
		c.logger().Warn("history unavailable", "error", openErr)
		return fn()
	}
	defer store.Close()

	id, startErr := store.Start(ctx, kind, source, output)
	if startErr != nil {
		c.logger().Warn("history record failed", "error", startErr)
		return fn()
	}

	runErr := fn()
	if runErr != nil {
		if failErr := store.Fail(context.Background(), id, runErr.Error()); failErr != nil {
			c.logger().Warn("history update failed", "error", failErr)
		}
		return runErr
	}
	if completeErr := store.Complete(ctx, id); completeErr != nil {
		c.logger().Warn("history update failed", "error", completeErr)
	}
	return runErr
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
