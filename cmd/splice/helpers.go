package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"splice/internal/media/ops"
	"splice/internal/media/silence"
)

// parseTimecode accepts plain seconds ("90", "12.5"), MM:SS, or HH:MM:SS
// with optional fractional seconds.
func parseTimecode(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timecode")
	}

	parts := strings.Split(value, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid timecode %q", value)
	}

	var total float64
	for _, part := range parts {
		parsed, err := strconv.ParseFloat(part, 64)
		if err != nil || parsed < 0 {
			return 0, fmt.Errorf("invalid timecode %q", value)
		}
		total = total*60 + parsed
	}
	return time.Duration(total * float64(time.Second)), nil
}

// parseBitrate accepts plain bits per second or k/M suffixed values
// ("128k", "2.5M").
func parseBitrate(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}

	multiplier := 1.0
	switch {
	case strings.HasSuffix(value, "k"), strings.HasSuffix(value, "K"):
		multiplier = 1000
		value = value[:len(value)-1]
	case strings.HasSuffix(value, "M"):
		multiplier = 1000000
		value = value[:len(value)-1]
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("invalid bitrate %q", value)
	}
	return int(parsed * multiplier), nil
}

func formatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	whole := int(seconds)
	fraction := seconds - float64(whole)
	hours := whole / 3600
	minutes := (whole % 3600) / 60
	secs := whole % 60
	return fmt.Sprintf("%02d:%02d:%05.2f", hours, minutes, float64(secs)+fraction)
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	value := float64(bytes)
	suffixes := []string{"KiB", "MiB", "GiB", "TiB"}
	for _, suffix := range suffixes {
		value /= unit
		if value < unit || suffix == suffixes[len(suffixes)-1] {
			return fmt.Sprintf("%.1f %s", value, suffix)
		}
	}
	return fmt.Sprintf("%d B", bytes)
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// operationProgress renders a live progress line on stderr when attached to a
// terminal. Non-interactive runs get no progress noise.
func operationProgress() func(ops.Progress) {
	if !isTerminal(os.Stderr) {
		return nil
	}
	return func(p ops.Progress) {
		fmt.Fprintf(os.Stderr, "\r%-20s %5.1f%%", p.Stage, p.Percent)
	}
}

func pipelineProgress() func(silence.Progress) {
	if !isTerminal(os.Stderr) {
		return nil
	}
	return func(p silence.Progress) {
		fmt.Fprintf(os.Stderr, "\r[%d/%d] %-16s %5.1f%%", p.StageIndex, p.StageCount, p.Stage, p.Percent)
	}
}

func endProgress() {
	if isTerminal(os.Stderr) {
		fmt.Fprintln(os.Stderr)
	}
}
