// Package preflight verifies the runtime environment before operations run:
// external binaries resolvable, temp directory writable, disk space adequate.
package preflight

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"splice/internal/config"
	"splice/internal/deps"
)

// Result captures the outcome of one environment check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// minFreeBytes is the temp-dir free-space floor. Intermediate lossless audio
// for silence removal can run to several gigabytes.
const minFreeBytes = 2 << 30

// Run executes every check against the supplied configuration.
func Run(cfg *config.Config) []Result {
	results := make([]Result, 0, 4)
	results = append(results, checkBinaries(cfg)...)
	results = append(results, checkTempDir(cfg.Paths.TempDir))
	results = append(results, checkDiskSpace(cfg.Paths.TempDir))
	return results
}

func checkBinaries(cfg *config.Config) []Result {
	statuses := deps.CheckBinaries([]deps.Requirement{
		{Name: "ffmpeg", Command: cfg.Tools.FFmpeg, Description: "media transcoder"},
		{Name: "ffprobe", Command: cfg.Tools.FFprobe, Description: "media prober"},
	})
	results := make([]Result, 0, len(statuses))
	for _, status := range statuses {
		result := Result{Name: status.Name, Passed: status.Available}
		if status.Available {
			result.Detail = "available"
		} else {
			result.Detail = status.Detail
		}
		results = append(results, result)
	}
	return results
}

func checkTempDir(dir string) Result {
	const name = "temp dir writable"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("create %s: %v", dir, err)}
	}
	probe := filepath.Join(dir, ".preflight")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("write probe: %v", err)}
	}
	_ = os.Remove(probe)
	return Result{Name: name, Passed: true, Detail: dir}
}

func checkDiskSpace(dir string) Result {
	const name = "temp dir free space"
	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("statfs %s: %v", dir, err)}
	}
	free := stat.Bavail * uint64(stat.Bsize)
	detail := fmt.Sprintf("%.1f GiB free", float64(free)/(1<<30))
	if free < minFreeBytes {
		return Result{Name: name, Detail: detail + " (below 2 GiB floor)"}
	}
	return Result{Name: name, Passed: true, Detail: detail}
}
