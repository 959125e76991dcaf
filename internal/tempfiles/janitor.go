package tempfiles

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

const janitorLockName = ".janitor.lock"

// Prune removes abandoned workspaces older than maxAge from the temp root.
// Workspaces can be orphaned by a SIGKILL mid-operation; normal exits clean up
// after themselves. The sweep holds a file lock so concurrent CLI invocations
// do not both walk the tree; losing the race means someone else is pruning.
func Prune(root string, maxAge time.Duration, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := os.Stat(root); err != nil {
		return
	}

	lock := flock.New(filepath.Join(root, janitorLockName))
	locked, err := lock.TryLock()
	if err != nil || !locked {
		return
	}
	defer func() {
		_ = lock.Unlock()
	}()

	entries, err := os.ReadDir(root)
	if err != nil {
		logger.Warn("janitor scan failed", "dir", root, "error", err)
		return
	}

	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), workspacePrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		stale := filepath.Join(root, entry.Name())
		if err := os.RemoveAll(stale); err != nil {
			logger.Warn("janitor prune failed", "dir", stale, "error", err)
			continue
		}
		logger.Debug("pruned stale workspace", "dir", stale)
	}
}
