// Package tempfiles manages per-operation scratch directories. Every
// operation owns one workspace with uuid-randomized file names, so concurrent
// invocations never collide, and cleans it up unconditionally on exit.
package tempfiles

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const workspacePrefix = "splice-"

// Workspace is a scratch directory scoped to a single operation.
type Workspace struct {
	dir    string
	logger *slog.Logger
}

// NewWorkspace creates a fresh scratch directory under root.
func NewWorkspace(root string, logger *slog.Logger) (*Workspace, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create temp root: %w", err)
	}
	dir := filepath.Join(root, workspacePrefix+uuid.NewString())
	if err := os.Mkdir(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Workspace{dir: dir, logger: logger}, nil
}

// Dir returns the workspace directory.
func (w *Workspace) Dir() string {
	return w.dir
}

// File returns a unique path inside the workspace with the given extension.
// The extension should include its leading dot.
func (w *Workspace) File(ext string) string {
	return filepath.Join(w.dir, uuid.NewString()+ext)
}

// Cleanup removes the workspace and everything in it. Deletion failures are
// logged at warning level, never escalated: a leftover scratch directory does
// not invalidate a finished operation.
func (w *Workspace) Cleanup() {
	if w == nil || w.dir == "" {
		return
	}
	if err := os.RemoveAll(w.dir); err != nil {
		w.logger.Warn("workspace cleanup failed", "dir", w.dir, "error", err)
	}
	w.dir = ""
}
