// Package deps resolves and reports on the external binaries Splice drives.
// Resolution is explicit: configuration in, resolved path or a clear
// not-found error out. Nothing scans hardcoded install locations.
package deps

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"splice/internal/services"
)

// ErrBinaryNotFound reports that a configured or named binary could not be
// resolved to an executable on this system.
var ErrBinaryNotFound = errors.New("binary not found")

// Resolve turns a configured tool value into an executable path. Values
// containing a path separator are checked directly; bare names go through
// PATH lookup.
func Resolve(configured string) (string, error) {
	configured = strings.TrimSpace(configured)
	if configured == "" {
		return "", fmt.Errorf("%w: command not configured", ErrBinaryNotFound)
	}
	if strings.ContainsRune(configured, os.PathSeparator) {
		info, err := os.Stat(configured)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrBinaryNotFound, configured)
		}
		if info.IsDir() || info.Mode()&0o111 == 0 {
			return "", fmt.Errorf("%w: %s is not executable", ErrBinaryNotFound, configured)
		}
		return configured, nil
	}
	path, err := exec.LookPath(configured)
	if err != nil {
		return "", fmt.Errorf("%w: %q not in PATH", ErrBinaryNotFound, configured)
	}
	return path, nil
}

// MustResolve is Resolve with the error translated into the configuration
// marker, for use at operation time rather than report time.
func MustResolve(configured, name string) (string, error) {
	path, err := Resolve(configured)
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, "deps", "resolve "+name, "", err)
	}
	return path, nil
}

// Requirement defines an external dependency Splice relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		status := Status{
			Name:        req.Name,
			Command:     strings.TrimSpace(req.Command),
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if _, err := Resolve(req.Command); err != nil {
			status.Detail = err.Error()
		} else {
			status.Available = true
		}
		results = append(results, status)
	}
	return results
}
