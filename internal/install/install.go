// Package install places a validated artifact at its final per-user path.
package install

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/TPEOficial/dymo-code/internal/hostenv"
)

// DefaultDir is the conventional per-user binary directory.
const DefaultDir = "~/.local/bin"

// stampName records the installed release tag next to the binary so
// subsequent --if-needed runs can skip a redundant download.
const stampName = ".dymo-code.version"

// ResolveDir expands dir (including a leading ~) to an absolute install
// directory, defaulting to DefaultDir.
func ResolveDir(dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		dir = DefaultDir
	}
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return "", fmt.Errorf("install: expand %s: %w", dir, err)
	}
	return expanded, nil
}

// Installer owns the install directory.
type Installer struct {
	Dir string
}

func New(dir string) *Installer {
	return &Installer{Dir: dir}
}

// EnsureDir creates the install directory if missing. Idempotent.
func (i *Installer) EnsureDir() error {
	if err := os.MkdirAll(i.Dir, 0o755); err != nil {
		return fmt.Errorf("install: create directory %s: %w", i.Dir, err)
	}
	return nil
}

// NoExecMount reports whether the install directory sits on a filesystem
// mounted noexec. Advisory only; the install still proceeds.
func (i *Installer) NoExecMount() bool {
	return hostenv.InstallDirNoExec(i.Dir)
}

// Place renames the staged artifact onto its final name and marks it
// executable. The rename fully replaces any previously installed binary;
// a failure to set the executable bit is fatal because the artifact is
// unusable without it.
func (i *Installer) Place(staging, name string) (string, error) {
	final := filepath.Join(i.Dir, name)

	if err := os.Remove(final); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("install: remove existing %s: %w", final, err)
	}
	if err := os.Rename(staging, final); err != nil {
		return "", fmt.Errorf("install: move %s to %s: %w", staging, final, err)
	}
	if err := os.Chmod(final, 0o755); err != nil { // #nosec G302 -- installed binary must be executable
		return "", fmt.Errorf("install: chmod %s: %w", final, err)
	}
	return final, nil
}

// WriteStamp records the installed tag. Best effort: a failed stamp write
// does not fail the install, it only disables the --if-needed shortcut.
func (i *Installer) WriteStamp(tag string) error {
	return os.WriteFile(filepath.Join(i.Dir, stampName), []byte(tag+"\n"), 0o644)
}

// ReadStamp returns the recorded tag of the current install, or "" when no
// stamp exists.
func (i *Installer) ReadStamp() string {
	data, err := os.ReadFile(filepath.Join(i.Dir, stampName)) // #nosec G304 -- path under the resolved install dir
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
