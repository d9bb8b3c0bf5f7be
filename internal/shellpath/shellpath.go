// Package shellpath makes the install directory reachable from a shell:
// once for the running process and durably via shell startup files.
package shellpath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// startupFiles covers the shells the bootstrap targets. Files that do not
// exist are skipped: not every shell is installed on every machine.
var startupFiles = []string{".bashrc", ".zshrc", ".profile"}

// Registrar appends PATH exports to shell startup files under Home.
type Registrar struct {
	Home  string
	Files []string
}

func New(home string) *Registrar {
	return &Registrar{Home: home, Files: startupFiles}
}

// EnsureOnPath appends an export line for dir to every startup file that
// exists and does not already mention it. It returns the files modified.
// Missing files are skipped silently; a write failure on an existing file
// is surfaced, never swallowed.
func (r *Registrar) EnsureOnPath(dir string) ([]string, error) {
	var updated []string
	var errs []error

	for _, name := range r.Files {
		path := filepath.Join(r.Home, name)
		content, err := os.ReadFile(path) // #nosec G304 -- fixed names under the user home
		if errors.Is(err, os.ErrNotExist) {
			log.Debugf("shellpath: %s does not exist, skipping", path)
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("shellpath: read %s: %w", path, err))
			continue
		}
		if r.mentions(string(content), dir) {
			log.Debugf("shellpath: %s already references %s", path, dir)
			continue
		}
		if err := appendExport(path, dir); err != nil {
			errs = append(errs, err)
			continue
		}
		updated = append(updated, path)
	}

	return updated, errors.Join(errs...)
}

// mentions reports whether content already references dir, in either its
// literal or $HOME-relative spelling.
func (r *Registrar) mentions(content, dir string) bool {
	if strings.Contains(content, dir) {
		return true
	}
	if r.Home != "" && strings.HasPrefix(dir, r.Home) {
		homeForm := "$HOME" + dir[len(r.Home):]
		return strings.Contains(content, homeForm)
	}
	return false
}

func appendExport(path, dir string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644) // #nosec G304 -- fixed names under the user home
	if err != nil {
		return fmt.Errorf("shellpath: open %s: %w", path, err)
	}
	defer f.Close()

	line := fmt.Sprintf("\n# Added by dymo-install\nexport PATH=\"%s:$PATH\"\n", dir)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("shellpath: write %s: %w", path, err)
	}
	return nil
}

// EnsureProcessPath prepends dir to the current process PATH so the binary
// is invocable without starting a new shell. Returns whether PATH changed.
func EnsureProcessPath(dir string) bool {
	current := os.Getenv("PATH")
	for _, entry := range filepath.SplitList(current) {
		if entry == dir {
			return false
		}
	}
	return os.Setenv("PATH", dir+string(os.PathListSeparator)+current) == nil
}
