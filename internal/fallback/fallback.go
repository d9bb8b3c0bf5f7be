// Package fallback guides the user through a manual install once every
// automated download source is exhausted.
package fallback

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"runtime"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
)

// Manual degrades the run to a guided manual download instead of failing
// silently. The printed URL is the load-bearing part; opening a browser is
// a best-effort convenience.
type Manual struct {
	In  io.Reader
	Out io.Writer

	// OpenURL is injectable for tests; nil selects the platform handler.
	OpenURL func(url string) error
	// AssumeYes skips the blocking acknowledgement read.
	AssumeYes bool
}

// Run prints the manual-download instructions, waits for an explicit user
// acknowledgement, and then tries to open the URL in the default handler.
// It never returns an error: the caller still exits with the distinguished
// manual-completion status.
func (m *Manual) Run(url, destPath string) {
	fmt.Fprintln(m.Out)
	color.New(color.FgYellow, color.Bold).Fprintln(m.Out, "Automatic download failed on every source.")
	fmt.Fprintln(m.Out, "To finish the installation manually:")
	fmt.Fprintf(m.Out, "  1. Download: %s\n", url)
	fmt.Fprintf(m.Out, "  2. Save it as: %s\n", destPath)
	fmt.Fprintf(m.Out, "  3. Make it executable (chmod +x %s)\n", destPath)

	if !m.AssumeYes {
		fmt.Fprint(m.Out, "\nPress Enter to open the download page in your browser... ")
		// Blocking read, no timeout: the run is interactive at this point.
		bufio.NewReader(m.In).ReadString('\n')
	}

	open := m.OpenURL
	if open == nil {
		open = openInBrowser
	}
	if err := open(url); err != nil {
		// Non-fatal: the printed URL is enough to finish by hand.
		log.Debugf("fallback: could not open browser: %v", err)
		fmt.Fprintf(m.Out, "Could not open a browser; use the URL above.\n")
	}
}

func openInBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("cmd", "/c", "start", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
