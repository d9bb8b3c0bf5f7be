// Package fetch downloads a release artifact from an ordered list of
// sources with bounded retries, a fixed linear backoff, and a minimum-size
// plausibility gate.
package fetch

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	gh "github.com/TPEOficial/dymo-code/internal/host/github"
	"github.com/TPEOficial/dymo-code/internal/source"
)

// MinArtifactSize is the plausibility threshold: anything smaller is
// treated as a placeholder response (an error page saved under the artifact
// name), not a real binary.
const MinArtifactSize = 1_000_000

const (
	defaultPrimaryAttempts = 3
	defaultBackoff         = 2 * time.Second
)

// ErrExhausted reports that every candidate, including the mirror, failed.
// The caller degrades to the interactive manual fallback on this error.
var ErrExhausted = errors.New("all download sources exhausted")

// Outcome classifies a single download attempt.
type Outcome string

const (
	OutcomeSuccess          Outcome = "success"
	OutcomeTransientFailure Outcome = "transient_failure"
	OutcomeRejectedSmall    Outcome = "rejected_small_file"
)

// Attempt records one download attempt for diagnostics. Attempts are not
// persisted; they only drive the retry machine and user-facing messages.
type Attempt struct {
	Candidate source.Candidate
	Outcome   Outcome
	Size      int64
}

// Downloader fetches an artifact to a staging path next to its final
// destination. The staging file lives in the destination directory so the
// later rename into place stays on one filesystem.
type Downloader struct {
	UserAgent       string
	PrimaryAttempts int
	Backoff         time.Duration
	MinSize         int64

	// Out receives user-facing attempt messages.
	Out io.Writer
	// Sleep is injectable so tests never wait out the backoff.
	Sleep func(time.Duration)
	// progress optionally wraps the response body (TTY only).
	progress func(io.Reader, int64) (io.Reader, func())
}

func NewDownloader(userAgent string) *Downloader {
	return &Downloader{
		UserAgent:       userAgent,
		PrimaryAttempts: defaultPrimaryAttempts,
		Backoff:         defaultBackoff,
		MinSize:         MinArtifactSize,
		Out:             os.Stderr,
		Sleep:           time.Sleep,
		progress:        progressReader,
	}
}

// StagingPath returns the path the artifact is downloaded to before the
// installer renames it into place.
func StagingPath(dest string) string {
	return dest + ".partial"
}

// Fetch tries each candidate in order and returns the staging path holding
// the validated artifact. Primary candidates get PrimaryAttempts tries with
// Backoff between them; mirror candidates get exactly one. On total
// exhaustion the returned error wraps ErrExhausted and no file remains at
// the staging path.
func (d *Downloader) Fetch(candidates []source.Candidate, dest string) (string, []Attempt, error) {
	staging := StagingPath(dest)
	var attempts []Attempt

	for _, cand := range candidates {
		tries := d.PrimaryAttempts
		if cand.Kind == source.KindMirror {
			tries = 1
		}
		for n := 1; n <= tries; n++ {
			if n > 1 {
				d.Sleep(d.Backoff)
			}
			fmt.Fprintf(d.Out, "Downloading (%s, attempt %d/%d): %s\n", cand.Kind, n, tries, cand.URL)

			att := d.attempt(cand, staging)
			attempts = append(attempts, att)
			if att.Outcome == OutcomeSuccess {
				return staging, attempts, nil
			}
		}
	}

	return "", attempts, fmt.Errorf("%w after %d attempts", ErrExhausted, len(attempts))
}

func (d *Downloader) attempt(cand source.Candidate, staging string) Attempt {
	size, err := d.download(cand.URL, staging)
	if err != nil {
		fmt.Fprintf(d.Out, "warning: %v\n", err)
		// Never leave stale bytes behind for the next attempt.
		os.Remove(staging)
		return Attempt{Candidate: cand, Outcome: OutcomeTransientFailure, Size: size}
	}
	if size < d.MinSize {
		fmt.Fprintf(d.Out, "warning: downloaded file is too small (%d bytes, need %d); discarding\n", size, d.MinSize)
		os.Remove(staging)
		return Attempt{Candidate: cand, Outcome: OutcomeRejectedSmall, Size: size}
	}
	log.Debugf("fetch: accepted %d bytes from %s", size, cand.URL)
	return Attempt{Candidate: cand, Outcome: OutcomeSuccess, Size: size}
}

// download streams url to path and returns the number of bytes written.
func (d *Downloader) download(url, path string) (int64, error) {
	resp, err := gh.Get(url, d.UserAgent)
	if err != nil {
		return 0, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return 0, fmt.Errorf("status %d from %s", resp.StatusCode, url)
	}

	// #nosec G304 -- path derives from the resolved install destination
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	body := io.Reader(resp.Body)
	if d.progress != nil {
		wrapped, finish := d.progress(resp.Body, resp.ContentLength)
		defer finish()
		body = wrapped
	}

	written, err := io.Copy(f, body)
	if err != nil {
		return written, fmt.Errorf("write %s: %w", path, err)
	}
	return written, nil
}
