// Package release resolves which dymo-code release to install.
package release

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	gh "github.com/TPEOficial/dymo-code/internal/host/github"
)

const defaultAPIBase = "https://api.github.com"

// ErrVersionUnknown reports that the latest release tag could not be
// resolved. It is recoverable: the pipeline proceeds over the
// version-independent mirror route instead of aborting.
var ErrVersionUnknown = errors.New("release version unknown")

// metadata is the subset of the GitHub release payload the installer uses.
type metadata struct {
	TagName string `json:"tag_name"`
}

// APIBase returns the release-metadata endpoint base: the DYMO_API_BASE
// environment override wins (used by tests and restricted environments),
// then the configured fallback, then the public GitHub API.
func APIBase(fallback string) string {
	if base := strings.TrimSpace(os.Getenv("DYMO_API_BASE")); base != "" {
		return strings.TrimRight(base, "/")
	}
	if fallback != "" {
		return strings.TrimRight(fallback, "/")
	}
	return defaultAPIBase
}

// Client queries release metadata for one repository.
type Client struct {
	apiBase   string
	repo      string // owner/name
	userAgent string
}

func NewClient(apiBase, repo, userAgent string) *Client {
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	return &Client{apiBase: strings.TrimRight(apiBase, "/"), repo: repo, userAgent: userAgent}
}

// Resolve returns the release tag to install. A caller-pinned tag is used
// verbatim with no network call; otherwise the latest published tag is
// fetched. All metadata failures collapse into ErrVersionUnknown with the
// cause preserved for diagnostics.
func (c *Client) Resolve(pinned string) (string, error) {
	if tag := strings.TrimSpace(pinned); tag != "" {
		log.Debugf("release: using pinned tag %s, skipping metadata query", tag)
		return tag, nil
	}
	return c.latestTag()
}

func (c *Client) latestTag() (string, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", c.apiBase, c.repo)
	log.Debugf("release: querying %s", url)

	resp, err := gh.Get(url, c.userAgent)
	if err != nil {
		return "", fmt.Errorf("%w: fetching %s: %v", ErrVersionUnknown, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d from %s", ErrVersionUnknown, resp.StatusCode, url)
	}

	// Decode from the stream: release payloads carry full asset lists and
	// release notes, so no fixed byte cap is safe.
	var meta metadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return "", fmt.Errorf("%w: parsing response from %s: %v", ErrVersionUnknown, url, err)
	}
	if strings.TrimSpace(meta.TagName) == "" {
		return "", fmt.Errorf("%w: empty tag_name from %s", ErrVersionUnknown, url)
	}

	log.Debugf("release: latest tag is %s", meta.TagName)
	return meta.TagName, nil
}
