package github

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// TokenFromEnv returns the GitHub token to use for API and asset requests,
// preferring the installer-specific variable over the generic one.
func TokenFromEnv() string {
	if tok := strings.TrimSpace(os.Getenv("DYMO_GITHUB_TOKEN")); tok != "" {
		return tok
	}
	return strings.TrimSpace(os.Getenv("GITHUB_TOKEN"))
}

// Get performs an authenticated GET. The token is only attached for
// github.com hosts so mirror requests never leak credentials.
func Get(url, userAgent string) (*http.Response, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	if tok := TokenFromEnv(); tok != "" && strings.Contains(url, "github.com") {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return client.Do(req)
}

func UserAgent(version string) string {
	return fmt.Sprintf("dymo-install/%s", version)
}
