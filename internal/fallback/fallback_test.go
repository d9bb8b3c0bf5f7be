package fallback

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunPrintsURLAndDestination(t *testing.T) {
	var out bytes.Buffer
	var opened string

	m := &Manual{
		In:      strings.NewReader("\n"),
		Out:     &out,
		OpenURL: func(url string) error { opened = url; return nil },
	}
	m.Run("https://example.com/dymo-code-linux-x86_64", "/home/u/.local/bin/dymo-code")

	assert.Contains(t, out.String(), "https://example.com/dymo-code-linux-x86_64")
	assert.Contains(t, out.String(), "/home/u/.local/bin/dymo-code")
	assert.Equal(t, "https://example.com/dymo-code-linux-x86_64", opened)
}

func TestRunBlocksOnAcknowledgement(t *testing.T) {
	var out bytes.Buffer
	m := &Manual{
		In:      strings.NewReader("ok\n"),
		Out:     &out,
		OpenURL: func(string) error { return nil },
	}
	m.Run("https://example.com/a", "/tmp/dymo-code")
	assert.Contains(t, out.String(), "Press Enter")
}

func TestRunAssumeYesSkipsPrompt(t *testing.T) {
	var out bytes.Buffer
	m := &Manual{
		In:        strings.NewReader(""), // would block forever if read
		Out:       &out,
		OpenURL:   func(string) error { return nil },
		AssumeYes: true,
	}
	m.Run("https://example.com/a", "/tmp/dymo-code")
	assert.NotContains(t, out.String(), "Press Enter")
}

func TestRunBrowserFailureIsNonFatal(t *testing.T) {
	var out bytes.Buffer
	m := &Manual{
		In:        strings.NewReader("\n"),
		Out:       &out,
		OpenURL:   func(string) error { return errors.New("no display") },
		AssumeYes: true,
	}
	m.Run("https://example.com/a", "/tmp/dymo-code")
	assert.Contains(t, out.String(), "use the URL above")
}
