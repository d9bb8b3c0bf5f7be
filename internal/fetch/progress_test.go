package fetch

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressReaderUnknownLengthPassesThrough(t *testing.T) {
	src := strings.NewReader("streamed without a content length")

	// -1 mirrors http.Response.ContentLength on chunked transfers.
	wrapped, finish := progressReader(src, -1)
	defer finish()

	got, err := io.ReadAll(wrapped)
	require.NoError(t, err)
	assert.Equal(t, "streamed without a content length", string(got))
}
