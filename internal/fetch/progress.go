package fetch

import (
	"io"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/mattn/go-isatty"
)

// progressReader wraps a download stream with a progress bar when stderr is
// a terminal. Piped bootstrap runs (curl | sh) get plain output.
func progressReader(reader io.Reader, size int64) (io.Reader, func()) {
	// ContentLength is -1 on chunked responses; without a total there is
	// nothing meaningful to render.
	if size < 0 {
		return reader, func() {}
	}
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return reader, func() {}
	}

	bar := pb.
		New64(size).
		SetTemplate(pb.Full).
		SetRefreshRate(time.Second / 30).
		SetMaxWidth(100).
		Start()

	return bar.NewProxyReader(reader), func() { bar.Finish() }
}
