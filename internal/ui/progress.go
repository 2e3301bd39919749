package ui

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// DownloadBar returns a byte-count progress bar for a transfer of the
// given total size (use -1 when Content-Length is unknown). The bar
// writes to w and degrades to periodic plain lines when w is not a
// terminal.
func DownloadBar(w io.Writer, total int64, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(
		total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)
}
