package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/ferrostad/binstall/internal/ui"
)

// DownloadError indicates the artifact transfer finished with a
// non-success transport status.
type DownloadError struct {
	URL    string
	Status int
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download of %s failed with HTTP %d", e.URL, e.Status)
}

// Fetcher downloads a URL into an exclusively-owned scratch file.
type Fetcher struct {
	client   *http.Client
	log      *ui.Logger
	progress io.Writer
}

// NewFetcher creates a fetcher using the given client. Progress
// rendering is off until enabled with WithProgress.
func NewFetcher(client *http.Client, log *ui.Logger) *Fetcher {
	return &Fetcher{client: client, log: log}
}

// WithProgress renders a byte progress bar to w during transfers.
func (f *Fetcher) WithProgress(w io.Writer) *Fetcher {
	f.progress = w
	return f
}

// Fetch downloads url to a scratch file and returns its path plus a
// cleanup func that removes it. The caller must defer cleanup as soon
// as Fetch returns, success or not; it is idempotent, and Fetch's own
// failure paths already remove the file before returning. The final
// transport status is inspected explicitly, since failure responses
// can still carry a body.
func (f *Fetcher) Fetch(ctx context.Context, url string) (path string, cleanup func(), err error) {
	cleanup = func() {}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", cleanup, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", cleanup, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", cleanup, &DownloadError{URL: url, Status: resp.StatusCode}
	}

	tmp, err := os.CreateTemp("", "binstall-*")
	if err != nil {
		return "", cleanup, fmt.Errorf("create scratch file: %w", err)
	}
	path = tmp.Name()
	cleanup = func() { os.Remove(path) }

	var w io.Writer = tmp
	if f.progress != nil {
		bar := ui.DownloadBar(f.progress, resp.ContentLength, "downloading")
		w = io.MultiWriter(tmp, bar)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		tmp.Close()
		cleanup()
		return "", cleanup, fmt.Errorf("write scratch file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", cleanup, fmt.Errorf("close scratch file: %w", err)
	}

	f.log.Debug("downloaded artifact", "url", url, "path", path, "status", resp.StatusCode)
	return path, cleanup, nil
}
