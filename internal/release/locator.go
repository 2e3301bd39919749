package release

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ferrostad/binstall/internal/fetch"
	"github.com/ferrostad/binstall/internal/platform"
	"github.com/ferrostad/binstall/internal/ui"
)

// DefaultDownloadBaseURL is where GitHub serves release assets.
const DefaultDownloadBaseURL = "https://github.com"

// Artifact describes the release asset to download. It is derived from
// the request and platform key, never stored.
type Artifact struct {
	// Name is the asset file name, e.g. "tool_linux_amd64.tar.gz".
	Name string
	// URL is the full download URL for the asset.
	URL string
}

// Locator builds asset URLs and probes them for reachability before
// any transfer is attempted.
type Locator struct {
	client  *http.Client
	log     *ui.Logger
	baseURL string
}

// NewLocator creates a locator for GitHub release downloads.
func NewLocator(client *http.Client, log *ui.Logger) *Locator {
	return &Locator{
		client:  client,
		log:     log,
		baseURL: DefaultDownloadBaseURL,
	}
}

// WithBaseURL overrides the download host (for testing).
func (l *Locator) WithBaseURL(url string) *Locator {
	l.baseURL = url
	return l
}

// Locate builds the canonical asset descriptor for a release. Assets
// follow the {binary}_{os}_{arch}.{format} naming convention under the
// release's download path.
func (l *Locator) Locate(owner, binary, version string, key platform.Key) Artifact {
	name := fmt.Sprintf("%s_%s.%s", binary, key, key.ArchiveFormat())
	return Artifact{
		Name: name,
		URL:  fmt.Sprintf("%s/%s/%s/releases/download/%s/%s", l.baseURL, owner, binary, version, name),
	}
}

// Probe checks that the asset URL is reachable with a HEAD request.
// A non-success response means the release or asset does not exist and
// aborts the run before any transfer starts.
func (l *Locator) Probe(ctx context.Context, owner, binary string, artifact Artifact) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, artifact.URL, nil)
	if err != nil {
		return fmt.Errorf("create probe request: %w", err)
	}
	req.Header.Set("User-Agent", fetch.DefaultUserAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("probe artifact: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ArtifactNotFoundError{
			Owner:  owner,
			Binary: binary,
			URL:    artifact.URL,
			Status: resp.StatusCode,
		}
	}

	l.log.Debug("artifact reachable", "url", artifact.URL, "status", resp.StatusCode)
	return nil
}
