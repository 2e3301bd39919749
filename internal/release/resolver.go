package release

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ferrostad/binstall/internal/fetch"
	"github.com/ferrostad/binstall/internal/ui"
)

// DefaultAPIBaseURL is the GitHub REST API endpoint.
const DefaultAPIBaseURL = "https://api.github.com"

// latestRelease is the slice of the GitHub release payload we need.
type latestRelease struct {
	TagName string `json:"tag_name"`
}

// Resolver determines the concrete release tag to install.
type Resolver struct {
	client  *http.Client
	log     *ui.Logger
	baseURL string
	token   string
}

// NewResolver creates a resolver backed by the GitHub API.
func NewResolver(client *http.Client, log *ui.Logger) *Resolver {
	return &Resolver{
		client:  client,
		log:     log,
		baseURL: DefaultAPIBaseURL,
	}
}

// WithToken sets a token for API authentication. Authenticated
// requests get a much higher rate limit.
func (r *Resolver) WithToken(token string) *Resolver {
	r.token = token
	return r
}

// WithBaseURL overrides the API endpoint (for testing).
func (r *Resolver) WithBaseURL(url string) *Resolver {
	r.baseURL = url
	return r
}

// Resolve returns the release tag to install. An explicit version is
// returned verbatim without any network traffic; whether the tag
// actually exists is discovered later by the artifact probe. With no
// explicit version, the latest release tag is fetched from the API.
func (r *Resolver) Resolve(ctx context.Context, owner, binary, explicit string) (string, error) {
	if explicit != "" {
		r.log.Debug("using requested version", "version", explicit)
		return explicit, nil
	}
	return r.latest(ctx, owner, binary)
}

func (r *Resolver) latest(ctx context.Context, owner, binary string) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", r.baseURL, owner, binary)
	r.log.Debug("querying latest release", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", fetch.DefaultUserAgent)
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("query latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &ResolutionError{
			Owner:  owner,
			Binary: binary,
			Reason: fmt.Sprintf("GitHub API returned HTTP %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}
	if len(body) == 0 {
		return "", &ResolutionError{Owner: owner, Binary: binary, Reason: "empty response body"}
	}

	var rel latestRelease
	if err := json.Unmarshal(body, &rel); err != nil {
		return "", &ResolutionError{
			Owner:  owner,
			Binary: binary,
			Reason: fmt.Sprintf("unparseable response: %v", err),
		}
	}

	switch rel.TagName {
	case "":
		return "", &ResolutionError{Owner: owner, Binary: binary, Reason: "response has no tag_name"}
	case "null":
		return "", &ResolutionError{Owner: owner, Binary: binary, Reason: `tag_name is "null"`}
	}

	r.log.Debug("resolved latest release", "tag", rel.TagName)
	return rel.TagName, nil
}
