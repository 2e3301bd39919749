// Package fetch downloads release artifacts to a private scratch file.
package fetch

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"time"
)

const (
	// DefaultTimeout bounds every HTTP request in the pipeline.
	DefaultTimeout = 5 * time.Minute
	// DefaultUserAgent is the User-Agent header sent with requests.
	DefaultUserAgent = "binstall/1.0"

	maxRedirects = 10
)

// NewClient returns the HTTP client shared by the pipeline stages.
// insecure disables TLS certificate verification, mirroring the
// DISABLE_SSL setting.
func NewClient(insecure bool) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &http.Client{
		Timeout:   DefaultTimeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}
}
