// Package release resolves the version tag to install and locates the
// matching GitHub release asset for a platform.
package release

import "fmt"

// guidance is appended to resolution and lookup failures. Both failure
// modes have the same likely causes, so they share the checklist.
func guidance(owner, binary string) string {
	return fmt.Sprintf(`check that:
  - the tool name %q and owner %q are spelled correctly
  - the project has published releases: https://github.com/%s/%s/releases
  - the requested version exists
  - you are not rate limited by the GitHub API (set BINSTALL_GITHUB_TOKEN to raise the limit)`,
		binary, owner, owner, binary)
}

// ResolutionError indicates the latest release tag could not be
// determined from the GitHub API.
type ResolutionError struct {
	Owner  string
	Binary string
	Reason string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("could not resolve the latest version of %s/%s: %s\n%s",
		e.Owner, e.Binary, e.Reason, guidance(e.Owner, e.Binary))
}

// ArtifactNotFoundError indicates the constructed asset URL is not
// reachable, discovered by the pre-transfer probe.
type ArtifactNotFoundError struct {
	Owner  string
	Binary string
	URL    string
	Status int
}

func (e *ArtifactNotFoundError) Error() string {
	return fmt.Sprintf("release artifact not found: %s (HTTP %d)\n%s",
		e.URL, e.Status, guidance(e.Owner, e.Binary))
}
