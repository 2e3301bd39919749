// Package archive extracts release archives into a destination
// directory. Extraction is modeled as an injected capability: the
// native in-process implementation is preferred, with a system-tool
// fallback that shells out to tar and unzip.
package archive

import (
	"context"
	"fmt"
)

// Format identifies a release archive format.
type Format string

const (
	FormatTarGz Format = "tar.gz"
	FormatZip   Format = "zip"
)

// ParseFormat validates a format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTarGz:
		return FormatTarGz, nil
	case FormatZip:
		return FormatZip, nil
	}
	return "", fmt.Errorf("unknown archive format: %s", s)
}

// Archiver unpacks an archive into a destination directory, creating
// the directory if absent and overwriting entries that already exist.
type Archiver interface {
	Extract(ctx context.Context, archivePath, destDir string, format Format) error
}

// ExtractionError indicates an archive could not be unpacked.
type ExtractionError struct {
	Archive string
	Err     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Archive, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// MissingDependencyError indicates a required external command is not
// installed. Only the system-tool archiver can produce it.
type MissingDependencyError struct {
	Command string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("required command %q not found in PATH", e.Command)
}

// Select returns the archiver to use for this run. The native
// implementation handles both formats in-process and needs no external
// tools, so it always wins; NewSystem remains for callers that need
// the host's own tar and unzip.
func Select() Archiver {
	return NewNative()
}
