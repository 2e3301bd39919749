package archive

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// System extracts archives by invoking the host's tar and unzip
// commands. It exists for hosts whose archives rely on features the
// in-process codecs do not carry; Select prefers Native.
type System struct {
	lookPath func(string) (string, error)
}

// NewSystem creates the system-tool archiver.
func NewSystem() *System {
	return &System{lookPath: exec.LookPath}
}

// Extract unpacks archivePath into destDir using tar or unzip.
func (s *System) Extract(ctx context.Context, archivePath, destDir string, format Format) error {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	var name string
	var args []string
	switch format {
	case FormatTarGz:
		name = "tar"
		args = []string{"-xzf", archivePath, "-C", destDir}
	case FormatZip:
		name = "unzip"
		args = []string{"-o", "-q", archivePath, "-d", destDir}
	default:
		return &ExtractionError{Archive: archivePath, Err: fmt.Errorf("unknown archive format: %s", format)}
	}

	tool, err := s.lookPath(name)
	if err != nil {
		return &MissingDependencyError{Command: name}
	}

	cmd := exec.CommandContext(ctx, tool, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &ExtractionError{
			Archive: archivePath,
			Err:     fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String())),
		}
	}
	return nil
}
