package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Native extracts archives in-process with the standard archive codecs.
type Native struct{}

// NewNative creates the in-process archiver.
func NewNative() *Native {
	return &Native{}
}

// Extract unpacks archivePath into destDir, preserving the archive's
// internal structure and overwriting pre-existing entries.
func (n *Native) Extract(ctx context.Context, archivePath, destDir string, format Format) error {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	var err error
	switch format {
	case FormatTarGz:
		err = n.extractTarGz(ctx, archivePath, destDir)
	case FormatZip:
		err = n.extractZip(ctx, archivePath, destDir)
	default:
		err = fmt.Errorf("unknown archive format: %s", format)
	}
	if err != nil {
		return &ExtractionError{Archive: archivePath, Err: err}
	}
	return nil
}

func (n *Native) extractTarGz(ctx context.Context, archivePath, destDir string) error {
	archiveFile, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer archiveFile.Close()

	gzipReader, err := gzip.NewReader(archiveFile)
	if err != nil {
		return fmt.Errorf("create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	tarReader := tar.NewReader(gzipReader)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read tar header: %w", err)
		}

		target, err := securePath(destDir, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}

		case tar.TypeReg:
			if err := writeEntry(target, tarReader, os.FileMode(header.Mode)); err != nil {
				return err
			}

		case tar.TypeSymlink:
			// Overwrite a leftover link from a previous run
			os.Remove(target)
			if err := os.Symlink(header.Linkname, target); err != nil {
				return fmt.Errorf("create symlink %s: %w", target, err)
			}

		default:
			// Skip char devices, block devices, fifos
			continue
		}
	}

	return nil
}

func (n *Native) extractZip(ctx context.Context, archivePath, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer reader.Close()

	for _, entry := range reader.File {
		if err := ctx.Err(); err != nil {
			return err
		}

		target, err := securePath(destDir, entry.Name)
		if err != nil {
			return err
		}

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}
			continue
		}

		src, err := entry.Open()
		if err != nil {
			return fmt.Errorf("open entry %s: %w", entry.Name, err)
		}
		err = writeEntry(target, src, entry.Mode())
		src.Close()
		if err != nil {
			return err
		}
	}

	return nil
}

// securePath joins an archive entry name onto destDir, rejecting
// entries that would escape the destination.
func securePath(destDir, name string) (string, error) {
	target := filepath.Join(destDir, name)
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("illegal entry path: %s", name)
	}
	return target, nil
}

// writeEntry creates the file for one archive entry, overwriting any
// pre-existing file of the same name.
func writeEntry(target string, src io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create parent dir for %s: %w", target, err)
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return fmt.Errorf("create file %s: %w", target, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return fmt.Errorf("write file %s: %w", target, err)
	}
	return out.Close()
}
