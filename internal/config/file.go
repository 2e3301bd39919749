package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// File holds the optional TOML defaults file contents. It carries team
// defaults only; per-run settings (version, dry-run, token) stay on the
// environment and flag layers.
type File struct {
	Owner     string `toml:"owner"`
	Binary    string `toml:"binary"`
	OutputDir string `toml:"output_dir"`
}

// DefaultFilePath returns the conventional config file location,
// e.g. ~/.config/binstall/binstall.toml on Linux.
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(dir, "binstall", "binstall.toml"), nil
}

// LoadFile reads a TOML defaults file. With an explicit path the file
// must exist; with path == "" the default location is tried and a
// missing file yields empty defaults.
func LoadFile(path string) (File, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = DefaultFilePath()
		if err != nil {
			return File{}, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("read config file: %w", err)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return f, nil
}
