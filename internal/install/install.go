// Package install orchestrates the full pipeline: platform detection
// and validation, version resolution, artifact location, download, and
// extraction. Stages run strictly in sequence; the first failure is
// terminal for the run and nothing is retried.
package install

import (
	"context"
	"fmt"
	"os"

	"github.com/ferrostad/binstall/internal/archive"
	"github.com/ferrostad/binstall/internal/config"
	"github.com/ferrostad/binstall/internal/fetch"
	"github.com/ferrostad/binstall/internal/platform"
	"github.com/ferrostad/binstall/internal/release"
	"github.com/ferrostad/binstall/internal/ui"
)

// Request is the immutable configuration for one run. Empty Version,
// OS, and Arch mean "resolve at run time"; nothing else changes once
// the pipeline starts.
type Request struct {
	Owner     string
	Binary    string
	Version   string
	OS        string
	Arch      string
	OutputDir string
	DryRun    bool
}

// NewRequest builds a Request from resolved options.
func NewRequest(opts config.Options) Request {
	return Request{
		Owner:     opts.Owner,
		Binary:    opts.Binary,
		Version:   opts.Version,
		OS:        opts.OS,
		Arch:      opts.Arch,
		OutputDir: opts.OutputDir,
		DryRun:    opts.DryRun,
	}
}

// Result reports what a run did, or would have done in dry-run mode.
type Result struct {
	Binary   string
	Version  string
	Platform platform.Key
	URL      string
	Dest     string
	DryRun   bool
}

// Installer wires the pipeline stages together.
type Installer struct {
	log      *ui.Logger
	detector *platform.Detector
	resolver *release.Resolver
	locator  *release.Locator
	fetcher  *fetch.Fetcher
	archiver archive.Archiver
}

// Config holds the pipeline stages for an Installer.
type Config struct {
	Log      *ui.Logger
	Detector *platform.Detector
	Resolver *release.Resolver
	Locator  *release.Locator
	Fetcher  *fetch.Fetcher
	Archiver archive.Archiver
}

// NewInstaller creates an installer from explicitly wired stages.
func NewInstaller(cfg Config) (*Installer, error) {
	if cfg.Log == nil {
		return nil, fmt.Errorf("Log is required")
	}
	if cfg.Detector == nil {
		return nil, fmt.Errorf("Detector is required")
	}
	if cfg.Resolver == nil {
		return nil, fmt.Errorf("Resolver is required")
	}
	if cfg.Locator == nil {
		return nil, fmt.Errorf("Locator is required")
	}
	if cfg.Fetcher == nil {
		return nil, fmt.Errorf("Fetcher is required")
	}
	if cfg.Archiver == nil {
		return nil, fmt.Errorf("Archiver is required")
	}
	return &Installer{
		log:      cfg.Log,
		detector: cfg.Detector,
		resolver: cfg.Resolver,
		locator:  cfg.Locator,
		fetcher:  cfg.Fetcher,
		archiver: cfg.Archiver,
	}, nil
}

// NewFromOptions wires the production pipeline from resolved options.
func NewFromOptions(opts config.Options, log *ui.Logger) *Installer {
	client := fetch.NewClient(opts.Insecure)
	installer, _ := NewInstaller(Config{
		Log:      log,
		Detector: platform.NewDetector(log),
		Resolver: release.NewResolver(client, log).WithToken(opts.Token),
		Locator:  release.NewLocator(client, log),
		Fetcher:  fetch.NewFetcher(client, log).WithProgress(os.Stderr),
		Archiver: archive.Select(),
	})
	return installer
}

// Run executes the pipeline for one request.
func (i *Installer) Run(ctx context.Context, req Request) (*Result, error) {
	key, err := i.detector.Resolve(ctx, req.OS, req.Arch)
	if err != nil {
		return nil, err
	}
	if err := platform.Validate(key); err != nil {
		return nil, err
	}
	i.log.Debug("platform validated", "platform", key)

	version, err := i.resolver.Resolve(ctx, req.Owner, req.Binary, req.Version)
	if err != nil {
		return nil, err
	}

	artifact := i.locator.Locate(req.Owner, req.Binary, version, key)
	if err := i.locator.Probe(ctx, req.Owner, req.Binary, artifact); err != nil {
		return nil, err
	}

	result := &Result{
		Binary:   req.Binary,
		Version:  version,
		Platform: key,
		URL:      artifact.URL,
		Dest:     req.OutputDir,
		DryRun:   req.DryRun,
	}

	// Dry run stops before any transfer or filesystem mutation
	if req.DryRun {
		i.log.Info("dry run: would download", "url", artifact.URL)
		i.log.Info("dry run: would install", "binary", req.Binary, "dir", req.OutputDir)
		return result, nil
	}

	i.log.Info("downloading", "url", artifact.URL)
	scratch, cleanup, err := i.fetcher.Fetch(ctx, artifact.URL)
	defer cleanup()
	if err != nil {
		return nil, err
	}

	format := archive.Format(key.ArchiveFormat())
	if err := i.archiver.Extract(ctx, scratch, req.OutputDir, format); err != nil {
		return nil, err
	}

	i.log.Info("installed", "binary", req.Binary, "version", version, "dir", req.OutputDir)
	return result, nil
}
