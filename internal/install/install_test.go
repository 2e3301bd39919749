package install

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ferrostad/binstall/internal/archive"
	"github.com/ferrostad/binstall/internal/config"
	"github.com/ferrostad/binstall/internal/fetch"
	"github.com/ferrostad/binstall/internal/platform"
	"github.com/ferrostad/binstall/internal/release"
	"github.com/ferrostad/binstall/internal/ui"
)

// upstream fakes the GitHub API and download host in one server.
type upstream struct {
	tag       string
	assetPath string
	archive   []byte

	latestCalls int
	headCalls   int
	getCalls    int
}

func tarGzArchive(t *testing.T, entries map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	for name, content := range entries {
		hdr := &tar.Header{Name: name, Mode: 0o755, Size: int64(len(content))}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("write tar header: %v", err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatalf("write tar entry: %v", err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar writer: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("close gzip writer: %v", err)
	}
	return buf.Bytes()
}

func (u *upstream) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/repos/acme/tool/releases/latest":
			u.latestCalls++
			w.Write([]byte(`{"tag_name":"` + u.tag + `"}`))

		case r.URL.Path == u.assetPath && r.Method == http.MethodHead:
			u.headCalls++
			w.WriteHeader(http.StatusOK)

		case r.URL.Path == u.assetPath && r.Method == http.MethodGet:
			u.getCalls++
			w.Write(u.archive)

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

// newTestInstaller wires a pipeline against the fake upstream.
func newTestInstaller(t *testing.T, serverURL string, client *http.Client) *Installer {
	t.Helper()

	log := ui.NewLogger(io.Discard, false)
	installer, err := NewInstaller(Config{
		Log:      log,
		Detector: platform.NewDetector(log),
		Resolver: release.NewResolver(client, log).WithBaseURL(serverURL),
		Locator:  release.NewLocator(client, log).WithBaseURL(serverURL),
		Fetcher:  fetch.NewFetcher(client, log),
		Archiver: archive.Select(),
	})
	if err != nil {
		t.Fatalf("NewInstaller() error = %v", err)
	}
	return installer
}

func linuxAMD64Request(dest string) Request {
	return Request{
		Owner:     "acme",
		Binary:    "tool",
		OS:        "linux",
		Arch:      "amd64",
		OutputDir: dest,
	}
}

func TestInstallerRun(t *testing.T) {
	up := &upstream{
		tag:       "v1.0.0",
		assetPath: "/acme/tool/releases/download/v1.0.0/tool_linux_amd64.tar.gz",
	}
	up.archive = tarGzArchive(t, map[string]string{"tool": "#!binary v1.0.0"})

	server := httptest.NewServer(up.handler(t))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "bin")
	installer := newTestInstaller(t, server.URL, server.Client())

	result, err := installer.Run(context.Background(), linuxAMD64Request(dest))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Version != "v1.0.0" {
		t.Errorf("Version = %v, want v1.0.0", result.Version)
	}
	if result.Platform.String() != "linux_amd64" {
		t.Errorf("Platform = %v, want linux_amd64", result.Platform)
	}

	content, err := os.ReadFile(filepath.Join(dest, "tool"))
	if err != nil {
		t.Fatalf("read installed binary: %v", err)
	}
	if string(content) != "#!binary v1.0.0" {
		t.Errorf("installed content = %q", content)
	}

	if up.latestCalls != 1 || up.headCalls != 1 || up.getCalls != 1 {
		t.Errorf("calls = latest:%d head:%d get:%d, want 1:1:1",
			up.latestCalls, up.headCalls, up.getCalls)
	}
}

func TestInstallerRunExplicitVersionSkipsResolution(t *testing.T) {
	up := &upstream{
		tag:       "v9.9.9",
		assetPath: "/acme/tool/releases/download/v2.0.0/tool_linux_amd64.tar.gz",
	}
	up.archive = tarGzArchive(t, map[string]string{"tool": "#!binary v2.0.0"})

	server := httptest.NewServer(up.handler(t))
	defer server.Close()

	installer := newTestInstaller(t, server.URL, server.Client())
	req := linuxAMD64Request(filepath.Join(t.TempDir(), "bin"))
	req.Version = "v2.0.0"

	result, err := installer.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Version != "v2.0.0" {
		t.Errorf("Version = %v, want v2.0.0 verbatim", result.Version)
	}
	if up.latestCalls != 0 {
		t.Errorf("latest release queried %d times with explicit version, want 0", up.latestCalls)
	}
}

func TestInstallerDryRun(t *testing.T) {
	up := &upstream{
		tag:       "v1.0.0",
		assetPath: "/acme/tool/releases/download/v1.0.0/tool_linux_amd64.tar.gz",
	}
	up.archive = tarGzArchive(t, map[string]string{"tool": "#!binary"})

	server := httptest.NewServer(up.handler(t))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "bin")
	installer := newTestInstaller(t, server.URL, server.Client())
	req := linuxAMD64Request(dest)
	req.DryRun = true

	result, err := installer.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !result.DryRun {
		t.Error("Result.DryRun = false, want true")
	}
	if result.URL == "" {
		t.Error("dry run should still report the would-be URL")
	}
	if up.getCalls != 0 {
		t.Errorf("dry run fetched the asset %d times, want 0", up.getCalls)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Errorf("dry run mutated the destination directory: %v", err)
	}
}

func TestInstallerUnsupportedPlatformAbortsBeforeNetwork(t *testing.T) {
	up := &upstream{tag: "v1.0.0", assetPath: "/x"}
	server := httptest.NewServer(up.handler(t))
	defer server.Close()

	installer := newTestInstaller(t, server.URL, server.Client())
	req := linuxAMD64Request(t.TempDir())
	req.OS = "windows"
	req.Arch = "arm64"

	_, err := installer.Run(context.Background(), req)
	var unsupported *platform.UnsupportedPlatformError
	if !errors.As(err, &unsupported) {
		t.Fatalf("error type = %T, want *UnsupportedPlatformError", err)
	}
	if up.latestCalls+up.headCalls+up.getCalls != 0 {
		t.Error("unsupported platform still reached the network")
	}
}

func TestInstallerProbeFailureStopsBeforeFetch(t *testing.T) {
	up := &upstream{
		tag: "v1.0.0",
		// Asset path does not match what the locator constructs
		assetPath: "/elsewhere",
	}
	server := httptest.NewServer(up.handler(t))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "bin")
	installer := newTestInstaller(t, server.URL, server.Client())

	_, err := installer.Run(context.Background(), linuxAMD64Request(dest))
	var notFound *release.ArtifactNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error type = %T, want *ArtifactNotFoundError", err)
	}
	if up.getCalls != 0 {
		t.Errorf("fetch ran %d times after failed probe, want 0", up.getCalls)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("failed probe mutated the destination directory")
	}
}

func TestInstallerDownloadFailureStopsBeforeExtract(t *testing.T) {
	assetPath := "/acme/tool/releases/download/v1.0.0/tool_linux_amd64.tar.gz"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/repos/acme/tool/releases/latest":
			w.Write([]byte(`{"tag_name":"v1.0.0"}`))
		case r.URL.Path == assetPath && r.Method == http.MethodHead:
			w.WriteHeader(http.StatusOK)
		case r.URL.Path == assetPath && r.Method == http.MethodGet:
			// Probe passes but the transfer itself fails
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("transient storage error"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "bin")
	installer := newTestInstaller(t, server.URL, server.Client())

	_, err := installer.Run(context.Background(), linuxAMD64Request(dest))
	var download *fetch.DownloadError
	if !errors.As(err, &download) {
		t.Fatalf("error type = %T, want *DownloadError", err)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("failed download mutated the destination directory")
	}
}

func TestInstallerIdempotent(t *testing.T) {
	up := &upstream{
		tag:       "v1.0.0",
		assetPath: "/acme/tool/releases/download/v1.0.0/tool_linux_amd64.tar.gz",
	}
	up.archive = tarGzArchive(t, map[string]string{
		"tool":      "#!binary",
		"docs/note": "hello",
	})

	server := httptest.NewServer(up.handler(t))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "bin")
	installer := newTestInstaller(t, server.URL, server.Client())

	for run := 1; run <= 2; run++ {
		if _, err := installer.Run(context.Background(), linuxAMD64Request(dest)); err != nil {
			t.Fatalf("Run() %d error = %v", run, err)
		}
	}

	entries, err := os.ReadDir(dest)
	if err != nil {
		t.Fatalf("read dest: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("dest has %d entries after two runs, want 2", len(entries))
	}
	content, err := os.ReadFile(filepath.Join(dest, "tool"))
	if err != nil {
		t.Fatalf("read installed binary: %v", err)
	}
	if string(content) != "#!binary" {
		t.Errorf("installed content = %q after second run", content)
	}
}

func TestNewInstallerRequiresAllStages(t *testing.T) {
	log := ui.NewLogger(io.Discard, false)
	client := http.DefaultClient

	full := Config{
		Log:      log,
		Detector: platform.NewDetector(log),
		Resolver: release.NewResolver(client, log),
		Locator:  release.NewLocator(client, log),
		Fetcher:  fetch.NewFetcher(client, log),
		Archiver: archive.Select(),
	}

	if _, err := NewInstaller(full); err != nil {
		t.Fatalf("NewInstaller(full) error = %v", err)
	}

	missing := full
	missing.Archiver = nil
	if _, err := NewInstaller(missing); err == nil {
		t.Error("expected error for missing Archiver")
	}
}

func TestNewFromOptions(t *testing.T) {
	opts := config.Options{
		Owner:     "acme",
		Binary:    "tool",
		OutputDir: "./bin",
		Token:     "ghp_token",
		Insecure:  true,
	}
	if installer := NewFromOptions(opts, ui.NewLogger(io.Discard, false)); installer == nil {
		t.Fatal("NewFromOptions() = nil")
	}
}

func TestNewRequest(t *testing.T) {
	opts := config.Options{
		Owner:     "acme",
		Binary:    "tool",
		Version:   "v1.2.3",
		OS:        "linux",
		Arch:      "arm64",
		OutputDir: "/opt/bin",
		DryRun:    true,
	}

	req := NewRequest(opts)
	want := Request{
		Owner:     "acme",
		Binary:    "tool",
		Version:   "v1.2.3",
		OS:        "linux",
		Arch:      "arm64",
		OutputDir: "/opt/bin",
		DryRun:    true,
	}
	if req != want {
		t.Errorf("NewRequest() = %+v, want %+v", req, want)
	}
}
