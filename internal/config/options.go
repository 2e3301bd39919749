// Package config assembles the install request configuration from its
// layered sources: built-in defaults, an optional TOML defaults file,
// environment variables, and command-line flags, in that order of
// precedence. Options are keyed by a static enumeration; no environment
// variable name is ever constructed dynamically.
package config

import "fmt"

// Option enumerates every configurable setting.
type Option int

const (
	OptOwner Option = iota
	OptBinary
	OptVersion
	OptOutputDir
	OptOS
	OptArch
	OptDebug
	OptDryRun
	OptInsecure
	OptToken
)

// envName maps each option to its environment variable, with an
// optional generic fallback shared with other tooling.
var envName = map[Option]struct{ primary, fallback string }{
	OptOwner:     {primary: "BINSTALL_OWNER"},
	OptBinary:    {primary: "BINSTALL_BINARY"},
	OptVersion:   {primary: "BINSTALL_VERSION"},
	OptOutputDir: {primary: "BINSTALL_OUTPUT_DIR"},
	OptOS:        {primary: "BINSTALL_OS"},
	OptArch:      {primary: "BINSTALL_ARCH"},
	OptDebug:     {primary: "BINSTALL_DEBUG"},
	OptDryRun:    {primary: "BINSTALL_DRY_RUN"},
	OptInsecure:  {primary: "BINSTALL_DISABLE_SSL", fallback: "DISABLE_SSL"},
	OptToken:     {primary: "BINSTALL_GITHUB_TOKEN", fallback: "GITHUB_TOKEN"},
}

// Options is the fully resolved configuration for one run. It is
// assembled once by Resolve and not mutated afterwards.
type Options struct {
	// Owner is the GitHub account the release lives under.
	Owner string
	// Binary is the released tool name; it names both the repository
	// and the installed binary.
	Binary string
	// Version is the release tag to install; empty means latest.
	Version string
	// OutputDir is the installation destination.
	OutputDir string
	// OS and Arch override host detection when non-empty.
	OS   string
	Arch string

	Debug    bool
	DryRun   bool
	Insecure bool
	// Token authenticates GitHub API requests for higher rate limits.
	Token string
}

// DefaultOutputDir is where binaries land absent any other setting.
const DefaultOutputDir = "./bin"

func defaults() Options {
	return Options{OutputDir: DefaultOutputDir}
}

// UnconfiguredToolError indicates the tool identity was left unset by
// every configuration layer.
type UnconfiguredToolError struct {
	Field string
	Flag  string
	Env   string
}

func (e *UnconfiguredToolError) Error() string {
	return fmt.Sprintf("no release %s configured: set --%s, %s, or %q in the config file",
		e.Field, e.Flag, e.Env, e.Field)
}
