package config

import (
	"fmt"
	"os"
	"strconv"
)

// FlagOverrides carries flag values the user set explicitly. Nil fields
// fall through to the lower layers.
type FlagOverrides struct {
	Owner     *string
	Binary    *string
	Version   *string
	OutputDir *string
	OS        *string
	Arch      *string
	Token     *string
	Debug     *bool
	DryRun    *bool
	Insecure  *bool
}

// Resolve layers the configuration sources into final Options:
// defaults < config file < environment < flags. The tool identity
// (owner and binary) must be set by some layer or resolution fails.
func Resolve(file File, flags FlagOverrides) (Options, error) {
	opts := defaults()

	// Config file layer
	if file.Owner != "" {
		opts.Owner = file.Owner
	}
	if file.Binary != "" {
		opts.Binary = file.Binary
	}
	if file.OutputDir != "" {
		opts.OutputDir = file.OutputDir
	}

	// Environment layer
	if err := applyEnv(&opts); err != nil {
		return Options{}, err
	}

	// Flag layer
	applyFlags(&opts, flags)

	if opts.Owner == "" {
		return Options{}, &UnconfiguredToolError{Field: "owner", Flag: "owner", Env: envName[OptOwner].primary}
	}
	if opts.Binary == "" {
		return Options{}, &UnconfiguredToolError{Field: "binary", Flag: "binary", Env: envName[OptBinary].primary}
	}

	return opts, nil
}

func applyEnv(opts *Options) error {
	if v, ok := lookup(OptOwner); ok {
		opts.Owner = v
	}
	if v, ok := lookup(OptBinary); ok {
		opts.Binary = v
	}
	if v, ok := lookup(OptVersion); ok {
		opts.Version = v
	}
	if v, ok := lookup(OptOutputDir); ok {
		opts.OutputDir = v
	}
	if v, ok := lookup(OptOS); ok {
		opts.OS = v
	}
	if v, ok := lookup(OptArch); ok {
		opts.Arch = v
	}
	if v, ok := lookup(OptToken); ok {
		opts.Token = v
	}

	for _, b := range []struct {
		opt  Option
		dest *bool
	}{
		{OptDebug, &opts.Debug},
		{OptDryRun, &opts.DryRun},
		{OptInsecure, &opts.Insecure},
	} {
		v, ok := lookup(b.opt)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse %s=%q: %w", envName[b.opt].primary, v, err)
		}
		*b.dest = parsed
	}

	return nil
}

// lookup reads an option's environment variable, consulting the generic
// fallback name when the prefixed one is unset.
func lookup(opt Option) (string, bool) {
	names := envName[opt]
	if v, ok := os.LookupEnv(names.primary); ok && v != "" {
		return v, true
	}
	if names.fallback != "" {
		if v, ok := os.LookupEnv(names.fallback); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

func applyFlags(opts *Options, flags FlagOverrides) {
	if flags.Owner != nil {
		opts.Owner = *flags.Owner
	}
	if flags.Binary != nil {
		opts.Binary = *flags.Binary
	}
	if flags.Version != nil {
		opts.Version = *flags.Version
	}
	if flags.OutputDir != nil {
		opts.OutputDir = *flags.OutputDir
	}
	if flags.OS != nil {
		opts.OS = *flags.OS
	}
	if flags.Arch != nil {
		opts.Arch = *flags.Arch
	}
	if flags.Token != nil {
		opts.Token = *flags.Token
	}
	if flags.Debug != nil {
		opts.Debug = *flags.Debug
	}
	if flags.DryRun != nil {
		opts.DryRun = *flags.DryRun
	}
	if flags.Insecure != nil {
		opts.Insecure = *flags.Insecure
	}
}
