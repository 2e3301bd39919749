package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ferrostad/binstall/internal/config"
	"github.com/ferrostad/binstall/internal/install"
	"github.com/ferrostad/binstall/internal/ui"
)

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "binstall",
		Short: "Install tool binaries from GitHub releases",
		Long: `binstall downloads a release archive for the current platform from a
tool's GitHub releases page and unpacks it into a local directory.

The tool identity (owner and binary name) can come from flags, from
BINSTALL_* environment variables, or from a binstall.toml defaults file.

Examples:
  binstall --owner acme --binary tool
  binstall --owner acme --binary tool --version v1.2.3 --output-dir ~/bin
  binstall --owner acme --binary tool --dry-run`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, configPath)
		},
	}

	cmd.Flags().String("owner", "", "GitHub account owning the tool repository")
	cmd.Flags().String("binary", "", "Name of the binary (and its repository)")
	cmd.Flags().String("version", "", "Release tag to install (default: latest)")
	cmd.Flags().StringP("output-dir", "o", config.DefaultOutputDir, "Directory to unpack the binary into")
	cmd.Flags().String("os", "", "Override the detected operating system")
	cmd.Flags().String("arch", "", "Override the detected architecture")
	cmd.Flags().String("token", "", "GitHub API token for release lookups")
	cmd.Flags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.Flags().BoolP("dry-run", "n", false, "Resolve and report without downloading")
	cmd.Flags().BoolP("insecure", "k", false, "Skip TLS certificate verification")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a binstall.toml defaults file")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the binstall build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "binstall %s\n", Version)
		},
	}
}

func runInstall(cmd *cobra.Command, configPath string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	file, err := config.LoadFile(configPath)
	if err != nil {
		return err
	}

	opts, err := config.Resolve(file, flagOverrides(cmd))
	if err != nil {
		return err
	}

	log := ui.NewStderrLogger(opts.Debug)
	installer := install.NewFromOptions(opts, log)

	result, err := installer.Run(ctx, install.NewRequest(opts))
	if err != nil {
		return err
	}

	if result.DryRun {
		fmt.Printf("Would install %s %s (%s) into %s\n",
			result.Binary, result.Version, result.Platform, result.Dest)
		return nil
	}
	fmt.Printf("Installed %s %s (%s) into %s\n",
		result.Binary, result.Version, result.Platform, result.Dest)
	return nil
}

// flagOverrides collects only the flags the user set explicitly, so
// unset flags fall through to the environment and config file layers.
func flagOverrides(cmd *cobra.Command) config.FlagOverrides {
	return config.FlagOverrides{
		Owner:     stringFlag(cmd, "owner"),
		Binary:    stringFlag(cmd, "binary"),
		Version:   stringFlag(cmd, "version"),
		OutputDir: stringFlag(cmd, "output-dir"),
		OS:        stringFlag(cmd, "os"),
		Arch:      stringFlag(cmd, "arch"),
		Token:     stringFlag(cmd, "token"),
		Debug:     boolFlag(cmd, "debug"),
		DryRun:    boolFlag(cmd, "dry-run"),
		Insecure:  boolFlag(cmd, "insecure"),
	}
}

func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func boolFlag(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}
