// Package platform detects and validates the host platform for release
// asset selection.
//
// Detection maps raw uname-style identifiers (kernel name and machine
// hardware name, read through gopsutil) to the normalized OS and
// architecture names GitHub release assets are published under. The
// normalized pair is validated against a fixed allow-list of supported
// combinations before any network work starts.
package platform

// Operating system identifiers used in release asset names.
const (
	OSDarwin  = "darwin"
	OSLinux   = "linux"
	OSWindows = "windows"
)

// Architecture identifiers used in release asset names.
const (
	ArchAMD64 = "amd64"
	ArchARM64 = "arm64"
	ArchARMv6 = "armv6"
	ArchARMv7 = "armv7"
	ArchX86   = "x86"
)

// Key is a normalized (OS, architecture) pair. It is computed once per
// run, either from host detection or from user overrides, and selects
// the release asset to download.
type Key struct {
	OS   string
	Arch string
}

// String returns the composed "os_arch" form used in asset file names
// and in the supported-platform allow-list.
func (k Key) String() string {
	return k.OS + "_" + k.Arch
}

// ArchiveFormat returns the archive format releases are published in
// for this OS: zip on Windows, tar.gz everywhere else.
func (k Key) ArchiveFormat() string {
	if k.OS == OSWindows {
		return "zip"
	}
	return "tar.gz"
}

// IsWindows returns true if the key targets Windows.
func (k Key) IsWindows() bool {
	return k.OS == OSWindows
}

// IsLinux returns true if the key targets Linux.
func (k Key) IsLinux() bool {
	return k.OS == OSLinux
}
