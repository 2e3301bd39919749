package platform

import "strings"

// windowsKernelPrefixes lists kernel name prefixes reported by Windows
// and its Unix emulation layers. All of them install windows assets.
var windowsKernelPrefixes = []string{
	"windows",
	"mingw",
	"msys",
	"cygwin",
}

// NormalizeOS maps a raw kernel name to a release OS identifier.
// Unrecognized values pass through lowercased; validation rejects them.
func NormalizeOS(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	switch name {
	case OSDarwin:
		return OSDarwin
	case OSLinux:
		return OSLinux
	}
	for _, prefix := range windowsKernelPrefixes {
		if strings.HasPrefix(name, prefix) {
			return OSWindows
		}
	}
	return name
}

// NormalizeArch maps a raw machine hardware name to a release
// architecture identifier. wordSize is the userland word size in bits:
// a 32-bit userland on a 64-bit Linux kernel cannot run 64-bit
// binaries, so amd64 downgrades to x86 and arm64 to armv7. The
// downgraded result tells the caller to warn.
//
// Unrecognized values pass through lowercased; validation rejects them.
func NormalizeArch(raw, osName string, wordSize int) (arch string, downgraded bool) {
	machine := strings.ToLower(strings.TrimSpace(raw))

	switch machine {
	case "x86_64", "amd64":
		if osName == OSLinux && wordSize == 32 {
			return ArchX86, true
		}
		return ArchAMD64, false
	case "aarch64", "arm64":
		if osName == OSLinux && wordSize == 32 {
			return ArchARMv7, true
		}
		return ArchARM64, false
	case "i386", "i686":
		return ArchX86, false
	}

	// uname reports ARM variants with a trailing ell (armv7l, armv6l)
	if strings.HasPrefix(machine, "arm") {
		return strings.TrimSuffix(machine, "l"), false
	}

	return machine, false
}
