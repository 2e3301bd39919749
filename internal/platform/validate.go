package platform

import (
	"fmt"
	"sort"
	"strings"
)

// supportedKeys is the fixed allow-list of installable platforms.
// Membership is an exact, case-sensitive match on the "os_arch" key.
var supportedKeys = map[string]struct{}{
	"darwin_amd64":  {},
	"darwin_arm64":  {},
	"linux_amd64":   {},
	"linux_arm64":   {},
	"linux_armv6":   {},
	"linux_armv7":   {},
	"linux_x86":     {},
	"windows_amd64": {},
}

// Supported returns the allow-list of platform keys in sorted order.
func Supported() []string {
	keys := make([]string, 0, len(supportedKeys))
	for k := range supportedKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UnsupportedPlatformError indicates the detected or requested platform
// has no published release asset.
type UnsupportedPlatformError struct {
	Key Key
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform %s (supported: %s)",
		e.Key, strings.Join(Supported(), ", "))
}

// Validate checks a key against the allow-list. Failure is terminal for
// the run; no later pipeline stage runs with an unsupported key.
func Validate(key Key) error {
	if _, ok := supportedKeys[key.String()]; !ok {
		return &UnsupportedPlatformError{Key: key}
	}
	return nil
}
