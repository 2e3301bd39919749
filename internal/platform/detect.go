package platform

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/ferrostad/binstall/internal/ui"
)

// Detector resolves the host into a normalized platform Key. It uses
// gopsutil for uname-style host introspection and the running process
// word size for the 32-bit-userland correction. Host information is
// read once per Detector and cached; nothing persists across runs.
type Detector struct {
	log      *ui.Logger
	wordSize int
	hostInfo func(context.Context) (*host.InfoStat, error)
	cached   *host.InfoStat
}

// NewDetector creates a detector backed by real host introspection.
func NewDetector(log *ui.Logger) *Detector {
	return &Detector{
		log:      log,
		wordSize: strconv.IntSize,
		hostInfo: host.InfoWithContext,
	}
}

func (d *Detector) host(ctx context.Context) (*host.InfoStat, error) {
	if d.cached != nil {
		return d.cached, nil
	}
	info, err := d.hostInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("read host information: %w", err)
	}
	d.cached = info
	return info, nil
}

// DetectOS returns the normalized OS identifier for the host.
func (d *Detector) DetectOS(ctx context.Context) (string, error) {
	info, err := d.host(ctx)
	if err != nil {
		return "", err
	}
	osName := NormalizeOS(info.OS)
	d.log.Debug("detected operating system", "raw", info.OS, "os", osName)
	return osName, nil
}

// DetectArch returns the normalized architecture identifier for the
// host. The resolved OS is required for the 32-bit-userland correction,
// which only applies on Linux.
func (d *Detector) DetectArch(ctx context.Context, osName string) (string, error) {
	info, err := d.host(ctx)
	if err != nil {
		return "", err
	}
	raw := info.KernelArch
	if raw == "" {
		// gopsutil leaves KernelArch empty on some hosts (notably
		// Windows without WMI access); the compiled-in arch is the
		// best remaining signal.
		raw = runtime.GOARCH
	}
	arch, downgraded := NormalizeArch(raw, osName, d.wordSize)
	if downgraded {
		d.log.Warn("32-bit userland on a 64-bit kernel, selecting 32-bit binaries",
			"raw", raw, "arch", arch)
	}
	d.log.Debug("detected architecture", "raw", raw, "arch", arch)
	return arch, nil
}

// Resolve produces the platform key for this run. Overrides are used
// verbatim when present; missing values come from host detection. The
// result still has to pass Validate before use.
func (d *Detector) Resolve(ctx context.Context, osOverride, archOverride string) (Key, error) {
	key := Key{OS: osOverride, Arch: archOverride}

	if key.OS == "" {
		osName, err := d.DetectOS(ctx)
		if err != nil {
			return Key{}, err
		}
		key.OS = osName
	}

	if key.Arch == "" {
		arch, err := d.DetectArch(ctx, key.OS)
		if err != nil {
			return Key{}, err
		}
		key.Arch = arch
	}

	return key, nil
}
