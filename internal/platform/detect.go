package platform

import (
	"context"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
)

// Platform identifiers as they appear in version manifest rules.
const (
	Windows = "windows"
	OSX     = "osx"
	Linux   = "linux"
)

// Architecture widths used by the natives filter.
const (
	Arch64 = "64"
	Arch32 = "32"
)

// Info describes the running platform in manifest vocabulary.
type Info struct {
	// OS is "windows", "osx", "linux", or the raw GOOS for anything else.
	OS string

	// Arch is "64" or "32".
	Arch string
}

// NativesClassifiers returns the classifier keys that select this
// platform's native artifact, most specific first. It returns nil for
// platforms without native builds.
func (i Info) NativesClassifiers() []string {
	switch i.OS {
	case Windows:
		return []string{"natives-windows"}
	case OSX:
		return []string{"natives-macos", "natives-osx"}
	case Linux:
		return []string{"natives-linux"}
	default:
		return nil
	}
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) Info
}

// HostDetector implements Detector using gopsutil, falling back to the Go
// runtime when host information is unavailable.
type HostDetector struct{}

// NewDetector creates a new platform detector.
func NewDetector() Detector {
	return &HostDetector{}
}

// Detect returns the running platform.
func (d *HostDetector) Detect(ctx context.Context) Info {
	goos := runtime.GOOS
	arch := runtime.GOARCH

	if hi, err := host.InfoWithContext(ctx); err == nil && hi != nil {
		if hi.OS != "" {
			goos = hi.OS
		}
		if hi.KernelArch != "" {
			arch = hi.KernelArch
		}
	}

	return Info{
		OS:   NormalizeOS(goos),
		Arch: NormalizeArch(arch),
	}
}

// Static is a Detector that always returns the same Info.
type Static Info

// Detect returns the fixed Info.
func (s Static) Detect(context.Context) Info {
	return Info(s)
}

// NormalizeOS maps GOOS style names to manifest names.
func NormalizeOS(goos string) string {
	switch strings.ToLower(goos) {
	case "windows":
		return Windows
	case "darwin", "macos", "osx":
		return OSX
	case "linux":
		return Linux
	default:
		return strings.ToLower(goos)
	}
}

// NormalizeArch maps GOARCH or kernel architecture names to "64" or "32".
// Unknown architectures are treated as 64-bit.
func NormalizeArch(arch string) string {
	switch strings.ToLower(arch) {
	case "386", "i386", "i686", "x86", "arm", "armv7l", "armv6l":
		return Arch32
	default:
		return Arch64
	}
}
