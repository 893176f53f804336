package cta

import (
	"os"
	"runtime"
	"strconv"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// DispatchLevel represents the widest SIMD instruction set detected on the host.
type DispatchLevel int

const (
	// DispatchScalar indicates no usable SIMD extension.
	DispatchScalar DispatchLevel = iota

	// DispatchAVX2 indicates AVX2 instructions (256-bit SIMD).
	DispatchAVX2

	// DispatchAVX512 indicates AVX-512 instructions (512-bit SIMD).
	DispatchAVX512

	// DispatchNEON indicates ARM NEON instructions (128-bit SIMD).
	DispatchNEON

	// DispatchSVE indicates ARM SVE instructions (scalable vector).
	DispatchSVE
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	case DispatchNEON:
		return "neon"
	case DispatchSVE:
		return "sve"
	default:
		return "unknown"
	}
}

var (
	currentLevel DispatchLevel
	currentWidth int
)

func init() {
	if NoSimdEnv() {
		currentLevel, currentWidth = DispatchScalar, 16
		return
	}
	currentLevel, currentWidth = detect(runtime.GOARCH)
}

func detect(goarch string) (DispatchLevel, int) {
	switch goarch {
	case "amd64":
		if cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW && cpu.X86.HasAVX512VL {
			return DispatchAVX512, 64
		}
		if cpu.X86.HasAVX2 && cpu.X86.HasFMA {
			return DispatchAVX2, 32
		}
	case "arm64":
		if cpu.ARM64.HasSVE {
			return DispatchSVE, 16
		}
		if cpu.ARM64.HasASIMD {
			return DispatchNEON, 16
		}
	}
	// Use 16-byte vectors even in scalar mode for consistency.
	return DispatchScalar, 16
}

// CurrentLevel returns the detected SIMD level.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentWidth returns the SIMD register width in bytes.
func CurrentWidth() int {
	return currentWidth
}

// CurrentName returns a human-readable name for the detected SIMD level.
func CurrentName() string {
	return currentLevel.String()
}

// NoSimdEnv reports whether the LBS_NO_SIMD environment variable is set.
// When set, DefaultParams sizes tiles as if no SIMD extension was present.
func NoSimdEnv() bool {
	val := os.Getenv("LBS_NO_SIMD")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// MaxLanes returns how many values of T fit in one register of CurrentWidth.
func MaxLanes[T Lanes]() int {
	var dummy T
	elementSize := int(unsafe.Sizeof(dummy))
	if elementSize == 0 {
		return 0
	}
	return currentWidth / elementSize
}
