package kernel

import (
	"os"
	"strings"

	"golang.org/x/sys/cpu"
)

// Kind names an evaluation kernel.
type Kind uint8

const (
	// Naive is the plain double loop.
	Naive Kind = iota
	// Tiled is the row-blocked, unrolled loop.
	Tiled
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case Naive:
		return "naive"
	case Tiled:
		return "tiled"
	default:
		return "unknown"
	}
}

// ParseKind parses a kernel name.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "naive":
		return Naive, true
	case "tiled":
		return Tiled, true
	default:
		return Naive, false
	}
}

// Initialized once at package init; read-only afterwards.
var (
	active      Kind
	hasOverride bool
)

func init() {
	if override := os.Getenv("BINDER_KERNEL"); override != "" {
		if k, ok := ParseKind(override); ok {
			active = k
			hasOverride = true
			return
		}
	}
	active = selectBest()
}

// selectBest prefers the unrolled kernel on CPUs with wide vector units,
// where the compiler-generated compare/add chains pipeline well.
func selectBest() Kind {
	if cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD {
		return Tiled
	}
	return Naive
}

// Active returns the kernel used by Evaluate.
func Active() Kind { return active }

// HasOverride reports whether BINDER_KERNEL selected the kernel.
func HasOverride() bool { return hasOverride }
