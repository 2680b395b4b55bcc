package shim

import (
	"os"

	"github.com/mlutra/shimkit/internal/dl"
)

// Environment overrides for the default library names.
const (
	EnvPlatformLib = "SHIMKIT_PLATFORM_LIB"
	EnvAltLib      = "SHIMKIT_ALT_LIB"
)

// Config names the libraries resolution runs against.
type Config struct {
	// PlatformLib is the library providing the platform default allocator.
	PlatformLib string

	// AltLib is the alternative allocator's library.
	AltLib string
}

// DefaultConfig returns the platform defaults with environment overrides
// applied.
func DefaultConfig() Config {
	cfg := Config{
		PlatformLib: dl.PlatformLib,
		AltLib:      dl.AltLib,
	}
	if v := os.Getenv(EnvPlatformLib); v != "" {
		cfg.PlatformLib = v
	}
	if v := os.Getenv(EnvAltLib); v != "" {
		cfg.AltLib = v
	}
	return cfg
}
