//go:build linux || darwin

package dl

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// sysLoader is the real dlfcn-backed loader.
type sysLoader struct{}

// System returns the process's dynamic loader.
func System() Loader { return sysLoader{} }

func (sysLoader) Probe(lib string) (Handle, bool) {
	// RTLD_NOLOAD turns dlopen into a pure presence check.
	h, err := purego.Dlopen(lib, purego.RTLD_NOW|rtldNoload)
	if err != nil || h == 0 {
		return 0, false
	}
	return Handle(h), true
}

func (sysLoader) Open(lib string) (Handle, error) {
	h, err := purego.Dlopen(lib, purego.RTLD_NOW)
	if err != nil {
		return 0, fmt.Errorf("dl: open %s: %w", lib, err)
	}
	return Handle(h), nil
}

func (sysLoader) Sym(h Handle, name string) uintptr {
	addr, err := purego.Dlsym(uintptr(h), name)
	if err != nil {
		return 0
	}
	return addr
}

func (sysLoader) Next(name string) uintptr {
	addr, err := purego.Dlsym(rtldNext, name)
	if err != nil {
		return 0
	}
	return addr
}
