package dl

// dlfcn.h values dyld does not expose through purego.
const (
	rtldNoload = 0x10
	rtldNext   = ^uintptr(0) // RTLD_NEXT, (void *) -1
)

// Default library names for this platform. libSystem re-exports the malloc
// family, so it stands in for libc here.
const (
	PlatformLib = "/usr/lib/libSystem.B.dylib"
	AltLib      = "libmimalloc.dylib"
)
