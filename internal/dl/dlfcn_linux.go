package dl

// dlfcn.h values glibc does not expose through purego.
const (
	rtldNoload = 0x00004
	rtldNext   = ^uintptr(0) // RTLD_NEXT, (void *) -1
)

// Default library names for this platform.
const (
	PlatformLib = "libc.so.6"
	AltLib      = "libmimalloc.so"
)
