//go:build shim_autoinit

package shim

// Building with the shim_autoinit tag runs Init before main, mirroring a
// preload constructor: importers get the table published before any of
// their code can call a forwarding entry point.
func init() {
	Init()
}
