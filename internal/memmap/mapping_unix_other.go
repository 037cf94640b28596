//go:build unix && !linux

package memmap

// adviseHugePage has no portable equivalent to MADV_HUGEPAGE outside Linux;
// it is a no-op elsewhere.
func adviseHugePage(_, _ uintptr) {}
