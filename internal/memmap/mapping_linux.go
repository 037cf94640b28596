//go:build linux

package memmap

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// adviseHugePage is a best-effort hint; failures are ignored since it never
// affects correctness, only the odds of the kernel backing the range with
// transparent huge pages.
func adviseHugePage(addr, size uintptr) {
	_ = unix.Madvise(unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), unix.MADV_HUGEPAGE) //nolint:govet
}
