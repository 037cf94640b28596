//go:build unix

package memmap

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

func pageSize() uintptr {
	return uintptr(unix.Getpagesize())
}

// reserveNone reserves size bytes of address space with no access rights
// and no physical backing.
func reserveNone(size uintptr) (uintptr, error) {
	data, err := unix.Mmap(-1, 0, int(size), unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return 0, err
	}
	addr := uintptr(unsafe.Pointer(&data[0]))
	adviseHugePage(addr, size)
	return addr, nil
}

// reserveCommitted reserves and immediately commits size bytes read-write.
func reserveCommitted(size uintptr) (uintptr, error) {
	data, err := unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return 0, err
	}
	addr := uintptr(unsafe.Pointer(&data[0]))
	adviseHugePage(addr, size)
	return addr, nil
}

// commitRange grants read-write access to [addr, addr+size).
func commitRange(addr, size uintptr) error {
	return unix.Mprotect(unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), unix.PROT_READ|unix.PROT_WRITE) //nolint:govet
}

// releaseRange releases [addr, addr+size) back to the OS.
func releaseRange(addr, size uintptr) error {
	return unix.Munmap(unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)) //nolint:govet
}
