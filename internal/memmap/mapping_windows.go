//go:build windows

package memmap

import (
	"golang.org/x/sys/windows"
)

func pageSize() uintptr {
	var info windows.SystemInfo
	windows.GetSystemInfo(&info)
	return uintptr(info.PageSize)
}

// reserveNone reserves size bytes of address space with no physical backing.
func reserveNone(size uintptr) (uintptr, error) {
	addr, err := windows.VirtualAlloc(0, size, windows.MEM_RESERVE, windows.PAGE_NOACCESS)
	if err != nil {
		return 0, err
	}
	return addr, nil
}

// reserveCommitted reserves and immediately commits size bytes read-write.
func reserveCommitted(size uintptr) (uintptr, error) {
	addr, err := windows.VirtualAlloc(0, size, windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return 0, err
	}
	return addr, nil
}

// commitRange grants read-write access to [addr, addr+size), which must
// already be part of a reserved region.
func commitRange(addr, size uintptr) error {
	_, err := windows.VirtualAlloc(addr, size, windows.MEM_COMMIT, windows.PAGE_READWRITE)
	return err
}

// releaseRange releases the entire reservation that addr belongs to. size is
// ignored; Windows requires MEM_RELEASE calls to target the original
// reservation base with a zero size.
func releaseRange(addr, _ uintptr) error {
	return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}

// adviseHugePage has no equivalent in this port; large pages on Windows
// require a privileged allocation path this library does not use.
func adviseHugePage(_, _ uintptr) {}
