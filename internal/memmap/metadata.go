// Package memmap is the backing-store layer: it reserves raw virtual
// address ranges from the OS, prepends hidden bookkeeping immediately
// before the user-visible pointer it hands back, and grows the committed
// portion of a lazy reservation on demand. Unsafe pointer arithmetic is
// confined to this package.
package memmap

import (
	"unsafe"

	"github.com/UniquesKernel/anvil/internal/bitutil"
	"github.com/UniquesKernel/anvil/pkg/errs"
)

// metadata is written immediately before every user-visible pointer this
// package returns: userPtr is aligned first (see userPtrFor), and the
// header then sits at userPtr - sizeof(metadata).
type metadata struct {
	base            uintptr
	pageSize        uintptr
	virtualCapacity uintptr
	capacity        uintptr
	pageCount       uintptr
}

const metadataSize = unsafe.Sizeof(metadata{})

func metadataAt(addr uintptr) *metadata {
	return (*metadata)(unsafe.Pointer(addr)) //nolint:govet
}

// metadataFor recovers the metadata header for a previously issued user
// pointer. The header is always stored at userPtr - metadataSize.
func metadataFor(userPtr uintptr) *metadata {
	return metadataAt(userPtr - metadataSize)
}

// userPtrFor computes the user pointer for a reservation whose first usable
// byte is minAddr: the lowest address at or above minAddr+metadataSize that
// satisfies alignment. The header is not placed at minAddr — it goes
// immediately before the returned pointer, at userPtr-metadataSize, which
// only coincides with minAddr when alignment evenly divides metadataSize.
func userPtrFor(minAddr, alignment uintptr) uintptr {
	return bitutil.AlignUp(minAddr+metadataSize, alignment)
}

// Capacity returns the currently committed byte count for a mapping
// identified by its user pointer.
func Capacity(userPtr uintptr) uintptr {
	return metadataFor(userPtr).capacity
}

// VirtualCapacity returns the total reserved byte count for a mapping
// identified by its user pointer.
func VirtualCapacity(userPtr uintptr) uintptr {
	return metadataFor(userPtr).virtualCapacity
}

// PageSize returns the OS page size captured when userPtr's mapping was
// reserved.
func PageSize(userPtr uintptr) uintptr {
	return metadataFor(userPtr).pageSize
}

// HostPageSize returns the current OS page size, independent of any
// existing reservation.
func HostPageSize() uintptr {
	return pageSize()
}

func checkAlignment(alignment uintptr) {
	errs.Invariant("alignment power of two", bitutil.IsPowerOfTwo(alignment), errs.InvBadAlignment,
		"alignment=%d", alignment)
	errs.Invariant("alignment in range", alignment >= minAlignment && alignment <= maxAlignment, errs.InvBadAlignment,
		"alignment=%d not in [%d, %d]", alignment, minAlignment, maxAlignment)
}

const (
	minAlignment = 1
	maxAlignment = 2048
)
