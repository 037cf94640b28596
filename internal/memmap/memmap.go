package memmap

import (
	"github.com/UniquesKernel/anvil/internal/bitutil"
	"github.com/UniquesKernel/anvil/pkg/errs"
)

// ReserveLazy reserves capacity+overhead bytes of address space with no
// physical backing beyond the first page, which is committed immediately so
// the header can be written. Returns the aligned user pointer; the caller
// grows the committed region with Commit as it allocates.
func ReserveLazy(capacity, alignment uintptr) (uintptr, error) {
	return reserve(capacity, alignment, false)
}

// ReserveEager reserves and commits the entire region up front. Returns the
// aligned user pointer.
func ReserveEager(capacity, alignment uintptr) (uintptr, error) {
	return reserve(capacity, alignment, true)
}

func reserve(capacity, alignment uintptr, eager bool) (uintptr, error) {
	errs.Invariant("capacity > 0", capacity > 0, errs.InvZeroSize, "capacity=%d", capacity)
	checkAlignment(alignment)

	page := pageSize()
	// Room for the header plus alignment slop, rounded up to a whole page.
	overhead := metadataSize + alignment
	total, ok := bitutil.AddOverflowSafe(capacity, overhead)
	errs.Invariant("reservation size does not overflow", ok, errs.InvOutOfRange, "capacity=%d", capacity)
	virtualCapacity := bitutil.RoundUpPage(total, page)

	var base uintptr
	var err error
	initialCommitted := page
	if eager {
		base, err = reserveCommitted(virtualCapacity)
		initialCommitted = virtualCapacity
	} else {
		base, err = reserveNone(virtualCapacity)
		if err == nil {
			if err = commitRange(base, page); err != nil {
				_ = releaseRange(base, virtualCapacity)
			}
		}
	}
	if err != nil {
		return 0, errs.ErrOutOfMemory
	}

	userPtr := userPtrFor(base, alignment)
	hdr := metadataAt(userPtr - metadataSize)
	hdr.base = base
	hdr.pageSize = page
	hdr.virtualCapacity = virtualCapacity
	hdr.capacity = initialCommitted
	hdr.pageCount = initialCommitted / page

	return userPtr, nil
}

// Commit grows the committed region backing userPtr by at least bytes,
// rounded up to whole pages. It returns ErrOutOfMemory if the reservation
// cannot supply that many more bytes.
func Commit(userPtr uintptr, bytes uintptr) error {
	errs.Invariant("userPtr not null", userPtr != 0, errs.InvNullPointer, "")
	errs.Invariant("bytes > 0", bytes > 0, errs.InvZeroSize, "bytes=%d", bytes)

	hdr := metadataFor(userPtr)
	rounded := bitutil.RoundUpPage(bytes, hdr.pageSize)
	if rounded > hdr.virtualCapacity-hdr.capacity {
		return errs.ErrOutOfMemory
	}
	if err := commitRange(hdr.base+hdr.capacity, rounded); err != nil {
		return errs.ErrMemoryPermissionChange
	}
	hdr.capacity += rounded
	hdr.pageCount = hdr.capacity / hdr.pageSize
	return nil
}

// Release returns the entire reservation backing userPtr to the OS.
func Release(userPtr uintptr) error {
	errs.Invariant("userPtr not null", userPtr != 0, errs.InvNullPointer, "")

	hdr := metadataFor(userPtr)
	if err := releaseRange(hdr.base, hdr.virtualCapacity); err != nil {
		return errs.ErrMemoryDeallocation
	}
	return nil
}
