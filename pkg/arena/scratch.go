package arena

import (
	"bytes"
	"unsafe"

	"github.com/UniquesKernel/anvil/internal/bitutil"
	"github.com/UniquesKernel/anvil/internal/memmap"
	"github.com/UniquesKernel/anvil/pkg/errs"
)

// Scratch is a linear bump allocator over a single eagerly committed
// backing-store reservation. It never returns individual allocations to the
// caller; the whole region is reclaimed at once with Reset or Destroy.
type Scratch struct {
	base      uintptr
	capacity  uintptr
	allocated uintptr
}

// CreateScratch reserves capacity bytes, aligned to alignment, and returns a
// ready-to-use Scratch allocator.
func CreateScratch(capacity, alignment uintptr) (*Scratch, error) {
	errs.Invariant("capacity > 0", capacity > 0, errs.InvZeroSize, "capacity=%d", capacity)
	errs.Invariant("alignment power of two", bitutil.IsPowerOfTwo(alignment), errs.InvBadAlignment,
		"alignment=%d", alignment)
	errs.Invariant("alignment in range", alignment >= MinAlignment && alignment <= MaxAlignment, errs.InvBadAlignment,
		"alignment=%d", alignment)

	base, err := memmap.ReserveEager(capacity, alignment)
	if err != nil {
		return nil, err
	}
	return &Scratch{base: base, capacity: capacity}, nil
}

// DestroyScratch releases s's backing memory and nils *s. If s has been
// turned into a transfer envelope, the absorbing allocator now owns the
// memory and DestroyScratch is a no-op.
func DestroyScratch(s **Scratch) error {
	errs.Invariant("handle not nil", s != nil, errs.InvNullPointer, "")
	errs.Invariant("*handle not nil", *s != nil, errs.InvNullPointer, "")

	if isEnvelope((*s).base) {
		*s = nil
		return nil
	}

	if err := memmap.Release((*s).base); err != nil {
		return err
	}
	*s = nil
	return nil
}

// Alloc bump-allocates size bytes aligned to alignment. It returns NullPtr
// on soft out-of-memory rather than aborting; callers decide how to react.
func (s *Scratch) Alloc(size, alignment uintptr) Ptr {
	errs.Invariant("scratch not nil", s != nil, errs.InvNullPointer, "")
	errs.Invariant("size > 0", size > 0, errs.InvZeroSize, "size=%d", size)
	errs.Invariant("alignment power of two", bitutil.IsPowerOfTwo(alignment), errs.InvBadAlignment,
		"alignment=%d", alignment)
	errs.Invariant("alignment in range", alignment >= MinAlignment && alignment <= MaxAlignment, errs.InvBadAlignment,
		"alignment=%d", alignment)

	current := s.base + s.allocated
	aligned := bitutil.AlignUp(current, alignment)
	offset := aligned - current

	total, ok := bitutil.AddOverflowSafe(size, offset)
	if !ok || total > s.capacity-s.allocated {
		return NullPtr
	}

	s.allocated += total
	return Ptr(aligned)
}

// Reset zeroes every byte handed out since the last Reset and rewinds the
// bump cursor to the start of the region.
func (s *Scratch) Reset() error {
	errs.Invariant("scratch not nil", s != nil, errs.InvNullPointer, "")

	if s.allocated > 0 {
		clear(unsafe.Slice((*byte)(unsafe.Pointer(s.base)), s.allocated)) //nolint:govet
	}
	s.allocated = 0
	return nil
}

// Copy allocates len(src) bytes and copies src into them, leaving src
// untouched.
func (s *Scratch) Copy(src []byte) Ptr {
	errs.Invariant("scratch not nil", s != nil, errs.InvNullPointer, "")
	errs.Invariant("src not empty", len(src) > 0, errs.InvZeroSize, "len(src)=%d", len(src))

	dest := s.Alloc(uintptr(len(src)), unsafe.Alignof(uintptr(0)))
	if dest.IsNull() {
		return NullPtr
	}
	copy(dest.Bytes(len(src)), src)
	errs.Invariant("copy matches source", bytes.Equal(dest.Bytes(len(src)), src), errs.InvInvalidState, "")
	return dest
}

// Move allocates len(*src) bytes, copies *src into them, then invokes
// freeFn (when non-nil) and clears *src. freeFn exists for source buffers
// owned outside the Go heap; ordinary Go slices need no explicit release.
func (s *Scratch) Move(src *[]byte, freeFn func()) Ptr {
	errs.Invariant("scratch not nil", s != nil, errs.InvNullPointer, "")
	errs.Invariant("src not nil", src != nil, errs.InvNullPointer, "")
	errs.Invariant("*src not empty", len(*src) > 0, errs.InvZeroSize, "len(*src)=%d", len(*src))

	dest := s.Alloc(uintptr(len(*src)), unsafe.Alignof(uintptr(0)))
	if dest.IsNull() {
		return NullPtr
	}
	copy(dest.Bytes(len(*src)), *src)
	errs.Invariant("copy matches source", bytes.Equal(dest.Bytes(len(*src)), *src), errs.InvInvalidState, "")

	if freeFn != nil {
		freeFn()
	}
	*src = nil
	return dest
}

// Capacity returns the total number of bytes the allocator can hand out.
func (s *Scratch) Capacity() uintptr { return s.capacity }

// Allocated returns the number of bytes currently handed out.
func (s *Scratch) Allocated() uintptr { return s.allocated }

func isEnvelope(base uintptr) bool {
	return *(*uint64)(unsafe.Pointer(base)) == TransferMagic //nolint:govet
}
