package arena

import (
	"github.com/UniquesKernel/anvil/internal/bitutil"
	"github.com/UniquesKernel/anvil/internal/memmap"
	"github.com/UniquesKernel/anvil/pkg/errs"
)

// Pool hands out fixed-size, fixed-count objects with O(1) acquire and
// release. Free slot addresses live in a ring buffer sized objectCount+1 so
// a single head/tail pair can distinguish empty from full without an extra
// flag; an in-use bitmap catches double-release in O(1).
type Pool struct {
	base        uintptr
	objectSize  uintptr
	objectCount uintptr
	ring        []uintptr
	head        uintptr
	tail        uintptr
	size        uintptr
	inUse       []bool
}

// CreatePool reserves a contiguous region for objectCount objects of
// objectSize bytes each, aligned to alignment, and fills the free ring with
// every slot address.
func CreatePool(objectSize, objectCount, alignment uintptr) (*Pool, error) {
	errs.Invariant("objectSize > 0", objectSize > 0, errs.InvZeroSize, "objectSize=%d", objectSize)
	errs.Invariant("objectCount > 0", objectCount > 0, errs.InvZeroSize, "objectCount=%d", objectCount)
	errs.Invariant("alignment power of two", bitutil.IsPowerOfTwo(alignment), errs.InvBadAlignment,
		"alignment=%d", alignment)
	errs.Invariant("alignment in range", alignment >= MinAlignment && alignment <= MaxAlignment, errs.InvBadAlignment,
		"alignment=%d", alignment)

	total, ok := bitutil.MulOverflowSafe(objectSize, objectCount)
	errs.Invariant("region size does not overflow", ok, errs.InvOutOfRange,
		"objectSize=%d objectCount=%d", objectSize, objectCount)

	base, err := memmap.ReserveEager(total, alignment)
	if err != nil {
		return nil, err
	}

	p := &Pool{
		base:        base,
		objectSize:  objectSize,
		objectCount: objectCount,
		ring:        make([]uintptr, objectCount+1),
		inUse:       make([]bool, objectCount),
	}
	p.fill()
	return p, nil
}

// fill rewrites the ring buffer with every slot address in index order and
// marks the pool entirely free.
func (p *Pool) fill() {
	for i := uintptr(0); i < p.objectCount; i++ {
		p.ring[i] = p.base + p.objectSize*i
		p.inUse[i] = false
	}
	p.head = p.objectCount % uintptr(len(p.ring))
	p.tail = 0
	p.size = p.objectCount
}

// DestroyPool releases p's backing memory and nils *p.
func DestroyPool(p **Pool) error {
	errs.Invariant("handle not nil", p != nil, errs.InvNullPointer, "")
	errs.Invariant("*handle not nil", *p != nil, errs.InvNullPointer, "")

	if err := memmap.Release((*p).base); err != nil {
		return err
	}
	*p = nil
	return nil
}

// Acquire pops a free slot from the ring and returns its address, or
// NullPtr when the pool is exhausted.
func (p *Pool) Acquire() Ptr {
	errs.Invariant("pool not nil", p != nil, errs.InvNullPointer, "")

	if p.size == 0 {
		return NullPtr
	}
	addr := p.ring[p.tail]
	p.tail = (p.tail + 1) % uintptr(len(p.ring))
	p.size--
	p.inUse[p.slotIndex(addr)] = true
	return Ptr(addr)
}

// Release returns ptr to the pool's free ring. Releasing an address outside
// the pool's region, misaligned to a slot boundary, or already free is a
// programmer error and aborts the process.
func (p *Pool) Release(ptr Ptr) error {
	errs.Invariant("pool not nil", p != nil, errs.InvNullPointer, "")
	errs.Invariant("ptr not null", !ptr.IsNull(), errs.InvNullPointer, "")

	addr := uintptr(ptr)
	end := p.base + p.objectSize*p.objectCount
	errs.Invariant("ptr within pool region", addr >= p.base && addr < end, errs.InvOutOfRange,
		"ptr=0x%x region=[0x%x,0x%x)", addr, p.base, end)
	errs.Invariant("ptr slot-aligned", (addr-p.base)%p.objectSize == 0, errs.InvBadAlignment, "ptr=0x%x", addr)

	idx := p.slotIndex(addr)
	errs.Invariant("slot currently in use", p.inUse[idx], errs.InvInvalidState, "double release at 0x%x", addr)

	p.inUse[idx] = false
	p.ring[p.head] = addr
	p.head = (p.head + 1) % uintptr(len(p.ring))
	p.size++
	return nil
}

// Reset returns every outstanding slot to the pool, regardless of whether
// it was in use.
func (p *Pool) Reset() error {
	errs.Invariant("pool not nil", p != nil, errs.InvNullPointer, "")

	p.fill()
	return nil
}

// Size returns the current number of free slots.
func (p *Pool) Size() uintptr { return p.size }

// ObjectCount returns the fixed total number of slots the pool manages.
func (p *Pool) ObjectCount() uintptr { return p.objectCount }

func (p *Pool) slotIndex(addr uintptr) uintptr {
	return (addr - p.base) / p.objectSize
}
