package arena

import (
	"github.com/UniquesKernel/anvil/internal/bitutil"
	"github.com/UniquesKernel/anvil/internal/memmap"
	"github.com/UniquesKernel/anvil/pkg/errs"
)

// Stack is a linear bump allocator with a bounded checkpoint stack: Record
// saves the current cursor, Unwind restores it, invalidating everything
// allocated since. Under StrategyLazy the backing memory is committed page
// by page as allocations demand it.
type Stack struct {
	base      uintptr
	capacity  uintptr
	allocated uintptr
	strategy  Strategy
	depth     int
	marks     [MaxStackDepth]uintptr
}

// CreateStack reserves capacity bytes, aligned to alignment, provisioned
// according to strategy.
func CreateStack(capacity, alignment uintptr, strategy Strategy) (*Stack, error) {
	errs.Invariant("capacity > 0", capacity > 0, errs.InvZeroSize, "capacity=%d", capacity)
	errs.Invariant("alignment power of two", bitutil.IsPowerOfTwo(alignment), errs.InvBadAlignment,
		"alignment=%d", alignment)
	errs.Invariant("alignment in range", alignment >= MinAlignment && alignment <= MaxAlignment, errs.InvBadAlignment,
		"alignment=%d", alignment)
	errs.Invariant("strategy valid", strategy == StrategyEager || strategy == StrategyLazy, errs.InvPrecondition,
		"strategy=%d", strategy)

	var base uintptr
	var err error
	if strategy == StrategyEager {
		base, err = memmap.ReserveEager(capacity, alignment)
	} else {
		base, err = memmap.ReserveLazy(capacity, alignment)
	}
	if err != nil {
		return nil, err
	}

	return &Stack{base: base, capacity: capacity, strategy: strategy}, nil
}

// DestroyStack releases s's backing memory and nils *s.
func DestroyStack(s **Stack) error {
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

// Alloc bump-allocates size bytes aligned to alignment. Under StrategyLazy
// every call first commits this call's padding plus size, rounded up to
// whole pages, beyond the region already committed, whether or not those
// bytes were already covered; it returns NullPtr if that commit fails.
// Returns NullPtr on soft out-of-memory.
func (s *Stack) Alloc(size, alignment uintptr) Ptr {
	errs.Invariant("stack not nil", s != nil, errs.InvNullPointer, "")
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

	if s.strategy == StrategyLazy {
		if err := memmap.Commit(s.base, total); err != nil {
			return NullPtr
		}
	}

	s.allocated += total
	return Ptr(aligned)
}

// Record pushes the current allocation cursor onto the checkpoint stack.
// It returns ErrStackOverflow, not an invariant abort, when the stack is
// already at MaxStackDepth-1: overflow here is a recoverable condition the
// caller can react to.
func (s *Stack) Record() error {
	errs.Invariant("stack not nil", s != nil, errs.InvNullPointer, "")

	if s.depth == MaxStackDepth-1 {
		return errs.ErrStackOverflow
	}
	s.marks[s.depth] = s.allocated
	s.depth++
	return nil
}

// Unwind pops the checkpoint stack and restores the cursor to that mark,
// invalidating every allocation issued since the matching Record. Unwinding
// an empty stack is a programmer error and aborts the process.
func (s *Stack) Unwind() error {
	errs.Invariant("stack not nil", s != nil, errs.InvNullPointer, "")
	errs.Invariant("checkpoint stack not empty", s.depth > 0, errs.InvInvalidState, "depth=%d", s.depth)

	s.depth--
	s.allocated = s.marks[s.depth]
	return nil
}

// Reset rewinds the allocation cursor and checkpoint stack to empty. Unlike
// Scratch.Reset, this does not zero the region: the reference stack
// allocator disables that memset, and this port preserves the asymmetry.
func (s *Stack) Reset() error {
	errs.Invariant("stack not nil", s != nil, errs.InvNullPointer, "")

	s.allocated = 0
	s.depth = 0
	return nil
}

// Capacity returns the total number of bytes the allocator can hand out.
func (s *Stack) Capacity() uintptr { return s.capacity }

// Allocated returns the number of bytes currently handed out.
func (s *Stack) Allocated() uintptr { return s.allocated }

// Depth returns the current checkpoint stack depth.
func (s *Stack) Depth() int { return s.depth }
