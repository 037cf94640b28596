// Package arena implements the scratch, stack, and pool region allocators:
// single-threaded, bulk-deallocating allocation strategies built directly
// on the OS virtual-memory primitives in internal/memmap.
package arena

import (
	"unsafe"

	"github.com/UniquesKernel/anvil/internal/memmap"
)

// Alignment and depth limits shared by every allocator kind.
const (
	MinAlignment  uintptr = 1
	MaxAlignment  uintptr = 2048
	MaxStackDepth int     = 64
)

// TransferMagic marks the first word of an allocator that has been turned
// into a transfer envelope. The envelope header is written as uint64 words
// on every target, so 32-bit targets carry this same 64-bit value; there is
// no separate 32-bit magic.
const TransferMagic uint64 = 0xFFFFFFFFDEADC0DE

// Strategy selects how a stack allocator's backing memory is provisioned.
type Strategy int

const (
	// StrategyEager commits the entire reservation up front.
	StrategyEager Strategy = iota
	// StrategyLazy commits pages on demand as allocations require them.
	StrategyLazy
)

// Ptr is a raw address into an allocator's region. The zero value, NullPtr,
// signals allocation failure or an empty transfer envelope.
type Ptr uintptr

// NullPtr is the zero Ptr.
const NullPtr Ptr = 0

// IsNull reports whether p is NullPtr.
func (p Ptr) IsNull() bool {
	return p == NullPtr
}

// Bytes views the n bytes starting at p as a slice. It is the only place in
// this package that turns a Ptr into a Go slice; callers are responsible
// for keeping n within the bounds of the allocation p came from.
func (p Ptr) Bytes(n int) []byte {
	if p.IsNull() || n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(uintptr(p))), n) //nolint:govet
}

// PageSize returns the host OS page size, the granularity at which a lazy
// allocator's backing region grows.
func PageSize() uintptr {
	return memmap.HostPageSize()
}
