// Package bindings provides a Go-idiomatic, opaque-handle wrapper around
// pkg/arena for host runtimes that cannot deal in raw Go pointers directly
// (a scripting layer, an FFI boundary, or a test harness driving the
// allocators from outside this module).
package bindings

import (
	"fmt"

	"github.com/UniquesKernel/anvil/pkg/arena"
	"github.com/UniquesKernel/anvil/pkg/errs"
)

// ScratchHandle is an opaque reference to a scratch allocator.
type ScratchHandle struct {
	inner *arena.Scratch
}

// NewScratch creates a scratch allocator of capacity bytes aligned to
// alignment.
func NewScratch(capacity, alignment uintptr) (ScratchHandle, error) {
	s, err := arena.CreateScratch(capacity, alignment)
	if err != nil {
		return ScratchHandle{}, fmt.Errorf("bindings: create scratch: %w", err)
	}
	return ScratchHandle{inner: s}, nil
}

// Close releases h's backing memory.
func (h *ScratchHandle) Close() error {
	if h.inner == nil {
		return nil
	}
	return arena.DestroyScratch(&h.inner)
}

// Alloc allocates size bytes aligned to alignment and returns its address as
// a plain uintptr, since a host runtime has no notion of arena.Ptr.
func (h ScratchHandle) Alloc(size, alignment uintptr) uintptr {
	return uintptr(h.inner.Alloc(size, alignment))
}

// Reset bulk-frees every allocation h has handed out.
func (h ScratchHandle) Reset() error {
	return h.inner.Reset()
}

// StackHandle is an opaque reference to a stack allocator.
type StackHandle struct {
	inner *arena.Stack
}

// NewStack creates a stack allocator of capacity bytes aligned to alignment,
// eager when lazy is false.
func NewStack(capacity, alignment uintptr, lazy bool) (StackHandle, error) {
	strategy := Eager
	if lazy {
		strategy = Lazy
	}
	return NewStackWithStrategy(capacity, alignment, strategy)
}

// NewStackWithStrategy creates a stack allocator using strategy directly,
// which must be Eager or Lazy, for a host runtime that already imports
// these mirrored constants and has no use for the lazy bool form.
func NewStackWithStrategy(capacity, alignment uintptr, strategy arena.Strategy) (StackHandle, error) {
	s, err := arena.CreateStack(capacity, alignment, strategy)
	if err != nil {
		return StackHandle{}, fmt.Errorf("bindings: create stack: %w", err)
	}
	return StackHandle{inner: s}, nil
}

// Close releases h's backing memory.
func (h *StackHandle) Close() error {
	if h.inner == nil {
		return nil
	}
	return arena.DestroyStack(&h.inner)
}

// Alloc allocates size bytes aligned to alignment.
func (h StackHandle) Alloc(size, alignment uintptr) uintptr {
	return uintptr(h.inner.Alloc(size, alignment))
}

// Record pushes a checkpoint.
func (h StackHandle) Record() error {
	return h.inner.Record()
}

// Unwind pops the most recent checkpoint.
func (h StackHandle) Unwind() error {
	return h.inner.Unwind()
}

// Reset clears the stack back to empty.
func (h StackHandle) Reset() error {
	return h.inner.Reset()
}

// PoolHandle is an opaque reference to a pool allocator.
type PoolHandle struct {
	inner *arena.Pool
}

// NewPool creates a pool of objectCount slots of objectSize bytes each,
// aligned to alignment.
func NewPool(objectSize, objectCount, alignment uintptr) (PoolHandle, error) {
	p, err := arena.CreatePool(objectSize, objectCount, alignment)
	if err != nil {
		return PoolHandle{}, fmt.Errorf("bindings: create pool: %w", err)
	}
	return PoolHandle{inner: p}, nil
}

// Close releases h's backing memory.
func (h *PoolHandle) Close() error {
	if h.inner == nil {
		return nil
	}
	return arena.DestroyPool(&h.inner)
}

// Acquire hands out a slot address, or 0 when the pool is exhausted.
func (h PoolHandle) Acquire() uintptr {
	return uintptr(h.inner.Acquire())
}

// Release returns a previously acquired slot address to the pool.
func (h PoolHandle) Release(addr uintptr) error {
	return h.inner.Release(arena.Ptr(addr))
}

// ReadBytes copies length bytes starting at addr out of the process's
// address space. It is intended for a host runtime inspecting allocator
// contents across the binding boundary; addr must fall inside memory this
// module itself allocated.
func ReadBytes(addr uintptr, length int) []byte {
	if addr == 0 || length == 0 {
		return nil
	}
	src := arena.Ptr(addr).Bytes(length)
	out := make([]byte, length)
	copy(out, src)
	return out
}

// WriteBytes copies data into the len(data) bytes starting at addr.
func WriteBytes(addr uintptr, data []byte) {
	if addr == 0 || len(data) == 0 {
		return
	}
	dst := arena.Ptr(addr).Bytes(len(data))
	copy(dst, data)
}

// Escape exposes a raw address as a plain integer for observational tests
// run from a host runtime that cannot hold a Go pointer type — e.g.
// asserting alignment or address arithmetic from outside this module.
func Escape(addr uintptr) uintptr {
	return addr
}

// Constants mirrored for a host runtime that links against this module
// without importing pkg/arena or pkg/errs directly. Eager and Lazy carry
// arena.Strategy's own values, so NewStack's lazy bool can be derived as
// strategy == Lazy without the caller importing arena.Strategy itself.
const (
	ErrSuccess     = uint16(errs.Success)
	ErrOutOfMemory = uint16(errs.ErrOutOfMemory)

	Eager = arena.StrategyEager
	Lazy  = arena.StrategyLazy

	MinAlignment  = arena.MinAlignment
	MaxAlignment  = arena.MaxAlignment
	MaxStackDepth = arena.MaxStackDepth
)
