package arena

import (
	"unsafe"

	"github.com/UniquesKernel/anvil/pkg/errs"
)

// allocator is satisfied by every region handle whose first bytes can be
// repurposed as a transfer envelope: Scratch and Stack. Pool has no single
// contiguous payload region and does not participate in transfer.
type allocator interface {
	*Scratch | *Stack
	regionBase() uintptr
}

func (s *Scratch) regionBase() uintptr { return s.base }
func (s *Stack) regionBase() uintptr   { return s.base }

const envelopeHeaderWords = 3

// Transfer overwrites producer's own first three machine words with
// {TransferMagic, len(payload), alignment} followed by the payload bytes,
// turning producer into a one-shot envelope. Destroying producer after this
// call is a no-op; the memory now belongs to whatever consumer later
// Absorbs it.
func Transfer[T allocator](producer T, payload []byte, alignment uintptr) T {
	errs.Invariant("producer not nil", producer != nil, errs.InvNullPointer, "")
	errs.Invariant("payload not empty", len(payload) > 0, errs.InvZeroSize, "len(payload)=%d", len(payload))

	base := producer.regionBase()
	words := unsafe.Slice((*uint64)(unsafe.Pointer(base)), envelopeHeaderWords) //nolint:govet
	words[0] = TransferMagic
	words[1] = uint64(len(payload))
	words[2] = uint64(alignment)

	payloadDest := unsafe.Slice((*byte)(unsafe.Pointer(base+envelopeHeaderWords*8)), len(payload)) //nolint:govet
	copy(payloadDest, payload)

	return producer
}

// Absorb reads an envelope previously produced by Transfer, allocates space
// for its payload from consumer, copies the payload in, and releases the
// envelope's backing memory via destroyFn. It returns NullPtr without
// touching consumer if envelope does not carry the transfer magic.
func Absorb[T allocator, S allocator](consumer T, envelope S, destroyFn func() error) (Ptr, error) {
	errs.Invariant("consumer not nil", consumer != nil, errs.InvNullPointer, "")
	errs.Invariant("envelope not nil", envelope != nil, errs.InvNullPointer, "")
	errs.Invariant("destroyFn not nil", destroyFn != nil, errs.InvNullPointer, "")

	base := envelope.regionBase()
	words := unsafe.Slice((*uint64)(unsafe.Pointer(base)), envelopeHeaderWords) //nolint:govet
	if words[0] != TransferMagic {
		return NullPtr, nil
	}

	dataSize := uintptr(words[1])
	alignment := uintptr(words[2])

	dest := allocFrom(consumer, dataSize, alignment)
	if dest.IsNull() {
		words[0] = 0
		return NullPtr, destroyFn()
	}

	words[0] = 0
	payloadSrc := unsafe.Slice((*byte)(unsafe.Pointer(base+envelopeHeaderWords*8)), dataSize) //nolint:govet
	copy(dest.Bytes(int(dataSize)), payloadSrc)

	if err := destroyFn(); err != nil {
		return NullPtr, err
	}
	return dest, nil
}

func allocFrom[T allocator](consumer T, size, alignment uintptr) Ptr {
	switch a := any(consumer).(type) {
	case *Scratch:
		return a.Alloc(size, alignment)
	case *Stack:
		return a.Alloc(size, alignment)
	default:
		return NullPtr
	}
}
