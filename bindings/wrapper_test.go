package bindings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScratchHandleRoundTrip(t *testing.T) {
	h, err := NewScratch(256, 8)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, h.Close()) })

	addr := h.Alloc(32, 8)
	require.NotZero(t, addr)

	WriteBytes(addr, []byte("hello"))
	assert.Equal(t, []byte("hello"), ReadBytes(addr, 5))

	require.NoError(t, h.Reset())
}

func TestStackHandleCheckpoints(t *testing.T) {
	h, err := NewStack(256, 8, false)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, h.Close()) })

	require.NoError(t, h.Record())
	addr := h.Alloc(16, 8)
	require.NotZero(t, addr)
	require.NoError(t, h.Unwind())

	addr2 := h.Alloc(16, 8)
	assert.Equal(t, addr, addr2)
}

func TestPoolHandleAcquireRelease(t *testing.T) {
	h, err := NewPool(16, 4, 8)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, h.Close()) })

	a := h.Acquire()
	require.NotZero(t, a)
	require.NoError(t, h.Release(a))
}

func TestEscapeIsIdentity(t *testing.T) {
	assert.Equal(t, uintptr(0x1000), Escape(0x1000))
}

func TestMirroredConstants(t *testing.T) {
	assert.Equal(t, uint16(0), ErrSuccess)
	assert.NotEqual(t, ErrSuccess, ErrOutOfMemory)
	assert.NotEqual(t, Eager, Lazy)
}

func TestNewStackWithStrategyMatchesBoolForm(t *testing.T) {
	h, err := NewStackWithStrategy(256, 8, Lazy)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, h.Close()) })

	addr := h.Alloc(16, 8)
	require.NotZero(t, addr)
}
