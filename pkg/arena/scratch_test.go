package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScratchAllocAndCapacity(t *testing.T) {
	s, err := CreateScratch(1024, 16)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, DestroyScratch(&s)) })

	p1 := s.Alloc(64, 8)
	require.False(t, p1.IsNull())
	assert.Zero(t, uintptr(p1)%8)

	p2 := s.Alloc(64, 8)
	require.False(t, p2.IsNull())
	assert.Greater(t, uintptr(p2), uintptr(p1))
}

func TestScratchAllocExhaustion(t *testing.T) {
	s, err := CreateScratch(16, 8)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, DestroyScratch(&s)) })

	p := s.Alloc(32, 8)
	assert.True(t, p.IsNull())
}

func TestScratchResetZeroesAndRewinds(t *testing.T) {
	s, err := CreateScratch(64, 8)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, DestroyScratch(&s)) })

	p := s.Alloc(16, 8)
	buf := p.Bytes(16)
	for i := range buf {
		buf[i] = 0xFF
	}

	require.NoError(t, s.Reset())
	assert.Equal(t, uintptr(0), s.Allocated())

	p2 := s.Alloc(16, 8)
	assert.Equal(t, p, p2)
	for _, b := range p2.Bytes(16) {
		assert.Equal(t, byte(0), b)
	}
}

func TestScratchCopyAndMove(t *testing.T) {
	s, err := CreateScratch(256, 8)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, DestroyScratch(&s)) })

	src := []byte("hello world")
	dst := s.Copy(src)
	require.False(t, dst.IsNull())
	assert.Equal(t, src, dst.Bytes(len(src)))
	assert.Equal(t, "hello world", string(src))

	moved := []byte("moving along")
	freed := false
	dst2 := s.Move(&moved, func() { freed = true })
	require.False(t, dst2.IsNull())
	assert.Equal(t, []byte("moving along"), dst2.Bytes(len("moving along")))
	assert.True(t, freed)
	assert.Nil(t, moved)
}

func TestDestroyScratchNilsHandle(t *testing.T) {
	s, err := CreateScratch(32, 8)
	require.NoError(t, err)
	require.NoError(t, DestroyScratch(&s))
	assert.Nil(t, s)
}
