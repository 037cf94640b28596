package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolAcquireReleaseRoundTrip(t *testing.T) {
	p, err := CreatePool(32, 4, 8)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, DestroyPool(&p)) })

	assert.Equal(t, uintptr(4), p.Size())

	a := p.Acquire()
	require.False(t, a.IsNull())
	assert.Equal(t, uintptr(3), p.Size())

	require.NoError(t, p.Release(a))
	assert.Equal(t, uintptr(4), p.Size())
}

func TestPoolExhaustion(t *testing.T) {
	p, err := CreatePool(16, 2, 8)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, DestroyPool(&p)) })

	a1 := p.Acquire()
	a2 := p.Acquire()
	require.False(t, a1.IsNull())
	require.False(t, a2.IsNull())

	a3 := p.Acquire()
	assert.True(t, a3.IsNull())
}

func TestPoolAllSlotsDistinct(t *testing.T) {
	p, err := CreatePool(16, 8, 8)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, DestroyPool(&p)) })

	seen := make(map[Ptr]bool)
	for i := 0; i < 8; i++ {
		a := p.Acquire()
		require.False(t, a.IsNull())
		assert.False(t, seen[a])
		seen[a] = true
	}
}

func TestPoolReset(t *testing.T) {
	p, err := CreatePool(16, 4, 8)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, DestroyPool(&p)) })

	p.Acquire()
	p.Acquire()
	require.NoError(t, p.Reset())
	assert.Equal(t, uintptr(4), p.Size())
}
