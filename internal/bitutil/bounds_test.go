package bitutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddOverflowSafe(t *testing.T) {
	sum, ok := AddOverflowSafe(3, 4)
	assert.True(t, ok)
	assert.Equal(t, uintptr(7), sum)

	_, ok = AddOverflowSafe(uintptr(math.MaxUint64), 1)
	assert.False(t, ok)
}

func TestMulOverflowSafe(t *testing.T) {
	product, ok := MulOverflowSafe(6, 7)
	assert.True(t, ok)
	assert.Equal(t, uintptr(42), product)

	_, ok = MulOverflowSafe(0, 5)
	assert.True(t, ok)

	_, ok = MulOverflowSafe(uintptr(math.MaxUint64), 2)
	assert.False(t, ok)
}

func TestIsPowerOfTwo(t *testing.T) {
	assert.True(t, IsPowerOfTwo(1))
	assert.True(t, IsPowerOfTwo(2))
	assert.True(t, IsPowerOfTwo(2048))
	assert.False(t, IsPowerOfTwo(0))
	assert.False(t, IsPowerOfTwo(3))
	assert.False(t, IsPowerOfTwo(1023))
}

func TestAlignUp(t *testing.T) {
	assert.Equal(t, uintptr(0), AlignUp(0, 16))
	assert.Equal(t, uintptr(16), AlignUp(1, 16))
	assert.Equal(t, uintptr(16), AlignUp(16, 16))
	assert.Equal(t, uintptr(32), AlignUp(17, 16))
}

func TestPaddingFor(t *testing.T) {
	assert.Equal(t, uintptr(0), PaddingFor(16, 16))
	assert.Equal(t, uintptr(15), PaddingFor(1, 16))
}

func TestRoundUpPage(t *testing.T) {
	const page = 4096
	assert.Equal(t, uintptr(page), RoundUpPage(1, page))
	assert.Equal(t, uintptr(page), RoundUpPage(page, page))
	assert.Equal(t, uintptr(2*page), RoundUpPage(page+1, page))
}
