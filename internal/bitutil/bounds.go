// Package bitutil provides the small arithmetic primitives the allocators
// build on: overflow-checked size math and power-of-two alignment helpers.
package bitutil

// AddOverflowSafe adds a and b, returning ok = false when the result would
// overflow uintptr.
func AddOverflowSafe(a, b uintptr) (uintptr, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// MulOverflowSafe multiplies a and b, returning ok = false when the result
// would overflow uintptr.
func MulOverflowSafe(a, b uintptr) (uintptr, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	product := a * b
	if product/a != b {
		return 0, false
	}
	return product, true
}

// IsPowerOfTwo reports whether x is a nonzero power of two.
func IsPowerOfTwo(x uintptr) bool {
	return x != 0 && x&(x-1) == 0
}

// AlignUp rounds addr up to the next multiple of alignment. alignment must
// be a power of two.
func AlignUp(addr, alignment uintptr) uintptr {
	return (addr + alignment - 1) &^ (alignment - 1)
}

// PaddingFor returns the number of bytes needed to advance addr to the next
// multiple of alignment.
func PaddingFor(addr, alignment uintptr) uintptr {
	return AlignUp(addr, alignment) - addr
}

// RoundUpPage rounds size up to the next multiple of pageSize. pageSize must
// be a power of two.
func RoundUpPage(size, pageSize uintptr) uintptr {
	return AlignUp(size, pageSize)
}
