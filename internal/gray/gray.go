package gray

import "math/bits"

// Unsigned is the set of backing types a Gray code can be stored in.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// BinaryToGray returns the reflected binary encoding of a.
//
// The shift is logical, so the most significant bit of the result always
// equals the most significant bit of a.
func BinaryToGray[T Unsigned](a T) T {
	return a ^ (a >> 1)
}

// GrayToBinary returns the binary value whose Gray encoding is g.
//
// Bit i of the result is the parity of bits i and above of g. Values that
// keep every bit above N-1 clear decode identically for any width N, so the
// reduction runs over the full size of T.
func GrayToBinary[T Unsigned](g T) T {
	return grayToBinaryN(g, bitSize[T]())
}

// grayToBinaryN decodes the low width bits of g with a running XOR from the
// most significant bit downward.
func grayToBinaryN[T Unsigned](g T, width int) T {
	var a, parity T
	for i := width - 1; i >= 0; i-- {
		parity ^= (g >> i) & 1
		a |= parity << i
	}
	return a
}

// bitSize reports the number of bits in T.
func bitSize[T Unsigned]() int {
	return bits.OnesCount64(uint64(^T(0)))
}
