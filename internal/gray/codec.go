package gray

import "math/bits"

// DefaultWidth is the width used when none is configured.
const DefaultWidth = 8

// Codec converts N-bit values between binary and Gray code.
//
// The width is fixed at construction. A Codec holds no other state and is
// safe for concurrent use.
type Codec[T Unsigned] struct {
	width int
	max   T
}

// New creates a codec for width-bit values stored in T.
// Returns an INVALID_WIDTH CodecError if width is not in [1, bit size of T].
func New[T Unsigned](width int) (*Codec[T], error) {
	size := bitSize[T]()
	if width < 1 || width > size {
		return nil, NewWidthError(width, size)
	}

	limit := ^T(0)
	if width < size {
		limit = T(1)<<width - 1
	}
	return &Codec[T]{width: width, max: limit}, nil
}

// MustNew is like New but panics on an invalid width.
// Intended for package-level codecs with constant widths.
func MustNew[T Unsigned](width int) *Codec[T] {
	c, err := New[T](width)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the 8-bit codec.
func Default() *Codec[uint8] {
	return MustNew[uint8](DefaultWidth)
}

// Width returns the number of bits the codec operates on.
func (c *Codec[T]) Width() int {
	return c.width
}

// Max returns the largest value in the codec's domain, 2^N-1.
func (c *Codec[T]) Max() T {
	return c.max
}

// Check returns an OUT_OF_RANGE CodecError if v has bits set above N-1.
func (c *Codec[T]) Check(v T) error {
	if v&^c.max != 0 {
		return NewRangeError(uint64(v), c.width)
	}
	return nil
}

// Encode converts binary value a to Gray code.
func (c *Codec[T]) Encode(a T) (T, error) {
	if err := c.Check(a); err != nil {
		return 0, err
	}
	return BinaryToGray(a), nil
}

// Decode converts Gray code g back to binary.
func (c *Codec[T]) Decode(g T) (T, error) {
	if err := c.Check(g); err != nil {
		return 0, err
	}
	return grayToBinaryN(g, c.width), nil
}

// Next returns the Gray code that follows g. The sequence is cyclic: the
// code after the last one (2^(N-1)) is 0.
func (c *Codec[T]) Next(g T) (T, error) {
	if err := c.Check(g); err != nil {
		return 0, err
	}
	a := grayToBinaryN(g, c.width)
	return BinaryToGray((a + 1) & c.max), nil
}

// ChangedBit returns the position of the single bit that flips between the
// encodings of a and a+1 (mod 2^N).
func (c *Codec[T]) ChangedBit(a T) (int, error) {
	if err := c.Check(a); err != nil {
		return 0, err
	}
	diff := BinaryToGray(a) ^ BinaryToGray((a+1)&c.max)
	return bits.Len64(uint64(diff)) - 1, nil
}
