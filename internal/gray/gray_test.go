package gray

import (
	"math/bits"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

// parityDecode is the bit-by-bit reduction: bit i is the XOR of g[i..63].
func parityDecode(g uint64) uint64 {
	var a uint64
	for i := 0; i < 64; i++ {
		if bits.OnesCount64(g>>i)%2 == 1 {
			a |= 1 << i
		}
	}
	return a
}

func TestBinaryToGray_Width8(t *testing.T) {
	tests := []struct {
		in   uint8
		want uint8
	}{
		{0b00000000, 0b00000000},
		{0b00000001, 0b00000001},
		{0b00000010, 0b00000011},
		{0b00000111, 0b00000100},
		{0b11111111, 0b10000000},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BinaryToGray(tt.in), "BinaryToGray(%08b)", tt.in)
	}
}

func TestGrayToBinary_Width8(t *testing.T) {
	assert.Equal(t, uint8(0b00000111), GrayToBinary(uint8(0b00000100)))
	assert.Equal(t, uint8(0b11111111), GrayToBinary(uint8(0b10000000)))
	assert.Equal(t, uint8(0), GrayToBinary(uint8(0)))
}

func TestGrayToBinary_MatchesParity(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 10000; i++ {
		g := rng.Uint64()
		assert.Equal(t, parityDecode(g), GrayToBinary(g), "g=%#x", g)
	}

	for g := uint64(0); g < 1<<12; g++ {
		assert.Equal(t, parityDecode(g), GrayToBinary(g))
	}
}

func TestGrayToBinary_WidthIndependent(t *testing.T) {
	// A value that fits in 8 bits decodes the same in every backing type.
	for v := 0; v < 256; v++ {
		want := GrayToBinary(uint8(v))
		assert.Equal(t, uint16(want), GrayToBinary(uint16(v)))
		assert.Equal(t, uint32(want), GrayToBinary(uint32(v)))
		assert.Equal(t, uint64(want), GrayToBinary(uint64(v)))
		assert.Equal(t, uint(want), GrayToBinary(uint(v)))
	}
}

func TestRoundTrip_AllUint16(t *testing.T) {
	for v := 0; v <= 0xffff; v++ {
		a := uint16(v)
		if GrayToBinary(BinaryToGray(a)) != a {
			t.Fatalf("round trip failed for %#04x", a)
		}
	}
}

func TestBinaryToGray_TopBitPreserved(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 10000; i++ {
		a := rng.Uint64()
		assert.Equal(t, a>>63, BinaryToGray(a)>>63)
	}
}

func TestBinaryToGray_NamedType(t *testing.T) {
	type register uint32
	var a register = 0b1011
	assert.Equal(t, register(0b1110), BinaryToGray(a))
	assert.Equal(t, a, GrayToBinary(BinaryToGray(a)))
}

func TestBitSize(t *testing.T) {
	assert.Equal(t, 8, bitSize[uint8]())
	assert.Equal(t, 16, bitSize[uint16]())
	assert.Equal(t, 32, bitSize[uint32]())
	assert.Equal(t, 64, bitSize[uint64]())
	assert.Equal(t, bits.UintSize, bitSize[uint]())
}
