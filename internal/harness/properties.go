package harness

import (
	"fmt"
	"math/bits"
	"math/rand/v2"

	"github.com/roach88/graycode/internal/gray"
)

// Property names accepted in scenarios and by CheckProperty.
const (
	PropRoundTrip       = "round_trip"
	PropBijective       = "bijective"
	PropSingleBitChange = "single_bit_change"
	PropTopBit          = "top_bit"
	PropZeroFixedPoint  = "zero_fixed_point"
)

// AllProperties lists every property in the order reports show them.
var AllProperties = []string{
	PropRoundTrip,
	PropBijective,
	PropSingleBitChange,
	PropTopBit,
	PropZeroFixedPoint,
}

// ExhaustiveLimit is the widest codec whose domain is enumerated in full.
const ExhaustiveLimit = 16

// DefaultSamples is the number of random values drawn above ExhaustiveLimit.
const DefaultSamples = 4096

// DefaultSeed seeds the sampler when callers have no preference.
const DefaultSeed uint64 = 0x67726179 // "gray"

// PropertyResult reports one property check.
type PropertyResult struct {
	Name       string `json:"name"`
	Pass       bool   `json:"pass"`
	Checked    uint64 `json:"checked"`
	Exhaustive bool   `json:"exhaustive"`
	Failure    string `json:"failure,omitempty"`
}

func isKnownProperty(name string) bool {
	for _, p := range AllProperties {
		if p == name {
			return true
		}
	}
	return false
}

// CheckAll runs every property against codec.
func CheckAll(codec *gray.Codec[uint64], seed uint64) []PropertyResult {
	results := make([]PropertyResult, 0, len(AllProperties))
	for _, name := range AllProperties {
		r, _ := CheckProperty(codec, name, seed)
		results = append(results, r)
	}
	return results
}

// CheckProperty runs the named property. The check stops at the first
// counterexample, which is described in Failure.
func CheckProperty(codec *gray.Codec[uint64], name string, seed uint64) (PropertyResult, error) {
	var check func(a uint64) string
	switch name {
	case PropRoundTrip:
		check = func(a uint64) string {
			g, _ := codec.Encode(a)
			if back, _ := codec.Decode(g); back != a {
				return fmt.Sprintf("decode(encode(%d)) = %d", a, back)
			}
			return ""
		}
	case PropBijective:
		seen := make(map[uint64]uint64)
		check = func(a uint64) string {
			g, _ := codec.Encode(a)
			if g > codec.Max() {
				return fmt.Sprintf("encode(%d) = %d is outside the domain", a, g)
			}
			if prev, dup := seen[g]; dup && prev != a {
				return fmt.Sprintf("encode(%d) and encode(%d) are both %d", prev, a, g)
			}
			seen[g] = a
			return ""
		}
	case PropSingleBitChange:
		check = func(a uint64) string {
			if a == codec.Max() {
				return ""
			}
			g1, _ := codec.Encode(a)
			g2, _ := codec.Encode(a + 1)
			if n := bits.OnesCount64(g1 ^ g2); n != 1 {
				return fmt.Sprintf("encode(%d) and encode(%d) differ in %d bits", a, a+1, n)
			}
			return ""
		}
	case PropTopBit:
		top := uint(codec.Width() - 1)
		check = func(a uint64) string {
			g, _ := codec.Encode(a)
			if (g>>top)&1 != (a>>top)&1 {
				return fmt.Sprintf("encode(%d) = %d changes bit %d", a, g, top)
			}
			return ""
		}
	case PropZeroFixedPoint:
		result := PropertyResult{Name: name, Pass: true, Checked: 1, Exhaustive: true}
		g, _ := codec.Encode(0)
		a, _ := codec.Decode(0)
		if g != 0 || a != 0 {
			result.Pass = false
			result.Failure = fmt.Sprintf("encode(0) = %d, decode(0) = %d", g, a)
		}
		return result, nil
	default:
		return PropertyResult{Name: name}, fmt.Errorf("unknown property %q", name)
	}

	result := PropertyResult{Name: name, Pass: true}
	result.Checked, result.Exhaustive = forEachValue(codec, seed, func(a uint64) bool {
		if failure := check(a); failure != "" {
			result.Pass = false
			result.Failure = failure
			return false
		}
		return true
	})
	return result, nil
}

// forEachValue calls fn for every value in the codec's domain when the width
// is at most ExhaustiveLimit, otherwise for the boundary values followed by
// DefaultSamples seeded random values. Iteration stops when fn returns false.
func forEachValue(codec *gray.Codec[uint64], seed uint64, fn func(a uint64) bool) (checked uint64, exhaustive bool) {
	limit := codec.Max()

	if codec.Width() <= ExhaustiveLimit {
		for a := uint64(0); ; a++ {
			checked++
			if !fn(a) || a == limit {
				return checked, true
			}
		}
	}

	for _, a := range []uint64{0, 1, limit / 2, limit/2 + 1, limit - 1, limit} {
		checked++
		if !fn(a) {
			return checked, false
		}
	}

	rng := rand.New(rand.NewPCG(seed, uint64(codec.Width())))
	for i := 0; i < DefaultSamples; i++ {
		checked++
		if !fn(rng.Uint64() & limit) {
			break
		}
	}
	return checked, false
}
