// Package gray converts fixed-width unsigned integers between standard binary
// and reflected binary (Gray) code.
//
// The package has two layers:
//   - BinaryToGray and GrayToBinary are pure functions over any unsigned
//     integer type. They assume the caller keeps values inside the width.
//   - Codec binds a width N (1..bit size of T) and validates every value
//     against [0, 2^N-1] before transforming it.
//
// Bit 0 is the least significant bit. For every width N and every value A in
// range:
//
//	codec.Decode(codec.Encode(A)) == A
//
// Codecs hold only their width and are safe for concurrent use without
// synchronization.
//
// # Usage
//
//	codec, err := gray.New[uint16](12)
//	if err != nil {
//	    return err
//	}
//	g, err := codec.Encode(0x7ff) // 0x400
package gray
