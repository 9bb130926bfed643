// Package harness runs conformance scenarios against the Gray codec.
//
// A scenario pins a width, lists conversions with their expected results,
// and names the properties every codec of that width must satisfy.
//
// # Scenario Format
//
//	name: width8_examples
//	description: "Reference conversions for the 8-bit codec"
//	width: 8
//	run_id: run-width8
//	steps:
//	  - encode: 0b00000111
//	    expect: 0b00000100
//	  - decode: 0x04
//	    expect: 7
//	  - encode: 256
//	    expect_error: OUT_OF_RANGE
//	properties: [round_trip, bijective, single_bit_change, top_bit, zero_fixed_point]
//
// Literals accept decimal, 0x, 0b and 0o forms (see package numfmt).
//
// # Properties
//
//   - round_trip: decode(encode(a)) == a
//   - bijective: no two inputs share an encoding
//   - single_bit_change: encode(a) and encode(a+1) differ in one bit
//   - top_bit: encode(a) keeps bit N-1 of a
//   - zero_fixed_point: encode(0) == 0 and decode(0) == 0
//
// Widths up to ExhaustiveLimit are checked over the whole domain. Wider codecs
// are checked on the boundary values plus a seeded random sample.
//
// # Determinism
//
// Each scenario runs against a private in-memory store with a fixed run ID
// and a logical clock, and its trace is read back from that store. Running
// the same scenario twice yields byte-identical snapshots, which is what the
// golden comparison relies on.
package harness
