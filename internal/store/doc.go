// Package store provides SQLite-backed storage for graycode conversion logs.
//
// The store is an append-only log of:
//   - Runs: one CLI invocation or scenario, bound to a single width
//   - Conversions: each encode/decode request and its result
//
// # Determinism
//
// All reads are ordered ORDER BY seq ASC, id ASC COLLATE BINARY so that a
// replay sees conversions in the order they were made. Conversion IDs are
// content-addressed (see trace.ConversionID), which makes writes idempotent.
//
// # Unsigned values
//
// SQLite INTEGER is a signed 64-bit type. Inputs and outputs are stored as
// their two's complement bit pattern and converted back on read, so the full
// uint64 range survives a round trip.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Conversions must reference an existing run
package store
