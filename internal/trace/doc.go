// Package trace defines the records graycode keeps about executed
// conversions and the deterministic serialization used to identify them.
//
// This package imports nothing internal. Store, harness and cli all build on
// it.
//
// Key constraints:
//   - Ordering uses logical sequence numbers, never wall-clock time
//   - Record identity is content-addressed (SHA-256 over canonical JSON)
//   - All JSON tags use snake_case
package trace
