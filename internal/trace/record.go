package trace

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Op names the direction of a conversion.
type Op string

const (
	OpEncode Op = "encode"
	OpDecode Op = "decode"
)

// Valid reports whether o is a known operation.
func (o Op) Valid() bool {
	return o == OpEncode || o == OpDecode
}

// DomainConversion prefixes the hash input of conversion IDs.
// The version suffix allows the algorithm to change later.
const DomainConversion = "graycode/conversion/v1"

// Run groups the conversions made by one CLI invocation or scenario.
type Run struct {
	ID            string `json:"id"`
	Width         int    `json:"width"`
	Label         string `json:"label,omitempty"`
	FormatVersion string `json:"format_version"`
}

// Conversion is one executed transform.
//
// ErrorCode is empty on success. When set, Output is zero and the input was
// rejected before any transform ran.
type Conversion struct {
	ID        string `json:"id"`
	RunID     string `json:"run_id"`
	Seq       int64  `json:"seq"`
	Op        Op     `json:"op"`
	Width     int    `json:"width"`
	Input     uint64 `json:"input"`
	Output    uint64 `json:"output"`
	ErrorCode string `json:"error_code,omitempty"`
}

// ConversionID computes the content-addressed ID of a conversion.
// Output and ErrorCode are excluded: the ID names what was asked, so replay
// can compare recorded and recomputed results under the same ID.
func ConversionID(runID string, op Op, width int, input uint64, seq int64) (string, error) {
	canonical, err := MarshalCanonical(map[string]any{
		"run_id": runID,
		"op":     string(op),
		"width":  width,
		"input":  input,
		"seq":    seq,
	})
	if err != nil {
		return "", fmt.Errorf("ConversionID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainConversion, canonical), nil
}

// hashWithDomain computes SHA256(domain || 0x00 || data) as lowercase hex.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// CanonicalMap returns c as a map for canonical serialization. The ID is
// omitted so snapshots stay readable.
func (c Conversion) CanonicalMap() map[string]any {
	m := map[string]any{
		"seq":   c.Seq,
		"op":    string(c.Op),
		"input": c.Input,
	}
	if c.ErrorCode != "" {
		m["error"] = c.ErrorCode
	} else {
		m["output"] = c.Output
	}
	return m
}
