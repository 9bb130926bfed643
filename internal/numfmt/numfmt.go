// Package numfmt parses and renders unsigned integer literals in the bases
// the graycode CLI accepts, keeping track of which base a value was written
// in so results can be echoed back the same way.
package numfmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Base is the radix a literal is written in.
type Base int

const (
	Decimal Base = iota
	Hex
	Binary
	Octal
)

// String returns the short name used by flags and config files.
func (b Base) String() string {
	switch b {
	case Hex:
		return "hex"
	case Binary:
		return "bin"
	case Octal:
		return "oct"
	default:
		return "dec"
	}
}

// ValidBases lists the names accepted by ParseBase.
var ValidBases = []string{"dec", "hex", "bin", "oct"}

// ParseBase maps a base name to a Base.
func ParseBase(name string) (Base, error) {
	switch strings.ToLower(name) {
	case "dec", "":
		return Decimal, nil
	case "hex":
		return Hex, nil
	case "bin":
		return Binary, nil
	case "oct":
		return Octal, nil
	}
	return Decimal, fmt.Errorf("unknown base %q: must be one of %v", name, ValidBases)
}

// ParseError reports a literal that could not be parsed.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid literal %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ErrEmpty is returned for an empty literal.
var ErrEmpty = errors.New("empty literal")

// Parse reads an unsigned literal. A 0x, 0b or 0o prefix (either case)
// selects the base, anything else is decimal. Underscores may separate
// digits.
func Parse(s string) (uint64, Base, error) {
	lit := strings.TrimSpace(s)
	if lit == "" {
		return 0, Decimal, &ParseError{Input: s, Err: ErrEmpty}
	}

	base, radix, digits := Decimal, 10, lit
	if len(lit) > 2 && lit[0] == '0' {
		switch lit[1] {
		case 'x', 'X':
			base, radix, digits = Hex, 16, lit[2:]
		case 'b', 'B':
			base, radix, digits = Binary, 2, lit[2:]
		case 'o', 'O':
			base, radix, digits = Octal, 8, lit[2:]
		}
	}

	if strings.HasPrefix(digits, "_") || strings.HasSuffix(digits, "_") || strings.Contains(digits, "__") {
		return 0, base, &ParseError{Input: s, Err: errors.New("misplaced digit separator")}
	}
	v, err := strconv.ParseUint(strings.ReplaceAll(digits, "_", ""), radix, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return 0, base, &ParseError{Input: s, Err: err}
	}
	return v, base, nil
}

// Format renders v in base. Hex, binary and octal output carries its
// prefix and is zero-padded to the digits needed for width bits; decimal is
// never padded. A width of 0 disables padding.
func Format(v uint64, base Base, width int) string {
	switch base {
	case Hex:
		return "0x" + pad(strconv.FormatUint(v, 16), digitsFor(width, 4))
	case Binary:
		return "0b" + pad(strconv.FormatUint(v, 2), width)
	case Octal:
		return "0o" + pad(strconv.FormatUint(v, 8), digitsFor(width, 3))
	default:
		return strconv.FormatUint(v, 10)
	}
}

// digitsFor returns how many digits of bitsPerDigit bits cover width bits.
func digitsFor(width, bitsPerDigit int) int {
	return (width + bitsPerDigit - 1) / bitsPerDigit
}

func pad(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return strings.Repeat("0", n-len(s)) + s
}
