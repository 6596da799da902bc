// Package encode provides the low-level text primitives used when
// assembling metadata documents: decimal rendering of unsigned integers,
// fixed-width lowercase hex rendering of 24-bit color values, and a
// minimal JSON string escaper.
package encode

import "strings"

const hexDigits = "0123456789abcdef"

// Uint renders v as base-10 digits with no leading zeros.
func Uint(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = '0' + byte(v%10)
		v /= 10
	}
	return string(buf[i:])
}

// Hex24 renders the low 24 bits of v as exactly six lowercase hex
// characters, most-significant nibble first. Bits above 24 are ignored.
func Hex24(v uint32) string {
	var buf [6]byte
	for i := 5; i >= 0; i-- {
		buf[i] = hexDigits[v&0xf]
		v >>= 4
	}
	return string(buf[:])
}

// EscapeJSON escapes `"` as `\"` and `\` as `\\`; every other byte is
// copied unchanged, control characters included. It is deliberately
// minimal: only internally generated text passes through it, and that
// text never contains characters outside the escaped set that a general
// JSON escaper would have to handle.
func EscapeJSON(s string) string {
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}
