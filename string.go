package regexputil

import (
	"unicode/utf16"
)

const (
	surrLeadFirst  = 0xD800
	surrLeadLast   = 0xDBFF
	surrTrailFirst = 0xDC00
	surrTrailLast  = 0xDFFF
)

// String is an immutable sequence of UTF-16 code units. Code points outside
// the BMP occupy two units (a surrogate pair). Indexes used throughout this
// package are code unit offsets, not rune offsets.
type String []uint16

// NewString encodes a Go string into UTF-16 code units.
func NewString(s string) String {
	return String(utf16.Encode([]rune(s)))
}

func (s String) Length() int {
	return len(s)
}

// CharAt returns the code unit at the given offset.
func (s String) CharAt(idx int) uint16 {
	return s[idx]
}

// Substring returns the code units in [start, end).
func (s String) Substring(start, end int) String {
	return s[start:end]
}

func (s String) String() string {
	return string(utf16.Decode(s))
}

func (s String) ToBoolean() bool {
	return len(s) > 0
}

func (s String) ToFloat() float64 {
	return stringToFloat(s.String())
}

func (s String) ToInteger() int64 {
	return valueFloat(s.ToFloat()).ToInteger()
}

func (s String) SameAs(other Value) bool {
	o, ok := other.(String)
	if !ok || len(o) != len(s) {
		return false
	}
	for i, c := range s {
		if o[i] != c {
			return false
		}
	}
	return true
}

// runes widens each code unit to a rune without decoding surrogate pairs, so
// that rune offsets reported by the regexp2 fallback map 1:1 to code units.
func (s String) runes() []rune {
	r := make([]rune, len(s))
	for i, c := range s {
		r[i] = rune(c)
	}
	return r
}

func isLeadSurrogate(c uint16) bool {
	return c >= surrLeadFirst && c <= surrLeadLast
}

func isTrailSurrogate(c uint16) bool {
	return c >= surrTrailFirst && c <= surrTrailLast
}
