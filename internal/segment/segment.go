// Package segment splits UTF-16 code unit sequences into per-scalar
// units without breaking surrogate pairs. Unpaired surrogates are passed
// through unchanged so that rejoining the units always reproduces the
// input exactly.
package segment

import "unicode/utf16"

const (
	surrHigh = 0xD800
	surrLow  = 0xDC00
	surrEnd  = 0xE000
	surrSelf = 0x10000
)

// Split returns one slice per Unicode scalar value. A high surrogate
// immediately followed by a low surrogate forms a single two-unit
// segment; every other code unit is its own segment.
func Split(units []uint16) [][]uint16 {
	segs := make([][]uint16, 0, len(units))
	for i := 0; i < len(units); i++ {
		if isHigh(units[i]) && i+1 < len(units) && isLow(units[i+1]) {
			segs = append(segs, units[i:i+2])
			i++
			continue
		}
		segs = append(segs, units[i:i+1])
	}
	return segs
}

// Runes decodes units into scalar values, combining surrogate pairs.
// An unpaired surrogate surfaces as its own code unit value rather than
// a replacement character, preserving the round trip on malformed input.
func Runes(units []uint16) []rune {
	rs := make([]rune, 0, len(units))
	for i := 0; i < len(units); i++ {
		if isHigh(units[i]) && i+1 < len(units) && isLow(units[i+1]) {
			hi, lo := rune(units[i]), rune(units[i+1])
			rs = append(rs, (hi-surrHigh)<<10+(lo-surrLow)+surrSelf)
			i++
			continue
		}
		rs = append(rs, rune(units[i]))
	}
	return rs
}

// Join concatenates segments back into a single code unit sequence.
func Join(segs [][]uint16) []uint16 {
	n := 0
	for _, s := range segs {
		n += len(s)
	}
	units := make([]uint16, 0, n)
	for _, s := range segs {
		units = append(units, s...)
	}
	return units
}

// Units converts a string to UTF-16 code units.
func Units(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

func isHigh(u uint16) bool { return u >= surrHigh && u < surrLow }
func isLow(u uint16) bool  { return u >= surrLow && u < surrEnd }
