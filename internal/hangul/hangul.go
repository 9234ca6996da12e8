// Package hangul implements composition and decomposition of precomposed
// Hangul syllables per the conjoining Jamo algorithm in the Unicode
// Standard, ch. 3.12. It is pure arithmetic and needs no parsed tables.
package hangul

import (
	"errors"
	"fmt"
)

const (
	SBase = 0xAC00 // first precomposed syllable
	LBase = 0x1100 // first leading consonant (choseong)
	VBase = 0x1161 // first vowel (jungseong)
	TBase = 0x11A7 // one before the first trailing consonant (jongseong)

	LCount = 19
	VCount = 21
	TCount = 28
	NCount = VCount * TCount
	SCount = LCount * NCount
)

var (
	ErrNotASyllable = errors.New("not a Hangul syllable")
	ErrInvalidJamo  = errors.New("invalid jamo sequence")
)

// Jamo_Short_Name values, indexed by L/V/T index. Used to derive
// "HANGUL SYLLABLE ..." names per naming rule NR1.
var (
	lShort = []string{
		"G", "GG", "N", "D", "DD", "R", "M", "B", "BB",
		"S", "SS", "", "J", "JJ", "C", "K", "T", "P", "H",
	}
	vShort = []string{
		"A", "AE", "YA", "YAE", "EO", "E", "YEO", "YE", "O",
		"WA", "WAE", "OE", "YO", "U", "WEO", "WE", "WI", "YU",
		"EU", "YI", "I",
	}
	tShort = []string{
		"", "G", "GG", "GS", "N", "NJ", "NH", "D", "L", "LG",
		"LM", "LB", "LS", "LT", "LP", "LH", "M", "B", "BS",
		"S", "SS", "NG", "J", "C", "K", "T", "P", "H",
	}
)

// IsSyllable reports whether r is a precomposed Hangul syllable.
func IsSyllable(r rune) bool {
	return r >= SBase && r < SBase+SCount
}

// SyllableType returns "LV" or "LVT" for a precomposed syllable.
func SyllableType(r rune) (string, error) {
	if !IsSyllable(r) {
		return "", fmt.Errorf("%w: %#U", ErrNotASyllable, r)
	}
	if (r-SBase)%TCount == 0 {
		return "LV", nil
	}
	return "LVT", nil
}

// SyllableName returns the Jamo short name suffix for a syllable, e.g.
// 0xD4DB -> "PWILH". The full character name is "HANGUL SYLLABLE " plus
// this value.
func SyllableName(r rune) (string, error) {
	if !IsSyllable(r) {
		return "", fmt.Errorf("%w: %#U", ErrNotASyllable, r)
	}
	s := r - SBase
	return lShort[s/NCount] + vShort[s%NCount/TCount] + tShort[s%TCount], nil
}

// Decompose splits a precomposed syllable into its canonical parts.
//
// With full=false the canonical decomposition is returned: (L, V) for an
// LV syllable, (LV, T) for an LVT syllable, where LV is itself a
// precomposed syllable. With full=true the syllable is fully expanded to
// atomic jamo: (L, V) or (L, V, T).
func Decompose(r rune, full bool) ([]rune, error) {
	if !IsSyllable(r) {
		return nil, fmt.Errorf("%w: %#U", ErrNotASyllable, r)
	}
	s := r - SBase
	lIndex := s / NCount
	vIndex := s % NCount / TCount
	tIndex := s % TCount

	if full {
		if tIndex == 0 {
			return []rune{LBase + lIndex, VBase + vIndex}, nil
		}
		return []rune{LBase + lIndex, VBase + vIndex, TBase + tIndex}, nil
	}
	if tIndex == 0 {
		return []rune{LBase + lIndex, VBase + vIndex}, nil
	}
	lv := SBase + (s/TCount)*TCount
	return []rune{lv, TBase + tIndex}, nil
}

// Compose combines a jamo sequence into a precomposed syllable. It
// accepts (L, V), (L, V, T), or the canonical two-part form
// (LV syllable, T).
func Compose(jamo []rune) (rune, error) {
	switch len(jamo) {
	case 2:
		if IsSyllable(jamo[0]) {
			// (LV, T) canonical form. The first part must carry no
			// trailing consonant of its own.
			if (jamo[0]-SBase)%TCount != 0 {
				return 0, fmt.Errorf("%w: %#U is not an LV syllable", ErrInvalidJamo, jamo[0])
			}
			tIndex := jamo[1] - TBase
			if tIndex <= 0 || tIndex >= TCount {
				return 0, fmt.Errorf("%w: %#U is not a trailing consonant", ErrInvalidJamo, jamo[1])
			}
			return jamo[0] + tIndex, nil
		}
		return composeLVT(jamo[0], jamo[1], 0)
	case 3:
		tIndex := jamo[2] - TBase
		if tIndex <= 0 || tIndex >= TCount {
			return 0, fmt.Errorf("%w: %#U is not a trailing consonant", ErrInvalidJamo, jamo[2])
		}
		return composeLVT(jamo[0], jamo[1], tIndex)
	default:
		return 0, fmt.Errorf("%w: want 2 or 3 jamo, got %d", ErrInvalidJamo, len(jamo))
	}
}

func composeLVT(l, v, tIndex rune) (rune, error) {
	lIndex := l - LBase
	if lIndex < 0 || lIndex >= LCount {
		return 0, fmt.Errorf("%w: %#U is not a leading consonant", ErrInvalidJamo, l)
	}
	vIndex := v - VBase
	if vIndex < 0 || vIndex >= VCount {
		return 0, fmt.Errorf("%w: %#U is not a vowel", ErrInvalidJamo, v)
	}
	return SBase + (lIndex*VCount+vIndex)*TCount + tIndex, nil
}
