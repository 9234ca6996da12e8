package ucd

import (
	"fmt"
	"strings"

	"github.com/jusunglee/unicodeutil/internal/hangul"
)

// Name derivation ranges from the Unicode Standard, ch. 4.8, table 4-8.
// Codepoints in these ranges take names generated by rule NR1 (Hangul)
// or NR2 (prefix plus hex codepoint) rather than names listed in
// UnicodeData.txt.
type derivedRange struct {
	lo, hi rune
	prefix string
}

var derivedRanges = []derivedRange{
	{0xAC00, 0xD7A3, "HANGUL SYLLABLE "},
	{0x3400, 0x4DB5, "CJK UNIFIED IDEOGRAPH-"},
	{0x4E00, 0x9FEA, "CJK UNIFIED IDEOGRAPH-"},
	{0x20000, 0x2A6D6, "CJK UNIFIED IDEOGRAPH-"},
	{0x2A700, 0x2B734, "CJK UNIFIED IDEOGRAPH-"},
	{0x2B740, 0x2B81D, "CJK UNIFIED IDEOGRAPH-"},
	{0x2B820, 0x2CEA1, "CJK UNIFIED IDEOGRAPH-"},
	{0x2CEB0, 0x2EBE0, "CJK UNIFIED IDEOGRAPH-"},
	{0x17000, 0x187EC, "TANGUT IDEOGRAPH-"},
	{0x1B170, 0x1B2FB, "NUSHU CHARACTER-"},
	{0xF900, 0xFA6D, "CJK COMPATIBILITY IDEOGRAPH-"},
	{0xFA70, 0xFAD9, "CJK COMPATIBILITY IDEOGRAPH-"},
	{0x2F800, 0x2FA1D, "CJK COMPATIBILITY IDEOGRAPH-"},
}

// derivedName returns the generated name for codepoints inside a name
// derivation range, and ok=false elsewhere.
func derivedName(r rune) (string, bool) {
	for _, d := range derivedRanges {
		if r < d.lo || r > d.hi {
			continue
		}
		if strings.HasPrefix(d.prefix, "HANGUL SYLLABLE") {
			suffix, err := hangul.SyllableName(r)
			if err != nil {
				return "", false
			}
			return d.prefix + suffix, true
		}
		return fmt.Sprintf("%s%04X", d.prefix, r), true
	}
	return "", false
}

// The one character name whose medial hyphen is significant; guaranteed
// stable by the Unicode name stability policy.
const hangulJungseongOE = "HANGUL JUNGSEONG O-E"

// NormalizeName applies the UAX44-LM2 loose matching transform: medial
// hyphens (except the one in HANGUL JUNGSEONG O-E), whitespace, and
// underscores are dropped, then the result is lowercased. A hyphen is
// medial when it sits immediately between two word characters in the
// original name.
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	keepHyphens := strings.EqualFold(name, hangulJungseongOE)
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '-':
			medial := i > 0 && i+1 < len(name) && isWord(name[i-1]) && isWord(name[i+1])
			if medial && !keepHyphens {
				continue
			}
			b.WriteByte(c)
		case c == '_', c == ' ', c == '\t':
			continue
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isWord(c byte) bool {
	return c == '_' ||
		(c >= '0' && c <= '9') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= 'a' && c <= 'z')
}
