// Package ucd parses UnicodeData.txt from the Unicode Character
// Database into typed records and indexes them for lookup by codepoint,
// name, loose name, and partial name.
package ucd

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// numeric fields use -1 for "not applicable" so that a stored zero
// (e.g. DIGIT ZERO) stays distinguishable from an absent value.
const NoValue = -1

// Decomposition is the character decomposition mapping: an optional
// compatibility formatting tag such as "<fraction>" plus the mapped
// scalar values. The zero value means no decomposition.
type Decomposition struct {
	Tag   string
	Runes []rune
}

// IsZero reports whether no decomposition is defined.
func (d Decomposition) IsZero() bool {
	return d.Tag == "" && len(d.Runes) == 0
}

// Character is one UnicodeData.txt record after range expansion.
// Upper, Lower, and Title are 0 when the character has no simple case
// mapping; Numeric is nil when the character has no numeric value.
type Character struct {
	Codepoint     rune
	Name          string
	Category      string
	Combining     int
	Bidi          string
	Decomposition Decomposition
	Decimal       int
	Digit         int
	Numeric       *big.Rat
	Mirrored      bool
	Unicode1Name  string
	ISOComment    string
	Upper         rune
	Lower         rune
	Title         rune
}

// numFields is the field count of a UnicodeData.txt line.
const numFields = 15

// parseRecord converts the 15 semicolon-delimited fields of one line
// into a Character. Empty fields mean "not applicable", never an error.
func parseRecord(fields []string) (Character, error) {
	cp, err := parseCodepoint(fields[0])
	if err != nil {
		return Character{}, fmt.Errorf("codepoint: %w", err)
	}
	c := Character{
		Codepoint:    cp,
		Name:         fields[1],
		Category:     fields[2],
		Bidi:         fields[4],
		Decimal:      NoValue,
		Digit:        NoValue,
		Unicode1Name: fields[10],
		ISOComment:   fields[11],
	}

	c.Combining, err = strconv.Atoi(fields[3])
	if err != nil || c.Combining < 0 {
		return Character{}, fmt.Errorf("combining class %q", fields[3])
	}

	if c.Decomposition, err = parseDecomposition(fields[5]); err != nil {
		return Character{}, err
	}

	if fields[6] != "" {
		if c.Decimal, err = strconv.Atoi(fields[6]); err != nil {
			return Character{}, fmt.Errorf("decimal digit value %q", fields[6])
		}
	}
	if fields[7] != "" {
		if c.Digit, err = strconv.Atoi(fields[7]); err != nil {
			return Character{}, fmt.Errorf("digit value %q", fields[7])
		}
	}
	if fields[8] != "" {
		r, ok := new(big.Rat).SetString(fields[8])
		if !ok {
			return Character{}, fmt.Errorf("numeric value %q", fields[8])
		}
		c.Numeric = r
	}

	switch fields[9] {
	case "Y":
		c.Mirrored = true
	case "N", "":
		c.Mirrored = false
	default:
		return Character{}, fmt.Errorf("mirrored flag %q", fields[9])
	}

	for _, m := range []struct {
		field string
		dst   *rune
		what  string
	}{
		{fields[12], &c.Upper, "uppercase mapping"},
		{fields[13], &c.Lower, "lowercase mapping"},
		{fields[14], &c.Title, "titlecase mapping"},
	} {
		if m.field == "" {
			continue
		}
		if *m.dst, err = parseCodepoint(m.field); err != nil {
			return Character{}, fmt.Errorf("%s: %w", m.what, err)
		}
	}
	return c, nil
}

// parseDecomposition handles the optional "<tag>" prefix followed by
// hex scalar values, e.g. "<fraction> 0031 2044 0032" or "0041 030A".
func parseDecomposition(field string) (Decomposition, error) {
	if field == "" {
		return Decomposition{}, nil
	}
	var d Decomposition
	parts := strings.Fields(field)
	if strings.HasPrefix(parts[0], "<") {
		if !strings.HasSuffix(parts[0], ">") {
			return Decomposition{}, fmt.Errorf("decomposition tag %q", parts[0])
		}
		d.Tag = parts[0]
		parts = parts[1:]
	}
	for _, p := range parts {
		r, err := parseCodepoint(p)
		if err != nil {
			return Decomposition{}, fmt.Errorf("decomposition: %w", err)
		}
		d.Runes = append(d.Runes, r)
	}
	return d, nil
}

func parseCodepoint(s string) (rune, error) {
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || v > 0x10FFFF {
		return 0, fmt.Errorf("invalid codepoint %q", s)
	}
	return rune(v), nil
}
