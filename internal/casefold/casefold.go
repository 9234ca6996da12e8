// Package casefold implements Unicode case folding backed by the
// CaseFolding.txt table from the Unicode Character Database. Folded
// strings are suitable for caseless comparison: two strings that are
// case-insensitively equal fold to the same value.
package casefold

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/jusunglee/unicodeutil/internal/segment"
)

// Options selects the fold variant. The zero value performs a full case
// fold without the Turkic mappings, matching the Unicode default.
type Options struct {
	// Simple restricts folding to one-to-one mappings, so the string
	// length never changes.
	Simple bool
	// Turkic applies the special mappings for the Turkic dotted and
	// dotless 'i'.
	Turkic bool
}

// Table holds the parsed fold mappings, keyed by status class. It is
// immutable after ParseTable and safe for concurrent readers.
type Table struct {
	common map[rune][]rune
	full   map[rune][]rune
	simple map[rune][]rune
	turkic map[rune][]rune
}

// ParseTable reads a CaseFolding.txt-format table. Blank lines and
// comment lines are skipped; entries with a status other than C, F, S,
// or T are ignored. A malformed line aborts the parse with its 1-based
// line number.
func ParseTable(r io.Reader) (*Table, error) {
	t := &Table{
		common: make(map[rune][]rune),
		full:   make(map[rune][]rune),
		simple: make(map[rune][]rune),
		turkic: make(map[rune][]rune),
	}

	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, ";")
		if len(fields) < 3 {
			return nil, fmt.Errorf("line %d: want at least 3 fields, got %d", lineno, len(fields))
		}
		src, err := parseHexRune(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: codepoint: %w", lineno, err)
		}
		var dst []rune
		for _, h := range strings.Fields(fields[2]) {
			r, err := parseHexRune(h)
			if err != nil {
				return nil, fmt.Errorf("line %d: mapping: %w", lineno, err)
			}
			dst = append(dst, r)
		}
		switch strings.TrimSpace(fields[1]) {
		case "C":
			t.common[src] = dst
		case "F":
			t.full[src] = dst
		case "S":
			t.simple[src] = dst
		case "T":
			t.turkic[src] = dst
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// Lookup returns the replacement sequence for a single scalar value, or
// the value itself when no mapping applies.
func (t *Table) Lookup(r rune, opts Options) []rune {
	if opts.Turkic {
		if m, ok := t.turkic[r]; ok {
			return m
		}
	}
	if !opts.Simple {
		if m, ok := t.full[r]; ok {
			return m
		}
	} else if m, ok := t.simple[r]; ok {
		return m
	}
	// Common mappings apply in both full and simple mode.
	if m, ok := t.common[r]; ok {
		return m
	}
	return []rune{r}
}

// Fold returns a copy of s transformed for caseless comparison.
func (t *Table) Fold(s string, opts Options) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		for _, m := range t.Lookup(r, opts) {
			b.WriteRune(m)
		}
	}
	return b.String()
}

// FoldUnits folds a UTF-16 code unit sequence, combining surrogate
// pairs before lookup so supplementary-plane mappings apply. Unpaired
// surrogates fold to themselves.
func (t *Table) FoldUnits(units []uint16, opts Options) []uint16 {
	out := make([]uint16, 0, len(units))
	for _, r := range segment.Runes(units) {
		for _, m := range t.Lookup(r, opts) {
			if m < 0x10000 {
				out = append(out, uint16(m))
				continue
			}
			hi, lo := utf16.EncodeRune(m)
			out = append(out, uint16(hi), uint16(lo))
		}
	}
	return out
}

func parseHexRune(s string) (rune, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 16, 32)
	if err != nil {
		return 0, err
	}
	return rune(v), nil
}
