// Package blocks maps codepoints to Unicode block names using the
// Blocks.txt table from the Unicode Character Database.
package blocks

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// ErrNotFound is returned for codepoints that belong to no block.
var ErrNotFound = errors.New("no block contains codepoint")

// Block is a closed codepoint range with a display name.
type Block struct {
	Lo, Hi rune
	Name   string
}

// Index is an ordered, non-overlapping set of blocks. It is immutable
// after Parse and safe for concurrent readers.
type Index struct {
	blocks []Block
}

// Parse reads a Blocks.txt-format table ("lo..hi; Name" per line, with
// blank lines and # comments skipped). Ranges are sorted by first
// codepoint; overlapping ranges fail the parse.
func Parse(r io.Reader) (*Index, error) {
	var bs []Block
	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rng, name, ok := strings.Cut(line, ";")
		if !ok {
			return nil, fmt.Errorf("line %d: missing ';'", lineno)
		}
		loStr, hiStr, ok := strings.Cut(strings.TrimSpace(rng), "..")
		if !ok {
			return nil, fmt.Errorf("line %d: missing '..' in range", lineno)
		}
		lo, err := parseHexRune(loStr)
		if err != nil {
			return nil, fmt.Errorf("line %d: first codepoint: %w", lineno, err)
		}
		hi, err := parseHexRune(hiStr)
		if err != nil {
			return nil, fmt.Errorf("line %d: last codepoint: %w", lineno, err)
		}
		if hi < lo {
			return nil, fmt.Errorf("line %d: range %04X..%04X is inverted", lineno, lo, hi)
		}
		bs = append(bs, Block{Lo: lo, Hi: hi, Name: strings.TrimSpace(name)})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	sort.Slice(bs, func(i, j int) bool { return bs[i].Lo < bs[j].Lo })
	for i := 1; i < len(bs); i++ {
		if bs[i].Lo <= bs[i-1].Hi {
			return nil, fmt.Errorf("blocks %q and %q overlap", bs[i-1].Name, bs[i].Name)
		}
	}
	return &Index{blocks: bs}, nil
}

// ByCodepoint returns the name of the block containing r. The lookup is
// a binary search over the ordered ranges.
func (ix *Index) ByCodepoint(r rune) (string, error) {
	i := sort.Search(len(ix.blocks), func(i int) bool { return ix.blocks[i].Hi >= r })
	if i < len(ix.blocks) && ix.blocks[i].Lo <= r {
		return ix.blocks[i].Name, nil
	}
	return "", fmt.Errorf("%w: %#U", ErrNotFound, r)
}

// ByRune is a convenience alias for ByCodepoint taking a decoded
// character.
func (ix *Index) ByRune(c rune) (string, error) {
	return ix.ByCodepoint(c)
}

// All returns the blocks in ascending codepoint order. The caller must
// not modify the returned slice.
func (ix *Index) All() []Block {
	return ix.blocks
}

func parseHexRune(s string) (rune, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 16, 32)
	if err != nil {
		return 0, err
	}
	return rune(v), nil
}
