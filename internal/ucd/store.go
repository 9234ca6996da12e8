package ucd

import (
	"errors"
	"fmt"
	"iter"
	"sort"
	"strings"
	"unicode/utf16"
)

var (
	// ErrNotFound is returned when no record matches a lookup.
	ErrNotFound = errors.New("character not found")
	// ErrInvalidCodePoint is returned when a lookup value is outside
	// 0..0x10FFFF or inside the surrogate range.
	ErrInvalidCodePoint = errors.New("invalid code point")
)

// Store holds the parsed character records and their lookup indices.
// It is immutable after NewStore and safe for concurrent readers; no
// lookup mutates state.
type Store struct {
	byCP  map[rune]Character
	exact map[string]rune // uppercased stored name -> codepoint
	loose map[string]rune // UAX44-LM2 normalized name -> codepoint
	order []rune          // ascending codepoints
	norm  []string        // normalized names, parallel to order
}

// NewStore indexes a parsed record set. Duplicate codepoints fail
// construction.
func NewStore(chars []Character) (*Store, error) {
	s := &Store{
		byCP:  make(map[rune]Character, len(chars)),
		exact: make(map[string]rune, len(chars)),
		loose: make(map[string]rune, len(chars)),
		order: make([]rune, 0, len(chars)),
	}
	for _, c := range chars {
		if _, dup := s.byCP[c.Codepoint]; dup {
			return nil, fmt.Errorf("duplicate codepoint %#U", c.Codepoint)
		}
		s.byCP[c.Codepoint] = c
		s.exact[strings.ToUpper(c.Name)] = c.Codepoint
		s.loose[NormalizeName(c.Name)] = c.Codepoint
		s.order = append(s.order, c.Codepoint)
	}
	sort.Slice(s.order, func(i, j int) bool { return s.order[i] < s.order[j] })
	s.norm = make([]string, len(s.order))
	for i, cp := range s.order {
		s.norm[i] = NormalizeName(s.byCP[cp].Name)
	}
	return s, nil
}

// ByCodepoint returns the record for a scalar value.
func (s *Store) ByCodepoint(r rune) (Character, error) {
	if r < 0 || r > 0x10FFFF || utf16.IsSurrogate(r) {
		return Character{}, fmt.Errorf("%w: %#x", ErrInvalidCodePoint, int64(r))
	}
	c, ok := s.byCP[r]
	if !ok {
		return Character{}, fmt.Errorf("%w: %#U", ErrNotFound, r)
	}
	return c, nil
}

// ByExactName matches the stored name exactly, ignoring case only.
func (s *Store) ByExactName(name string) (Character, error) {
	cp, ok := s.exact[strings.ToUpper(name)]
	if !ok {
		return Character{}, fmt.Errorf("%w: name %q", ErrNotFound, name)
	}
	return s.byCP[cp], nil
}

// ByName matches a name using the UAX44-LM2 loose matching rule, so
// case, whitespace, underscores, and medial hyphens are insignificant.
func (s *Store) ByName(name string) (Character, error) {
	cp, ok := s.loose[NormalizeName(name)]
	if !ok {
		return Character{}, fmt.Errorf("%w: name %q", ErrNotFound, name)
	}
	return s.byCP[cp], nil
}

// ByPartialName returns every record whose normalized name contains the
// normalized fragment, in ascending codepoint order.
func (s *Store) ByPartialName(fragment string) []Character {
	needle := NormalizeName(fragment)
	if needle == "" {
		return nil
	}
	var out []Character
	for i, n := range s.norm {
		if strings.Contains(n, needle) {
			out = append(out, s.byCP[s.order[i]])
		}
	}
	return out
}

// All iterates the records in ascending codepoint order. The sequence
// is finite and restartable.
func (s *Store) All() iter.Seq[Character] {
	return func(yield func(Character) bool) {
		for _, cp := range s.order {
			if !yield(s.byCP[cp]) {
				return
			}
		}
	}
}

// Count returns the number of indexed codepoints.
func (s *Store) Count() int {
	return len(s.order)
}
