package ucd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(parseSample(t))
	require.NoError(t, err)
	return store
}

func TestStoreByCodepoint(t *testing.T) {
	store := newTestStore(t)

	c, err := store.ByCodepoint(0xDF)
	require.NoError(t, err)
	assert.Equal(t, "LATIN SMALL LETTER SHARP S", c.Name)

	c, err = store.ByCodepoint(0xD4DB)
	require.NoError(t, err)
	assert.Equal(t, "HANGUL SYLLABLE PWILH", c.Name)

	_, err = store.ByCodepoint(0x2FFFF)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreByCodepointInvalid(t *testing.T) {
	store := newTestStore(t)
	for _, r := range []rune{-1, 0x110000, 0xD800, 0xDFFF} {
		_, err := store.ByCodepoint(r)
		assert.ErrorIs(t, err, ErrInvalidCodePoint, "%#x", r)
	}
}

func TestStoreByExactName(t *testing.T) {
	store := newTestStore(t)

	c, err := store.ByExactName("LATIN SMALL LETTER SHARP S")
	require.NoError(t, err)
	assert.Equal(t, rune(0xDF), c.Codepoint)

	// Exact matching ignores case but not separators.
	c, err = store.ByExactName("latin small letter sharp s")
	require.NoError(t, err)
	assert.Equal(t, rune(0xDF), c.Codepoint)

	_, err = store.ByExactName("LATIN_SMALL_LETTER_SHARP_S")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreByName(t *testing.T) {
	store := newTestStore(t)

	want, err := store.ByExactName("LATIN SMALL LETTER SHARP S")
	require.NoError(t, err)

	for _, q := range []string{
		"LATIN SMALL LETTER SHARP S",
		"LATIN_SMALL_LETTER_SHARP_S",
		"latin_small_letter_sharp_s",
		"latinsmalllettersharps",
		"latin small letter sharp_s",
	} {
		got, err := store.ByName(q)
		require.NoError(t, err, "ByName(%q)", q)
		assert.Equal(t, want, got, "ByName(%q)", q)
	}

	zwnj, err := store.ByCodepoint(0x200C)
	require.NoError(t, err)
	for _, q := range []string{
		"ZERO WIDTH NON-JOINER",
		"ZERO_WIDTH_NON-JOINER",
		"ZERO_WIDTH_NON_JOINER",
		"Zero Width Non-Joiner",
		"zero width non-joiner",
		"zero width non joiner",
	} {
		got, err := store.ByName(q)
		require.NoError(t, err, "ByName(%q)", q)
		assert.Equal(t, zwnj, got, "ByName(%q)", q)
	}

	_, err = store.ByName("THIS IS A NON-EXISTENT NAME")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreByNameGeneratedNames(t *testing.T) {
	store := newTestStore(t)

	c, err := store.ByName("hangul syllable pwilh")
	require.NoError(t, err)
	assert.Equal(t, rune(0xD4DB), c.Codepoint)

	c, err = store.ByName("cjk unified ideograph-3abc")
	require.NoError(t, err)
	assert.Equal(t, rune(0x3ABC), c.Codepoint)
}

func TestStoreTsaPhruHyphenIsSignificant(t *testing.T) {
	store := newTestStore(t)

	// The hyphen in TSA -PHRU is not medial, so it survives
	// normalization and a hyphen-less query must not match.
	c, err := store.ByName("tibetan mark tsa -phru")
	require.NoError(t, err)
	assert.Equal(t, rune(0xF39), c.Codepoint)

	_, err = store.ByName("TIBETAN MARK TSA PHRU")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreByPartialName(t *testing.T) {
	store := newTestStore(t)

	got := store.ByPartialName("SHARP S")
	require.Len(t, got, 3)
	assert.Equal(t, rune(0x00DF), got[0].Codepoint)
	assert.Equal(t, rune(0x1E9E), got[1].Codepoint)
	assert.Equal(t, rune(0x266F), got[2].Codepoint)

	assert.Empty(t, store.ByPartialName("NO SUCH FRAGMENT"))
	assert.Empty(t, store.ByPartialName("   "))
}

func TestStoreAll(t *testing.T) {
	store := newTestStore(t)

	prev := rune(-1)
	n := 0
	for c := range store.All() {
		require.Greater(t, c.Codepoint, prev)
		prev = c.Codepoint
		n++
	}
	assert.Equal(t, store.Count(), n)
	assert.Equal(t, sampleCount, n)

	// Restartable: a second pass yields the same first element.
	for c := range store.All() {
		assert.Equal(t, rune(0x30), c.Codepoint)
		break
	}
}

func TestNewStoreDuplicateCodepoint(t *testing.T) {
	chars, err := Parse(strings.NewReader(
		"0041;LATIN CAPITAL LETTER A;Lu;0;L;;;;;N;;;;0061;\n" +
			"0041;LATIN CAPITAL LETTER A;Lu;0;L;;;;;N;;;;0061;\n"))
	require.NoError(t, err)
	_, err = NewStore(chars)
	assert.ErrorContains(t, err, "duplicate codepoint")
}
