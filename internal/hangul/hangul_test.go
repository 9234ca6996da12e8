package hangul

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecomposeCanonical(t *testing.T) {
	got, err := Decompose(0xD4DB, false)
	require.NoError(t, err)
	assert.Equal(t, []rune{0xD4CC, 0x11B6}, got)

	// LV syllable decomposes straight to jamo.
	got, err = Decompose(0xD4CC, false)
	require.NoError(t, err)
	assert.Equal(t, []rune{0x1111, 0x1171}, got)
}

func TestDecomposeFull(t *testing.T) {
	got, err := Decompose(0xD4DB, true)
	require.NoError(t, err)
	assert.Equal(t, []rune{0x1111, 0x1171, 0x11B6}, got)

	got, err = Decompose(0xAC00, true)
	require.NoError(t, err)
	assert.Equal(t, []rune{0x1100, 0x1161}, got)
}

func TestDecomposeNotASyllable(t *testing.T) {
	for _, r := range []rune{0x41, SBase - 1, SBase + SCount, 0x1100} {
		_, err := Decompose(r, false)
		assert.ErrorIs(t, err, ErrNotASyllable, "%#U", r)
	}
}

func TestCompose(t *testing.T) {
	got, err := Compose([]rune{0x1111, 0x1171, 0x11B6})
	require.NoError(t, err)
	assert.Equal(t, rune(0xD4DB), got)

	got, err = Compose([]rune{0xD4CC, 0x11B6})
	require.NoError(t, err)
	assert.Equal(t, rune(0xD4DB), got)

	got, err = Compose([]rune{0x1100, 0x1161})
	require.NoError(t, err)
	assert.Equal(t, rune(0xAC00), got)
}

func TestComposeInvalid(t *testing.T) {
	cases := [][]rune{
		{},
		{0x1100},
		{0x1100, 0x1161, 0x11A7, 0x11A7},
		{0x41, 0x1161},            // not a leading consonant
		{0x1100, 0x41},            // not a vowel
		{0x1100, 0x1161, 0x11A7},  // TBase itself is not a trailing consonant
		{0xD4DB, 0x11B6},          // first part already has a trailing consonant
		{0xD4CC, 0x1161},          // second part not a trailing consonant
	}
	for _, jamo := range cases {
		_, err := Compose(jamo)
		assert.ErrorIs(t, err, ErrInvalidJamo, "%v", jamo)
	}
}

func TestRoundTripAllSyllables(t *testing.T) {
	for s := rune(SBase); s < SBase+SCount; s++ {
		canonical, err := Decompose(s, false)
		require.NoError(t, err)
		got, err := Compose(canonical)
		require.NoError(t, err)
		require.Equal(t, s, got, "canonical round trip %#U", s)

		full, err := Decompose(s, true)
		require.NoError(t, err)
		got, err = Compose(full)
		require.NoError(t, err)
		require.Equal(t, s, got, "full round trip %#U", s)
	}
}

func TestSyllableType(t *testing.T) {
	typ, err := SyllableType(0xAC00)
	require.NoError(t, err)
	assert.Equal(t, "LV", typ)

	typ, err = SyllableType(0xD4DB)
	require.NoError(t, err)
	assert.Equal(t, "LVT", typ)

	_, err = SyllableType(0x1100)
	assert.ErrorIs(t, err, ErrNotASyllable)
}

func TestSyllableName(t *testing.T) {
	tests := []struct {
		r    rune
		want string
	}{
		{0xAC00, "GA"},
		{0xD4DB, "PWILH"},
		{0xD7A3, "HIH"},
		{0xAE4C, "GGA"},
	}
	for _, tt := range tests {
		got, err := SyllableName(tt.r)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%#U", tt.r)
	}
}
