package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	// "AB" + U+1E900 (surrogate pair) + "CD"
	units := []uint16{'A', 'B', 0xD83A, 0xDD00, 'C', 'D'}
	segs := Split(units)
	require.Len(t, segs, 5)
	assert.Equal(t, []uint16{'A'}, segs[0])
	assert.Equal(t, []uint16{0xD83A, 0xDD00}, segs[2])
	assert.Equal(t, []uint16{'D'}, segs[4])
}

func TestSplitUnpairedSurrogates(t *testing.T) {
	tests := []struct {
		name  string
		units []uint16
		want  int
	}{
		{"lone high", []uint16{'A', 0xD83A, 'B'}, 3},
		{"lone low", []uint16{'A', 0xDD00, 'B'}, 3},
		{"high at end", []uint16{'A', 0xD83A}, 2},
		{"low then high", []uint16{0xDD00, 0xD83A}, 2},
		{"two pairs", []uint16{0xD83A, 0xDD00, 0xD83A, 0xDD00}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := Split(tt.units)
			assert.Len(t, segs, tt.want)
			assert.Equal(t, tt.units, Join(segs), "round trip")
		})
	}
}

func TestRunes(t *testing.T) {
	units := []uint16{'A', 0xD83A, 0xDD00, 'B'}
	assert.Equal(t, []rune{'A', 0x1E900, 'B'}, Runes(units))

	// Unpaired surrogates pass through as their code unit values.
	assert.Equal(t, []rune{0xD83A, 'x'}, Runes([]uint16{0xD83A, 'x'}))
	assert.Equal(t, []rune{0xDD00}, Runes([]uint16{0xDD00}))
}

func TestUnits(t *testing.T) {
	units := Units("AB\U0001E900CD")
	assert.Equal(t, []uint16{'A', 'B', 0xD83A, 0xDD00, 'C', 'D'}, units)
	assert.Len(t, Split(units), 5)
}
