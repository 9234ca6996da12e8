package casefold

import (
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Excerpt of CaseFolding.txt covering the characters the tests exercise.
const sampleTable = `# CaseFolding
# <code>; <status>; <mapping>; # <name>

0041; C; 0061; # LATIN CAPITAL LETTER A
0042; C; 0062; # LATIN CAPITAL LETTER B
0043; C; 0063; # LATIN CAPITAL LETTER C
0044; C; 0064; # LATIN CAPITAL LETTER D
0045; C; 0065; # LATIN CAPITAL LETTER E
0046; C; 0066; # LATIN CAPITAL LETTER F
0047; C; 0067; # LATIN CAPITAL LETTER G
0048; C; 0068; # LATIN CAPITAL LETTER H
0049; C; 0069; # LATIN CAPITAL LETTER I
0049; T; 0131; # LATIN CAPITAL LETTER I
004A; C; 006A; # LATIN CAPITAL LETTER J
004B; C; 006B; # LATIN CAPITAL LETTER K
004C; C; 006C; # LATIN CAPITAL LETTER L
004D; C; 006D; # LATIN CAPITAL LETTER M
004E; C; 006E; # LATIN CAPITAL LETTER N
004F; C; 006F; # LATIN CAPITAL LETTER O
0050; C; 0070; # LATIN CAPITAL LETTER P
0051; C; 0071; # LATIN CAPITAL LETTER Q
0052; C; 0072; # LATIN CAPITAL LETTER R
0053; C; 0073; # LATIN CAPITAL LETTER S
0054; C; 0074; # LATIN CAPITAL LETTER T
0055; C; 0075; # LATIN CAPITAL LETTER U
0056; C; 0076; # LATIN CAPITAL LETTER V
0057; C; 0077; # LATIN CAPITAL LETTER W
0058; C; 0078; # LATIN CAPITAL LETTER X
0059; C; 0079; # LATIN CAPITAL LETTER Y
005A; C; 007A; # LATIN CAPITAL LETTER Z
00B5; C; 03BC; # MICRO SIGN
00DF; F; 0073 0073; # LATIN SMALL LETTER SHARP S
0130; F; 0069 0307; # LATIN CAPITAL LETTER I WITH DOT ABOVE
0130; T; 0069; # LATIN CAPITAL LETTER I WITH DOT ABOVE
0345; C; 03B9; # COMBINING GREEK YPOGEGRAMMENI
0390; F; 03B9 0308 0301; # GREEK SMALL LETTER IOTA WITH DIALYTIKA AND TONOS
03A3; C; 03C3; # GREEK CAPITAL LETTER SIGMA
1E9E; F; 0073 0073; # LATIN CAPITAL LETTER SHARP S
1E9E; S; 00DF; # LATIN CAPITAL LETTER SHARP S
1F88; S; 1F80; # GREEK CAPITAL LETTER ALPHA WITH PSILI AND PROSGEGRAMMENI
1F88; F; 1F00 03B9; # GREEK CAPITAL LETTER ALPHA WITH PSILI AND PROSGEGRAMMENI
FB01; F; 0066 0069; # LATIN SMALL LIGATURE FI
10400; C; 10428; # DESERET CAPITAL LETTER LONG I
104B0; C; 104D8; # OSAGE CAPITAL LETTER A
118A0; C; 118C0; # WARANG CITI CAPITAL LETTER NGAA
`

func newTestTable(t *testing.T) *Table {
	t.Helper()
	table, err := ParseTable(strings.NewReader(sampleTable))
	require.NoError(t, err)
	return table
}

func TestFoldDefault(t *testing.T) {
	table := newTestTable(t)
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"hELlo", "hello"},
		{"ß", "ss"},
		{"ﬁ", "fi"},
		{"Σ", "σ"},
		{"AͅΣ", "aισ"},
		{"µ", "μ"},
		{"weiß", "weiss"},
		{"WEISS", "weiss"},
		{"WEIẞ", "weiss"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, table.Fold(tt.in, Options{}), "Fold(%q)", tt.in)
	}
}

func TestFoldCaselessEquality(t *testing.T) {
	table := newTestTable(t)
	assert.Equal(t, table.Fold("weiß", Options{}), table.Fold("WEISS", Options{}))
}

func TestFoldSimple(t *testing.T) {
	table := newTestTable(t)
	opts := Options{Simple: true}
	assert.Equal(t, "weiß", table.Fold("weiß", opts))
	assert.Equal(t, "weiß", table.Fold("WEIẞ", opts))
	// Only a full mapping exists for these, so simple mode leaves them alone.
	assert.Equal(t, "ΐ", table.Fold("ΐ", opts))
	assert.Equal(t, "ᾀ", table.Fold("ᾈ", opts))
}

func TestFoldFullGreek(t *testing.T) {
	table := newTestTable(t)
	assert.Equal(t, "ΐ", table.Fold("ΐ", Options{}))
	assert.Equal(t, "ἀι", table.Fold("ᾈ", Options{}))
}

func TestFoldTurkic(t *testing.T) {
	table := newTestTable(t)

	s1, s2 := "LİMANI", "limanı"
	assert.NotEqual(t, table.Fold(s1, Options{}), table.Fold(s2, Options{}))
	turkic := Options{Turkic: true}
	assert.Equal(t, table.Fold(s1, turkic), table.Fold(s2, turkic))

	// The Turkic mapping breaks plain I/i equivalence.
	assert.Equal(t, table.Fold("MISSISSIPPI", Options{}), table.Fold("mississippi", Options{}))
	assert.NotEqual(t, table.Fold("MISSISSIPPI", turkic), table.Fold("mississippi", turkic))
}

func TestFoldSupplementaryPlane(t *testing.T) {
	table := newTestTable(t)
	in := "AB\U000104B0CD\U000118A0EF"
	want := "ab\U000104D8cd\U000118C0ef"
	assert.Equal(t, want, table.Fold(in, Options{}))
	assert.Equal(t, want, table.Fold(in, Options{Simple: true}))
}

func TestFoldIdempotent(t *testing.T) {
	table := newTestTable(t)
	inputs := []string{"WEIẞ", "AͅΣ", "ΐ", "ﬁﬁ", "Hİ THERE", "\U00010400"}
	for _, s := range inputs {
		once := table.Fold(s, Options{})
		assert.Equal(t, once, table.Fold(once, Options{}), "Fold(Fold(%q))", s)
	}
}

func TestFoldUnits(t *testing.T) {
	table := newTestTable(t)
	units := utf16.Encode([]rune("AB\U00010400"))
	got := table.FoldUnits(units, Options{})
	assert.Equal(t, utf16.Encode([]rune("ab\U00010428")), got)

	// Unpaired surrogates fold to themselves.
	lone := []uint16{0xD83A, 'A'}
	assert.Equal(t, []uint16{0xD83A, 'a'}, table.FoldUnits(lone, Options{}))
}

func TestParseTableMalformed(t *testing.T) {
	_, err := ParseTable(strings.NewReader("0041; C\n"))
	assert.ErrorContains(t, err, "line 1")

	_, err = ParseTable(strings.NewReader("0041; C; 0061;\nZZZZ; C; 0061;\n"))
	assert.ErrorContains(t, err, "line 2")
}

func TestParseTableIgnoresOtherStatuses(t *testing.T) {
	table, err := ParseTable(strings.NewReader("0049; X; 0069;\n"))
	require.NoError(t, err)
	assert.Equal(t, "I", table.Fold("I", Options{}))
}
