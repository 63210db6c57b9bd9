package huffman

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func parseCode(s string) (Code, error) {
	if len(s) == 0 || len(s) > MaxCodeSize {
		return Code{}, fmt.Errorf("invalid code length %d", len(s))
	}
	bits, err := strconv.ParseUint(s, 2, 64)
	if err != nil {
		return Code{}, err
	}
	return MakeCode(uint8(len(s)), bits), nil
}

// hasPrefix reports whether p is a prefix of c.
func hasPrefix(c, p Code) bool {
	return p.Size <= c.Size && c.Bits>>(c.Size-p.Size) == p.Bits
}

func requirePrefixFree(t *testing.T, codes CodeTable) {
	for sym1, code1 := range codes {
		require.NotZero(t, code1.Size, "empty code for %q", sym1)
		for sym2, code2 := range codes {
			if sym1 != sym2 {
				require.False(t, hasPrefix(code2, code1), "%s of %q is a prefix of %s of %q",
					code1, rune(sym1), code2, rune(sym2))
			}
		}
	}
}

func generate(t *testing.T, text string) CodeTable {
	freq, err := Analyze(text)
	require.NoError(t, err)
	root, err := BuildTree(freq)
	require.NoError(t, err)
	codes, err := GenerateCodes(root)
	require.NoError(t, err)
	return codes
}

func TestGenerateCodes(t *testing.T) {
	codes := generate(t, "abracadabra")

	expected := map[Symbol]string{
		'a': "0",
		'c': "100",
		'd': "101",
		'b': "110",
		'r': "111",
	}
	require.Len(t, codes, len(expected))
	for sym, bits := range expected {
		code, err := parseCode(bits)
		require.NoError(t, err)
		require.Equal(t, code, codes[sym], "code of %q", sym)
	}
	require.NoError(t, codes.Validate())
}

func TestGenerateCodesSingleSymbol(t *testing.T) {
	codes := generate(t, "aaaa")
	require.Equal(t, CodeTable{'a': MakeCode(1, 0)}, codes)
}

func TestGenerateCodesPrefixFree(t *testing.T) {
	texts := []string{
		"ab",
		"aaaaaaaab",
		"the quick brown fox jumps over the lazy dog",
		"Съешь же ещё этих мягких французских булок, да выпей чаю",
		randomText(5000, 40),
	}
	for _, text := range texts {
		codes := generate(t, text)
		requirePrefixFree(t, codes)
		require.NoError(t, codes.Validate())
	}
}

func TestGenerateCodesTooLong(t *testing.T) {
	// Fibonacci weights produce a maximally deep tree.
	freq := FrequencyTable{}
	a, b := uint64(1), uint64(1)
	for sym := Symbol('A'); sym < 'A'+MaxCodeSize+2; sym++ {
		freq[sym] = a
		a, b = b, a+b
	}
	root, err := BuildTree(freq)
	require.NoError(t, err)
	_, err = GenerateCodes(root)
	require.ErrorIs(t, err, ErrCodeTooLong)
}

func TestCodeString(t *testing.T) {
	require.Equal(t, `""`, Code{}.String())
	require.Equal(t, `"0"`, MakeCode(1, 0).String())
	require.Equal(t, `"0101"`, MakeCode(4, 5).String())

	_, err := parseCode("")
	require.Error(t, err)
	_, err = parseCode("012")
	require.Error(t, err)
}

func TestCodeTableValidate(t *testing.T) {
	tests := []struct {
		name  string
		codes CodeTable
	}{
		{"empty table", CodeTable{}},
		{"empty code", CodeTable{'a': {}}},
		{"stray bits", CodeTable{'a': MakeCode(1, 2), 'b': MakeCode(1, 1)}},
		{"prefix", CodeTable{'a': MakeCode(1, 0), 'b': MakeCode(2, 1)}},
		{"extension", CodeTable{'a': MakeCode(2, 1), 'b': MakeCode(1, 0)}},
		{"duplicate", CodeTable{'a': MakeCode(2, 1), 'b': MakeCode(2, 1)}},
		{"surrogate", CodeTable{0xD800: MakeCode(1, 0)}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Error(t, test.codes.Validate())
		})
	}
}

func TestCodeTableDump(t *testing.T) {
	var buf strings.Builder
	_, err := generate(t, "aab").Dump(&buf)
	require.NoError(t, err)
	require.Equal(t, strings.Join([]string{
		"CodeTable{\n",
		"\t'a' (U+0061) = \"1\"\n",
		"\t'b' (U+0062) = \"0\"\n",
		"}\n",
	}, ""), buf.String())
}
