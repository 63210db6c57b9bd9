package huffman

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func rand(seed *int) int {
	*seed = (*seed)*1103515245 + 12345
	return ((*seed) >> 0x10) & 0x7FFF
}

// randomText returns n characters drawn from an alphabet of the given size
// with a heavily skewed distribution.
func randomText(n int, alphabet int) string {
	var sb strings.Builder
	seed := n
	for i := 0; i < n; i++ {
		idx := (rand(&seed) % alphabet) * (rand(&seed) % alphabet) / alphabet
		sb.WriteRune(rune('!' + idx))
	}
	return sb.String()
}

func TestRoundTrip(t *testing.T) {
	texts := []string{
		"a",
		"aaaa",
		"ab",
		"abracadabra",
		"aaaaaaaab",
		"line one\nline two\r\n\ttabbed\x00nul",
		"héllo wörld ✓ 日本語 😀",
		strings.Repeat("ab", 1000) + "c",
		randomText(0x10000, 60),
	}
	for _, text := range texts {
		packed, err := Compress(text)
		require.NoError(t, err)
		unpacked, err := Decompress(packed)
		require.NoError(t, err)
		require.Equal(t, text, unpacked)
	}
}

func TestCompressSingleSymbol(t *testing.T) {
	a, err := CompressArchive("aaaa")
	require.NoError(t, err)
	require.Len(t, a.Codes, 1)
	require.Equal(t, uint8(1), a.Codes['a'].Size)
	require.Equal(t, uint64(4), a.BitLength)
}

func TestCompressionRatio(t *testing.T) {
	text := "aaaaaaaab"
	a, err := CompressArchive(text)
	require.NoError(t, err)
	require.Less(t, a.BitLength, uint64(8*len(text)))

	freq, err := Analyze(text)
	require.NoError(t, err)
	require.Equal(t, a.BitLength, a.Codes.BitLength(freq))
}

func TestCompressEmpty(t *testing.T) {
	packed, err := Compress("")
	require.ErrorIs(t, err, ErrEmptyInput)
	require.Nil(t, packed)
}

func TestCompressDeterministic(t *testing.T) {
	text := randomText(4096, 30) + "the quick brown fox"
	first, err := Compress(text)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		packed, err := Compress(text)
		require.NoError(t, err)
		require.True(t, bytes.Equal(first, packed))
	}
}

func TestDecompressTruncated(t *testing.T) {
	texts := []string{"aaaa", "abracadabra", "héllo wörld ✓ 日本語 😀"}
	for _, text := range texts {
		packed, err := Compress(text)
		require.NoError(t, err)
		for n := 0; n < len(packed); n++ {
			_, err := Decompress(packed[:n])
			require.ErrorIs(t, err, ErrCorruptArchive, "%q truncated to %d bytes", text, n)
		}
	}
}
