package huffman

import (
	"bytes"

	"github.com/chronos-tachyon/assert"
)

// CompressArchive runs the compression pipeline over text and returns the
// archive without serializing it.
func CompressArchive(text string) (*Archive, error) {
	freq, err := Analyze(text)
	if err != nil {
		return nil, err
	}
	root, err := BuildTree(freq)
	if err != nil {
		return nil, err
	}
	codes, err := GenerateCodes(root)
	if err != nil {
		return nil, err
	}
	payload, bitLen, err := Pack(text, codes)
	if err != nil {
		return nil, err
	}
	assert.Assertf(bitLen == codes.BitLength(freq), "packed %d bits, code table predicts %d", bitLen, codes.BitLength(freq))
	return &Archive{Version: FormatVersion, Codes: codes, BitLength: bitLen, Payload: payload}, nil
}

// Compress turns a non-empty text into a serialized archive.
func Compress(text string) ([]byte, error) {
	a, err := CompressArchive(text)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(a.Size())
	if err := WriteArchive(&buf, a); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecompressArchive restores the text held by a.
func DecompressArchive(a *Archive) (string, error) {
	return Unpack(a.Payload, a.BitLength, a.Codes)
}

// Decompress parses a serialized archive and restores its text.
func Decompress(data []byte) (string, error) {
	var a Archive
	if err := ReadArchive(bytes.NewReader(data), &a); err != nil {
		return "", err
	}
	return DecompressArchive(&a)
}
