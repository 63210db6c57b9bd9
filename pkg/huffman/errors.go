package huffman

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when there is no text to compress.
	ErrEmptyInput = errors.New("huffman: empty input")
	// ErrInvalidText is returned for text that is not valid UTF-8.
	ErrInvalidText = errors.New("huffman: text is not valid UTF-8")
	// ErrInvalidFrequencyTable is returned for an empty table, a zero
	// count or an empty tree.
	ErrInvalidFrequencyTable = errors.New("huffman: invalid frequency table")
	// ErrCodeTooLong is returned when a leaf lies deeper than MaxCodeSize.
	ErrCodeTooLong = errors.New("huffman: code is longer than 64 bits")
	// ErrUnknownSymbol is returned by Pack for characters missing from
	// the code table.
	ErrUnknownSymbol = errors.New("huffman: symbol has no code")
	// ErrCorruptArchive covers truncated, malformed or inconsistent
	// archives.
	ErrCorruptArchive = errors.New("huffman: corrupt archive")
	// ErrUnsupportedFormat is returned for an unknown magic or version.
	ErrUnsupportedFormat = errors.New("huffman: unsupported archive format")
)

func corruptf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrCorruptArchive, fmt.Sprintf(format, args...))
}

func unsupportedf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, fmt.Sprintf(format, args...))
}
