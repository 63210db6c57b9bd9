package huffman

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/icza/bitio"
)

// FormatVersion is the only archive version this package reads and writes.
const FormatVersion uint8 = 1

var archiveMagic = [4]byte{'H', 'U', 'F', 'Z'}

// Archive is the persisted form of a compressed text: the code table, the
// exact number of packed bits and the packed bytes themselves.
//
// Layout, integers big-endian:
//
//	magic "HUFZ" | version (1) | entry count (4)
//	entries: symbol length (1), UTF-8 symbol, code length (1), code bits
//	         MSB-first padded to whole bytes
//	bit length (8) | payload
type Archive struct {
	// Version is the format version ReadArchive found. WriteArchive
	// always writes FormatVersion.
	Version   uint8
	Codes     CodeTable
	BitLength uint64
	Payload   []byte
}

// Size returns the number of bytes WriteArchive produces for a.
func (a *Archive) Size() int {
	size := len(archiveMagic) + 1 + 4 + 8 + len(a.Payload)
	for sym, code := range a.Codes {
		size += 1 + utf8.RuneLen(rune(sym)) + 1 + int(bytesForBits(uint64(code.Size)))
	}
	return size
}

// WriteArchive serializes a to w. Entries are written in ascending symbol
// order so equal archives always produce equal bytes.
func WriteArchive(w io.Writer, a *Archive) error {
	if uint64(len(a.Payload)) != bytesForBits(a.BitLength) {
		return fmt.Errorf("payload has %d bytes, %d bits need %d",
			len(a.Payload), a.BitLength, bytesForBits(a.BitLength))
	}
	if err := a.Codes.Validate(); err != nil {
		return err
	}

	var err error
	checkErr(&err, writeFull(w, archiveMagic[:]))
	checkErr(&err, writeBE(w, FormatVersion))
	checkErr(&err, writeIntAsUint32(w, len(a.Codes)))
	for _, sym := range a.Codes.Symbols() {
		if err != nil {
			break
		}
		err = writeEntry(w, sym, a.Codes[sym])
	}
	checkErr(&err, writeBE(w, a.BitLength))
	checkErr(&err, writeFull(w, a.Payload))
	return err
}

func writeEntry(w io.Writer, sym Symbol, code Code) error {
	var symBuf [utf8.UTFMax]byte
	n := utf8.EncodeRune(symBuf[:], rune(sym))

	var bitsBuf bytes.Buffer
	bw := bitio.NewWriter(&bitsBuf)
	var err error
	checkErr(&err, bw.WriteBits(code.Bits, code.Size))
	checkErr(&err, bw.Close())
	checkErr(&err, writeIntAsUint8(w, n))
	checkErr(&err, writeFull(w, symBuf[:n]))
	checkErr(&err, writeBE(w, code.Size))
	checkErr(&err, writeFull(w, bitsBuf.Bytes()))
	return err
}

// ReadArchive parses an archive from r into a. Malformed input is reported
// as ErrCorruptArchive, an unknown magic or version as ErrUnsupportedFormat.
// r must end right after the payload.
func ReadArchive(r io.Reader, a *Archive) error {
	var err error
	var magic [4]byte
	if err = readFull(r, magic[:]); err != nil {
		return ioErr(err, "header")
	}
	if magic != archiveMagic {
		return unsupportedf("unknown magic %X", magic[:])
	}

	var version uint8
	var count uint32
	checkErrNoEOF(&err, readByte(r, &version))
	if err != nil {
		return ioErr(err, "header")
	}
	if version != FormatVersion {
		return unsupportedf("version %d, expected %d", version, FormatVersion)
	}
	checkErrNoEOF(&err, readBE(r, &count))
	if err != nil {
		return ioErr(err, "header")
	}
	if count == 0 {
		return corruptf("empty code table")
	}

	codes := make(CodeTable, minInt(int(count), 256))
	for i := uint32(0); i < count; i++ {
		if err = readEntry(r, codes); err != nil {
			return ioErr(err, fmt.Sprintf("code table entry %d", i))
		}
	}
	if err = codes.Validate(); err != nil {
		return corruptf("%v", err)
	}

	var bitLen uint64
	if err = unexpectEOF(readBE(r, &bitLen)); err != nil {
		return ioErr(err, "bit length")
	}
	need := bytesForBits(bitLen)
	if bitLen == 0 || need > math.MaxInt64 {
		return corruptf("invalid bit length %d", bitLen)
	}

	var payload bytes.Buffer
	if n, err := io.CopyN(&payload, r, int64(need)); err != nil {
		if errors.Is(err, io.EOF) {
			return corruptf("payload truncated to %d of %d bytes", n, need)
		}
		return err
	}
	var extra [1]byte
	if n, _ := r.Read(extra[:]); n > 0 {
		return corruptf("unexpected data after payload")
	}

	*a = Archive{Version: version, Codes: codes, BitLength: bitLen, Payload: payload.Bytes()}
	return nil
}

func readEntry(r io.Reader, codes CodeTable) error {
	var err error
	var symLen, codeLen uint8
	checkErrNoEOF(&err, readByte(r, &symLen))
	if err != nil {
		return err
	}
	if symLen == 0 || symLen > utf8.UTFMax {
		return corruptf("invalid symbol length %d", symLen)
	}

	symBuf := make([]byte, symLen)
	checkErrNoEOF(&err, readFull(r, symBuf))
	checkErrNoEOF(&err, readByte(r, &codeLen))
	if err != nil {
		return err
	}
	sym, size := utf8.DecodeRune(symBuf)
	if (sym == utf8.RuneError && size <= 1) || size != len(symBuf) {
		return corruptf("invalid symbol bytes %X", symBuf)
	}
	if codeLen == 0 || codeLen > MaxCodeSize {
		return corruptf("invalid code length %d for %q", codeLen, sym)
	}

	bitsBuf := make([]byte, bytesForBits(uint64(codeLen)))
	if err = unexpectEOF(readFull(r, bitsBuf)); err != nil {
		return err
	}
	bits, err := bitio.NewReader(bytes.NewReader(bitsBuf)).ReadBits(codeLen)
	if err != nil {
		return err
	}

	if _, ok := codes[Symbol(sym)]; ok {
		return corruptf("duplicate symbol %q", sym)
	}
	codes[Symbol(sym)] = MakeCode(codeLen, bits)
	return nil
}

// ioErr turns a short read inside the archive into ErrCorruptArchive and
// passes every other error through.
func ioErr(err error, what string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return corruptf("%s truncated", what)
	}
	return err
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
