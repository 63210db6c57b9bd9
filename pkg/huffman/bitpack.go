package huffman

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/icza/bitio"
)

// Pack concatenates the codes of the symbols of text, most significant bit
// first, and pads the last byte with zero bits. It returns the packed bytes
// and the number of meaningful bits in them.
func Pack(text string, codes CodeTable) ([]byte, uint64, error) {
	if !utf8.ValidString(text) {
		return nil, 0, ErrInvalidText
	}

	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	var bitLen uint64
	for _, r := range text {
		code, ok := codes[Symbol(r)]
		if !ok || code.Size == 0 {
			return nil, 0, fmt.Errorf("%w: %q", ErrUnknownSymbol, r)
		}
		if err := bw.WriteBits(code.Bits, code.Size); err != nil {
			return nil, 0, err
		}
		bitLen += uint64(code.Size)
	}
	if err := bw.Close(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), bitLen, nil
}

// Unpack decodes the first bitLen bits of data with codes. Padding bits
// past bitLen are never read. data must be exactly as long as bitLen
// requires, and the bits must end on a code boundary.
func Unpack(data []byte, bitLen uint64, codes CodeTable) (string, error) {
	if need := bytesForBits(bitLen); uint64(len(data)) != need {
		return "", corruptf("payload has %d bytes, %d bits need %d", len(data), bitLen, need)
	}
	root, err := newDecodeTree(codes)
	if err != nil {
		return "", corruptf("%v", err)
	}

	var sb strings.Builder
	br := bitio.NewReader(bytes.NewReader(data))
	cur, pending := root, 0
	for i := uint64(0); i < bitLen; i++ {
		bit, err := br.ReadBool()
		if err != nil {
			return "", corruptf("reading bit %d: %v", i, err)
		}
		if bit {
			cur = cur.next[1]
		} else {
			cur = cur.next[0]
		}
		if cur == nil {
			return "", corruptf("bits ending at %d match no code", i)
		}
		pending++
		if cur.terminal {
			sb.WriteRune(rune(cur.symbol))
			cur, pending = root, 0
		}
	}
	if pending > 0 {
		return "", corruptf("%d trailing bits do not form a code", pending)
	}
	return sb.String(), nil
}

// decodeNode is a node of the binary trie that maps codes back to symbols.
type decodeNode struct {
	next     [2]*decodeNode
	symbol   Symbol
	terminal bool
}

func newDecodeTree(codes CodeTable) (*decodeNode, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("empty code table")
	}

	root := new(decodeNode)
	for _, sym := range codes.Symbols() {
		code := codes[sym]
		if !utf8.ValidRune(rune(sym)) {
			return nil, fmt.Errorf("symbol %U is not a valid character", rune(sym))
		}
		if !code.valid() {
			return nil, fmt.Errorf("symbol %q has invalid code (size %d)", rune(sym), code.Size)
		}

		cur := root
		for i := uint8(0); i < code.Size; i++ {
			if cur.terminal {
				return nil, fmt.Errorf("code %s of %q extends the code of %q", code, rune(sym), rune(cur.symbol))
			}
			bit := code.Bit(i)
			if cur.next[bit] == nil {
				cur.next[bit] = new(decodeNode)
			}
			cur = cur.next[bit]
		}
		if cur.terminal {
			return nil, fmt.Errorf("code %s is shared by %q and %q", code, rune(cur.symbol), rune(sym))
		}
		if cur.next[0] != nil || cur.next[1] != nil {
			return nil, fmt.Errorf("code %s of %q is a prefix of another code", code, rune(sym))
		}
		cur.terminal = true
		cur.symbol = sym
	}
	return root, nil
}
