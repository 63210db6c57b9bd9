package huffman

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/chronos-tachyon/assert"
)

// MaxCodeSize is the longest code GenerateCodes produces and ReadArchive
// accepts.
const MaxCodeSize = 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size uint8

	// Bits holds the values of the bits. The most significant of the Size
	// low bits is the first bit.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size uint8, bits uint64) Code {
	return Code{Size: size, Bits: bits}
}

// Bit returns the i-th bit of the code, counting from the first one.
func (c Code) Bit(i uint8) uint64 {
	return (c.Bits >> (c.Size - 1 - i)) & 1
}

// String returns the code as a quoted bit string.
func (c Code) String() string {
	if c.Size == 0 {
		return "\"\""
	}
	format := "%0" + strconv.FormatUint(uint64(c.Size), 10) + "b"
	return strconv.Quote(fmt.Sprintf(format, c.Bits))
}

var _ fmt.Stringer = Code{}

func (c Code) appendBit(bit uint64) Code {
	return Code{Size: c.Size + 1, Bits: c.Bits<<1 | bit}
}

func (c Code) valid() bool {
	if c.Size == 0 || c.Size > MaxCodeSize {
		return false
	}
	return c.Size == MaxCodeSize || c.Bits>>c.Size == 0
}

// CodeTable maps every symbol of a text to its code.
type CodeTable map[Symbol]Code

// GenerateCodes walks the tree and assigns each leaf the path leading to
// it, 0 for left and 1 for right. A root that is itself a leaf gets the
// code "0".
func GenerateCodes(root *Node) (CodeTable, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: empty tree", ErrInvalidFrequencyTable)
	}

	codes := make(CodeTable)
	if root.IsLeaf() {
		codes[root.Symbol] = MakeCode(1, 0)
		return codes, nil
	}
	if err := assignCodes(root, Code{}, codes); err != nil {
		return nil, err
	}
	return codes, nil
}

func assignCodes(n *Node, prefix Code, codes CodeTable) error {
	if n.IsLeaf() {
		codes[n.Symbol] = prefix
		return nil
	}

	assert.Assertf(n.Left != nil && n.Right != nil, "internal node with a single child")
	assert.Assertf(n.Freq == n.Left.Freq+n.Right.Freq,
		"node frequency %d != %d + %d", n.Freq, n.Left.Freq, n.Right.Freq)
	if prefix.Size == MaxCodeSize {
		return ErrCodeTooLong
	}

	if err := assignCodes(n.Left, prefix.appendBit(0), codes); err != nil {
		return err
	}
	return assignCodes(n.Right, prefix.appendBit(1), codes)
}

// Symbols returns the keys of the table in ascending order.
func (t CodeTable) Symbols() []Symbol {
	symbols := make([]Symbol, 0, len(t))
	for sym := range t {
		symbols = append(symbols, sym)
	}
	return sortSymbols(symbols)
}

// Validate checks that the table is not empty, that every code is
// non-empty and that no code is a prefix of another.
func (t CodeTable) Validate() error {
	_, err := newDecodeTree(t)
	return err
}

// BitLength returns the number of bits freq's text takes once packed with
// this table.
func (t CodeTable) BitLength(freq FrequencyTable) uint64 {
	var bits uint64
	for sym, count := range freq {
		bits += count * uint64(t[sym].Size)
	}
	return bits
}

// Dump writes a programmer-readable listing of the table to w.
func (t CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	for _, sym := range t.Symbols() {
		fmt.Fprintf(&buf, "\t%q (%U) = %s\n", rune(sym), rune(sym), t[sym])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
