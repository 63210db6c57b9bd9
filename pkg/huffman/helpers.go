package huffman

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

func unexpectEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

func checkErr(err *error, err2 error) {
	if *err == nil {
		*err = err2
	}
}

func checkErrNoEOF(err *error, err2 error) {
	if *err == nil {
		*err = unexpectEOF(err2)
	}
}

func readFull(r io.Reader, buf []byte) error {
	if n, err := io.ReadFull(r, buf); n != len(buf) {
		return err
	}
	return nil
}

func writeFull(w io.Writer, buf []byte) error {
	n, err := w.Write(buf)
	if err == nil && n != len(buf) {
		err = io.ErrShortWrite
	}
	return err
}

func readBE(r io.Reader, data interface{}) error {
	return binary.Read(r, binary.BigEndian, data)
}

func writeBE(w io.Writer, data interface{}) error {
	return binary.Write(w, binary.BigEndian, data)
}

func readByte(r io.Reader, val *byte) error {
	var buf [1]byte
	if err := readFull(r, buf[:]); err != nil {
		return err
	}
	*val = buf[0]
	return nil
}

func writeIntAsUint8(w io.Writer, val int) error {
	if val < 0 || val > math.MaxUint8 {
		return errors.New("value does not fit into uint8")
	}
	return writeBE(w, uint8(val))
}

func writeIntAsUint32(w io.Writer, val int) error {
	if val < 0 || uint64(val) > math.MaxUint32 {
		return errors.New("value does not fit into uint32")
	}
	return writeBE(w, uint32(val))
}

// bytesForBits is the number of whole bytes needed to hold bits bits.
func bytesForBits(bits uint64) uint64 {
	return bits/8 + (bits%8+7)/8
}
