// Package textenc converts text files between their on-disk charset and the
// Unicode text the codec works on.
package textenc

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultCharset is used when no charset is given.
const DefaultCharset = "utf-8"

var (
	// ErrUnknownCharset is returned by Lookup for labels it does not know.
	ErrUnknownCharset = errors.New("unknown charset")
	// ErrInvalidText means the bytes or characters do not fit the charset.
	ErrInvalidText = errors.New("invalid text")
)

// Charset is a named text encoding.
type Charset struct {
	name string
	enc  encoding.Encoding
}

// Lookup finds a charset by any of its WHATWG labels, e.g. "utf-8",
// "windows-1251" or "koi8-r". An empty name means DefaultCharset.
func Lookup(label string) (*Charset, error) {
	if label == "" {
		label = DefaultCharset
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, label)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, label)
	}
	return &Charset{name: name, enc: enc}, nil
}

// Name returns the canonical name of the charset.
func (cs *Charset) Name() string {
	return cs.name
}

func (cs *Charset) isUTF8() bool {
	return cs.name == DefaultCharset
}

// Decode converts data in this charset to text. Bytes the charset leaves
// unassigned are an error, as is anything that would not encode back to
// the same bytes.
func (cs *Charset) Decode(data []byte) (string, error) {
	if cs.isUTF8() {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: not valid UTF-8", ErrInvalidText)
		}
		return string(data), nil
	}
	out, err := cs.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidText, cs.name, err)
	}
	back, err := cs.enc.NewEncoder().Bytes(out)
	if err != nil || !bytes.Equal(back, data) {
		return "", fmt.Errorf("%w: data is not valid %s", ErrInvalidText, cs.name)
	}
	return string(out), nil
}

// Encode converts text to this charset. Characters the charset cannot
// represent are an error.
func (cs *Charset) Encode(text string) ([]byte, error) {
	if cs.isUTF8() {
		return []byte(text), nil
	}
	out, err := cs.enc.NewEncoder().String(text)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot represent text in %s: %v", ErrInvalidText, cs.name, err)
	}
	return []byte(out), nil
}
