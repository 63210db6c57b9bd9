package huffman

import (
	"sort"
	"unicode/utf8"
)

// Symbol is a single character of the input alphabet.
type Symbol rune

// FrequencyTable maps every symbol seen in a text to its number of
// occurrences.
type FrequencyTable map[Symbol]uint64

// Analyze counts the symbols of text in a single pass.
func Analyze(text string) (FrequencyTable, error) {
	if len(text) == 0 {
		return nil, ErrEmptyInput
	}
	if !utf8.ValidString(text) {
		return nil, ErrInvalidText
	}

	freq := make(FrequencyTable)
	for _, r := range text {
		freq[Symbol(r)]++
	}
	return freq, nil
}

// Symbols returns the keys of the table in ascending order.
func (freq FrequencyTable) Symbols() []Symbol {
	symbols := make([]Symbol, 0, len(freq))
	for sym := range freq {
		symbols = append(symbols, sym)
	}
	return sortSymbols(symbols)
}

// Total is the sum of all counts, i.e. the length of the analyzed text in
// symbols.
func (freq FrequencyTable) Total() uint64 {
	var total uint64
	for _, count := range freq {
		total += count
	}
	return total
}

func sortSymbols(symbols []Symbol) []Symbol {
	sort.Slice(symbols, func(i, j int) bool {
		return symbols[i] < symbols[j]
	})
	return symbols
}
