// Package huffman implements lossless compression of text with Huffman
// codes and the self-contained archive format that carries the code table
// next to the packed bits.
//
// Compression runs Analyze, BuildTree, GenerateCodes, Pack and WriteArchive
// in that order. Decompression runs ReadArchive and Unpack. Compress and
// Decompress wrap the whole pipeline.
package huffman
