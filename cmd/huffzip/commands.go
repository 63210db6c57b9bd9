package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/ei-projects/huffzip/pkg/huffman"
	"github.com/ei-projects/huffzip/pkg/textenc"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	textExt    = ".txt"
	archiveExt = ".huf"
)

func addFileFlags(cmd *cobra.Command, inputExt string) {
	cmd.Flags().StringP("input", "i", "", "Input file, must end with "+inputExt)
	cmd.Flags().StringP("output", "o", "", "Output file (default: input with the extension swapped)")
	cmd.Flags().String("charset", textenc.DefaultCharset, "Charset of the text file")
	cmd.Flags().BoolP("force", "f", false, "Overwrite the output file if it exists")
	cmd.MarkFlagRequired("input")
}

type fileArgs struct {
	input   string
	output  string
	charset *textenc.Charset
}

func parseFileArgs(cmd *cobra.Command, inputExt, outputExt string) (*fileArgs, error) {
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	charsetName, _ := cmd.Flags().GetString("charset")
	force, _ := cmd.Flags().GetBool("force")

	if err := checkInput(input, inputExt); err != nil {
		return nil, err
	}
	if output == "" {
		output = swapExt(input, outputExt)
	}
	if err := checkOutput(output, input, force); err != nil {
		return nil, err
	}
	charset, err := textenc.Lookup(charsetName)
	if err != nil {
		return nil, usageErrorf("%s", err)
	}
	return &fileArgs{input: input, output: output, charset: charset}, nil
}

func newCompressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compress --input <file.txt>",
		Short: "Compress a text file into a " + archiveExt + " archive",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			fa, err := parseFileArgs(cmd, textExt, archiveExt)
			if err != nil {
				return err
			}
			return failure(compressFile(fa))
		},
	}
	addFileFlags(cmd, textExt)
	return cmd
}

func newDecompressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decompress --input <file.huf>",
		Short: "Restore a text file from a " + archiveExt + " archive",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			fa, err := parseFileArgs(cmd, archiveExt, textExt)
			if err != nil {
				return err
			}
			return failure(decompressFile(fa))
		},
	}
	addFileFlags(cmd, archiveExt)
	return cmd
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect --input <file.huf>",
		Short: "Print the code table and sizes of an archive",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			hexDump, _ := cmd.Flags().GetBool("hex")
			if err := checkInput(input, archiveExt); err != nil {
				return err
			}
			return failure(inspectFile(cmd, input, hexDump))
		},
	}
	cmd.Flags().StringP("input", "i", "", "Archive to inspect")
	cmd.Flags().Bool("hex", false, "Also print a hex dump of the archive")
	cmd.MarkFlagRequired("input")
	return cmd
}

func compressFile(fa *fileArgs) error {
	data, err := os.ReadFile(fa.input)
	if err != nil {
		return err
	}
	text, err := fa.charset.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", fa.input, err)
	}

	archive, err := huffman.CompressArchive(text)
	if err != nil {
		return fmt.Errorf("failed to compress %s: %w", fa.input, err)
	}
	logCodeTable(archive.Codes)

	var buf bytes.Buffer
	if err := huffman.WriteArchive(&buf, archive); err != nil {
		return fmt.Errorf("failed to serialize archive: %w", err)
	}
	header := buf.Len() - len(archive.Payload)
	log.Debugf("Archive header:\n%s", getHexDump(buf.Bytes()[:header]))

	if err := writeFileAtomic(fa.output, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", fa.output, err)
	}
	log.Infof("Compressed %s (%d bytes, %s) into %s (%d bytes, %.1f%%)",
		fa.input, len(data), fa.charset.Name(), fa.output, buf.Len(), ratio(buf.Len(), len(data)))
	return nil
}

func decompressFile(fa *fileArgs) error {
	data, err := os.ReadFile(fa.input)
	if err != nil {
		return err
	}

	var archive huffman.Archive
	if err := huffman.ReadArchive(bytes.NewReader(data), &archive); err != nil {
		return fmt.Errorf("failed to read %s: %w", fa.input, err)
	}
	logCodeTable(archive.Codes)

	text, err := huffman.DecompressArchive(&archive)
	if err != nil {
		return fmt.Errorf("failed to decompress %s: %w", fa.input, err)
	}
	out, err := fa.charset.Encode(text)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(fa.output, out, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", fa.output, err)
	}
	log.Infof("Decompressed %s (%d bytes) into %s (%d bytes, %s)",
		fa.input, len(data), fa.output, len(out), fa.charset.Name())
	return nil
}

func inspectFile(cmd *cobra.Command, input string, hexDump bool) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	var archive huffman.Archive
	if err := huffman.ReadArchive(bytes.NewReader(data), &archive); err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-16s %d\n", "Format version:", archive.Version)
	fmt.Fprintf(w, "%-16s %d\n", "Symbols:", len(archive.Codes))
	fmt.Fprintf(w, "%-16s %d\n", "Bit length:", archive.BitLength)
	fmt.Fprintf(w, "%-16s %d\n", "Payload bytes:", len(archive.Payload))
	fmt.Fprintf(w, "%-16s %d\n", "Archive bytes:", len(data))
	if _, err := archive.Codes.Dump(w); err != nil {
		return err
	}
	if hexDump {
		fmt.Fprint(w, getHexDump(data))
	}
	return nil
}

func logCodeTable(codes huffman.CodeTable) {
	if !log.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	var buf bytes.Buffer
	codes.Dump(&buf)
	log.Debugf("%d symbols:\n%s", len(codes), buf.String())
}

func ratio(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return 100 * float64(part) / float64(whole)
}

// failure marks errors returned after the arguments were accepted.
func failure(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return err
	}
	return &exitError{code: exitFailure, err: err}
}
