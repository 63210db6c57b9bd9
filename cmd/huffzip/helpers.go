package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...interface{}) error {
	return &exitError{code: exitUsage, err: fmt.Errorf(format, args...)}
}

// exitCode maps err to a process exit code. Errors that carry no code come
// from cobra rejecting the command line.
func exitCode(err error) int {
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return exitUsage
}

func checkInput(path, ext string) error {
	if !strings.EqualFold(filepath.Ext(path), ext) {
		return usageErrorf("input file %q must have %s extension", path, ext)
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return usageErrorf("input file %q does not exist", path)
		}
		return usageErrorf("cannot access input file: %s", err)
	}
	if info.IsDir() {
		return usageErrorf("input %q is a directory", path)
	}
	return nil
}

func checkOutput(path, input string, force bool) error {
	if filepath.Clean(path) == filepath.Clean(input) {
		return usageErrorf("output file %q is the same as input", path)
	}
	if _, err := os.Stat(path); err == nil && !force {
		return usageErrorf("output file %q already exists, use --force to overwrite it", path)
	}
	return nil
}

func swapExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it over path once everything is on disk, so path never holds a partial
// file.
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return err
	}
	if err = f.Chmod(perm); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func encodeASCII(src []uint8) string {
	var buf bytes.Buffer
	for _, b := range src {
		if b < 32 || b > 126 {
			buf.WriteRune('.')
		} else {
			buf.WriteByte(b)
		}
	}
	return buf.String()
}

func getHexDump(data []byte) string {
	var result strings.Builder
	offset := 0
	for offset < len(data) {
		chunkLen := len(data) - offset
		if chunkLen > 16 {
			chunkLen = 16
		}
		var chunk strings.Builder
		for i := 0; i < chunkLen; i++ {
			if i > 0 && i%8 == 0 {
				chunk.WriteByte(' ')
			}
			fmt.Fprintf(&chunk, "%02X ", data[offset+i])
		}
		fmt.Fprintf(&result, "%08X  %-49s |%s|\n", offset,
			chunk.String(), encodeASCII(data[offset:offset+chunkLen]))
		offset += chunkLen
	}
	fmt.Fprintf(&result, "%08X\n", offset)
	return result.String()
}
