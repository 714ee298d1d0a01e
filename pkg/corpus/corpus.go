// Package corpus reads training text for the markov package.
//
// Carriage returns are treated as noise and removed, so text written with
// CRLF line endings trains the same model as text written with LF.
package corpus

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// StdinSource is the source name that makes Load read standard input.
const StdinSource = "-"

// ErrEmptySource is returned by Load when no source is named.
var ErrEmptySource = errors.New("corpus: empty source")

// Read reads all of r and returns it with carriage returns removed.
func Read(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return StripCarriageReturns(string(data)), nil
}

// Load reads the corpus named by source: a file path, or StdinSource for
// standard input.
func Load(source string) (string, error) {
	switch source {
	case "":
		return "", ErrEmptySource
	case StdinSource:
		text, err := Read(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read corpus from stdin: %w", err)
		}
		return text, nil
	}

	file, err := os.Open(source)
	if err != nil {
		return "", fmt.Errorf("failed to open corpus %q: %w", source, err)
	}
	defer func(file *os.File) {
		_ = file.Close()
	}(file)

	text, err := Read(file)
	if err != nil {
		return "", fmt.Errorf("failed to read corpus %q: %w", source, err)
	}
	return text, nil
}

// StripCarriageReturns removes every '\r' from s.
func StripCarriageReturns(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	return strings.ReplaceAll(s, "\r", "")
}
