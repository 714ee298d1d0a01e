package corpus

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStripCarriageReturns(t *testing.T) {
	testCases := []struct {
		in, want string
	}{
		{"", ""},
		{"no returns\n", "no returns\n"},
		{"line one\r\nline two\r\n", "line one\nline two\n"},
		{"\r\r\r", ""},
		{"old\rmac", "oldmac"},
	}
	for _, tc := range testCases {
		if got := StripCarriageReturns(tc.in); got != tc.want {
			t.Errorf("StripCarriageReturns(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRead(t *testing.T) {
	got, err := Read(strings.NewReader("a\r\nb\r\n"))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got != "a\nb\n" {
		t.Errorf("Read() = %q, want %q", got, "a\nb\n")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.txt")
	if err := os.WriteFile(path, []byte("to be\r\nor not to be\r\n"), 0o644); err != nil {
		t.Fatalf("failed to write corpus: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != "to be\nor not to be\n" {
		t.Errorf("Load() = %q", got)
	}

	if _, err := Load(""); !errors.Is(err, ErrEmptySource) {
		t.Errorf("expected ErrEmptySource, got %v", err)
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected a not-exist error for a missing file, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "missing.txt") {
		t.Errorf("expected error to name the source, got %v", err)
	}
}
