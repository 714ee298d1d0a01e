package markov

import (
	"go/build"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// newTrainedModel creates a seeded model with the given window length and
// trains it on corpus.
func newTrainedModel(t *testing.T, windowLength int, seed int64, corpus string) *LanguageModel {
	t.Helper()
	m, err := NewLanguageModel(windowLength, WithSeed(seed))
	if err != nil {
		t.Fatalf("NewLanguageModel() error = %v", err)
	}
	m.Train(corpus)
	return m
}

const testCorpus = "one fish two fish. red fish blue fish. this one has a little star. this one has a little car."

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = strings.Repeat("this is a fallback corpus for benchmarking. it is not very long but will prevent a crash. ", 50)
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}
