package markov

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestGenerateStream(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful stream", func(t *testing.T) {
		m := newTrainedModel(t, 3, 1, "abcabcabcabc")
		stream, err := m.GenerateStream(ctx, "abc", 5)
		if err != nil {
			t.Fatalf("GenerateStream failed: %v", err)
		}

		var sb strings.Builder
		for c := range stream {
			sb.WriteRune(c)
		}
		if got := sb.String(); got != "abcab" {
			t.Errorf("expected stream to generate %q, but got %q", "abcab", got)
		}
	})

	t.Run("Matches Generate", func(t *testing.T) {
		a := newTrainedModel(t, 2, 99, testCorpus)
		b := newTrainedModel(t, 2, 99, testCorpus)

		stream, err := a.GenerateStream(ctx, "on", 150)
		if err != nil {
			t.Fatalf("GenerateStream failed: %v", err)
		}
		var sb strings.Builder
		sb.WriteString("on")
		for c := range stream {
			sb.WriteRune(c)
		}
		if want := b.Generate("on", 150); sb.String() != want {
			t.Errorf("stream output %q differs from Generate output %q", sb.String(), want)
		}
	})

	t.Run("Dead end closes stream", func(t *testing.T) {
		m := newTrainedModel(t, 2, 1, "abcd")
		stream, err := m.GenerateStream(ctx, "ab", 10)
		if err != nil {
			t.Fatalf("GenerateStream failed: %v", err)
		}
		var got []rune
		for c := range stream {
			got = append(got, c)
		}
		if string(got) != "cd" {
			t.Errorf("expected %q before dead end, got %q", "cd", string(got))
		}
	})

	t.Run("Invalid seed", func(t *testing.T) {
		m := newTrainedModel(t, 3, 1, "abcabc")
		if _, err := m.GenerateStream(ctx, "ab", 10); !errors.Is(err, ErrInvalidSeed) {
			t.Errorf("expected ErrInvalidSeed for short seed, got %v", err)
		}
		if _, err := m.GenerateStream(ctx, "abc", 0); !errors.Is(err, ErrInvalidSeed) {
			t.Errorf("expected ErrInvalidSeed for zero length, got %v", err)
		}
	})

	t.Run("Stream cancellation", func(t *testing.T) {
		m := newTrainedModel(t, 1, 1, "aaaa")
		ctxCancel, cancel := context.WithCancel(ctx)
		defer cancel()

		streamCancel, err := m.GenerateStream(ctxCancel, "a", 1_000_000)
		if err != nil {
			t.Fatalf("GenerateStream failed: %v", err)
		}

		// Read one character, then cancel
		<-streamCancel
		cancel()

		// The channel should now close quickly
		timeout := time.After(100 * time.Millisecond)
		for {
			select {
			case _, ok := <-streamCancel:
				if !ok {
					return // Success, channel is closed.
				}
			case <-timeout:
				t.Fatal("timed out waiting for stream channel to close after cancellation")
			}
		}
	})
}
