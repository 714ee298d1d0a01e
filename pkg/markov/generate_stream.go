package markov

import (
	"context"
	"log/slog"
)

// GenerateStream continues seed like Generate, but delivers each generated
// character on the returned channel instead of building a string. The seed
// itself is not sent. The channel is closed once targetLength characters
// have been produced, a dead end is reached, or the context is cancelled.
//
// The model must not be used by anything else until the channel is closed.
func (m *LanguageModel) GenerateStream(ctx context.Context, seed string, targetLength int, opts ...GenerateOption) (<-chan rune, error) {
	window := []rune(seed)
	if targetLength <= 0 || len(window) < m.windowLength {
		return nil, ErrInvalidSeed
	}
	window = window[len(window)-m.windowLength:]
	options := newGenerateOptions(opts)

	charChan := make(chan rune)

	go func() {
		defer close(charChan)

		for generated := 0; generated < targetLength; generated++ {
			select {
			case <-ctx.Done():
				m.logger.DebugContext(ctx, "Generation stream cancelled by context")
				return
			default:
				// continue
			}

			key := string(window)
			d, ok := m.model[key]
			if !ok {
				m.logger.DebugContext(ctx, "Generation stream terminated due to dead-end",
					slog.String("last_window", key),
					slog.Int("generated_length", generated),
				)
				return
			}
			next := m.chooseNext(d, options)

			select {
			case <-ctx.Done():
				return
			case charChan <- next:
			}
			// Shift the window and add the new character.
			window = append(window[1:], next)
		}
	}()

	return charChan, nil
}
