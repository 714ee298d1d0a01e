package markov

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"
	"sort"
)

// generateOptions Is used by the generate functions to configure default options.
type generateOptions struct {
	temperature float64
	topK        int
}

// GenerateOption is a function that configures generation parameters. It's used
// as a variadic argument in generation functions like Generate and GenerateStream.
type GenerateOption func(*generateOptions)

// WithTemperature adjusts the randomness of the character selection.
// A value of 1.0 is standard weighted random selection.
// Values > 1.0 increase randomness (making less frequent characters more likely).
// Values < 1.0 decrease randomness (making more frequent characters even more likely).
// A value of 0 or less results in deterministic selection (always choosing the
// most frequent character, the first seen one on ties).
func WithTemperature(t float64) GenerateOption {
	return func(o *generateOptions) { o.temperature = t }
}

// WithTopK restricts the selection pool to the `k` most frequent characters
// at each step. A value of 0 disables Top-K sampling.
func WithTopK(k int) GenerateOption {
	return func(o *generateOptions) { o.topK = k }
}

func newGenerateOptions(opts []GenerateOption) *generateOptions {
	options := &generateOptions{
		temperature: 1.0,
		topK:        0,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// Generate continues seed by up to targetLength characters and returns the
// seed followed by the generated text. Generation stops early, without
// error, as soon as the trailing window has never been observed.
//
// If targetLength is not positive, or seed is shorter than the window, seed
// is returned unchanged.
func (m *LanguageModel) Generate(seed string, targetLength int, opts ...GenerateOption) string {
	history := []rune(seed)
	if targetLength <= 0 || len(history) < m.windowLength {
		return seed
	}
	options := newGenerateOptions(opts)

	// Windows come from the rune view of seed, but the seed bytes are
	// returned untouched so invalid UTF-8 is not rewritten.
	history = slices.Grow(history, targetLength)
	generated := make([]rune, 0, targetLength)
	for len(generated) < targetLength {
		window := string(history[len(history)-m.windowLength:])
		d, ok := m.model[window]
		if !ok { // Dead end in chain
			m.logger.Debug("Generation terminated due to dead-end",
				slog.String("last_window", window),
				slog.Int("generated_length", len(generated)),
			)
			break
		}
		next := m.chooseNext(d, options)
		history = append(history, next)
		generated = append(generated, next)
	}

	if len(generated) == targetLength {
		m.logger.Debug("Generation terminated by reaching target length",
			slog.Int("target_length", targetLength),
		)
	}

	return seed + string(generated)
}

// GenerateFromStream reads the seed text from r and continues it as
// Generate does. A nil reader means no seed was supplied and yields
// ErrNoSeed rather than generating from empty text.
func (m *LanguageModel) GenerateFromStream(r io.Reader, targetLength int, opts ...GenerateOption) (string, error) {
	if r == nil {
		return "", ErrNoSeed
	}
	seed, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read seed: %w", err)
	}
	return m.Generate(string(seed), targetLength, opts...), nil
}

// chooseNext abstracts the character selection logic from the generation loop.
// With default options it is a single cumulative-probability draw.
func (m *LanguageModel) chooseNext(d *Distribution, options *generateOptions) rune {
	if options.temperature == 1.0 && (options.topK <= 0 || options.topK >= d.Len()) {
		return d.Sample(m.rng.Float64())
	}

	choices := d.Entries()

	// topK filtering
	if options.topK > 0 && options.topK < len(choices) {
		sort.SliceStable(choices, func(i, j int) bool {
			return choices[i].Count > choices[j].Count
		})
		choices = choices[:options.topK]
	}

	// temperature selection
	if options.temperature <= 0 { // Deterministic
		best := choices[0]
		for _, choice := range choices[1:] {
			if choice.Count > best.Count {
				best = choice
			}
		}
		return best.Char
	}

	weights := make([]float64, len(choices))
	if options.temperature == 1.0 {
		for i, choice := range choices {
			weights[i] = float64(choice.Count)
		}
	} else { // Temperature-based sampling
		maxLog := math.Inf(-1)
		for i, choice := range choices {
			lp := math.Log(float64(choice.Count)) / options.temperature
			weights[i] = lp
			if lp > maxLog {
				maxLog = lp
			}
		}
		for i, lp := range weights {
			weights[i] = math.Exp(lp - maxLog)
		}
	}
	return sampleWeighted(choices, weights, m.rng.Float64())
}

// sampleWeighted scans choices subtracting weights from u scaled to the
// total weight. Falls back to the first choice like Distribution.Sample.
func sampleWeighted(choices []CharFrequency, weights []float64, u float64) rune {
	var total float64
	for _, w := range weights {
		total += w
	}
	r := u * total
	for i, choice := range choices {
		r -= weights[i]
		if r < 0 {
			return choice.Char
		}
	}
	return choices[0].Char
}
