package markov

import (
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
)

var (
	// ErrInvalidWindowLength is returned when a model is constructed with a
	// window length that is not positive.
	ErrInvalidWindowLength = errors.New("markov: window length must be positive")
	// ErrNoSeed is returned when generation is asked to continue from a seed
	// that was never supplied.
	ErrNoSeed = errors.New("markov: no seed text supplied")
	// ErrInvalidSeed is returned by GenerateStream when the seed is shorter
	// than the window or there is nothing to generate.
	ErrInvalidSeed = errors.New("markov: seed shorter than window or non-positive length")
)

// LanguageModel is a fixed-order character Markov chain. It maps every
// window of WindowLength characters seen during training to the
// Distribution of the characters that followed it.
//
// Train replaces any previously trained state; a model is never accumulated
// across calls.
type LanguageModel struct {
	windowLength int
	model        map[string]*Distribution
	rng          *rand.Rand
	logger       *slog.Logger
}

// modelOptions is used by NewLanguageModel to configure optional settings.
type modelOptions struct {
	seeded bool
	seed   int64
}

// ModelOption is a function that configures a LanguageModel at construction.
type ModelOption func(*modelOptions)

// WithSeed makes the model's random source deterministic. Two models built
// with the same seed and trained on the same corpus generate identical text
// for identical arguments. Without it the source is seeded randomly.
func WithSeed(seed int64) ModelOption {
	return func(o *modelOptions) {
		o.seeded = true
		o.seed = seed
	}
}

// NewLanguageModel creates an empty model with the given window length.
func NewLanguageModel(windowLength int, opts ...ModelOption) (*LanguageModel, error) {
	if windowLength <= 0 {
		return nil, ErrInvalidWindowLength
	}

	options := &modelOptions{}
	for _, opt := range opts {
		opt(options)
	}

	var src rand.Source
	if options.seeded {
		src = rand.NewPCG(uint64(options.seed), uint64(options.seed))
	} else {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}

	return &LanguageModel{
		windowLength: windowLength,
		model:        make(map[string]*Distribution),
		rng:          rand.New(src),
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// SetLogger sets the logger for the model. By default, all logs are discarded.
func (m *LanguageModel) SetLogger(logger *slog.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// WindowLength returns the fixed number of characters in each window.
func (m *LanguageModel) WindowLength() int {
	return m.windowLength
}

// Len returns the number of distinct windows in the model.
func (m *LanguageModel) Len() int {
	return len(m.model)
}

// Lookup returns a copy of the entries learned for window, in first-seen
// order. The boolean is false if the window was never observed.
func (m *LanguageModel) Lookup(window string) ([]CharFrequency, bool) {
	d, ok := m.model[window]
	if !ok {
		return nil, false
	}
	return d.Entries(), true
}

// Reset discards everything the model has learned. The random source is
// left untouched.
func (m *LanguageModel) Reset() {
	clear(m.model)
}
