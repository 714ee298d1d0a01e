package markov

import (
	"log/slog"
)

// Train builds the model from corpus, replacing anything learned before.
// Every run of WindowLength characters is recorded together with the
// character that follows it, and each resulting Distribution is normalized
// once the whole corpus has been scanned. A corpus no longer than the window
// leaves the model empty.
//
// Carriage returns are treated as content here; callers reading text from
// files are expected to strip them first (see package corpus).
func (m *LanguageModel) Train(corpus string) {
	m.Reset()

	text := []rune(corpus)
	if len(text) <= m.windowLength {
		m.logger.Debug("Corpus too short to train",
			slog.Int("window_length", m.windowLength),
			slog.Int("corpus_length", len(text)),
		)
		return
	}

	for i := 0; i+m.windowLength < len(text); i++ {
		window := string(text[i : i+m.windowLength])
		next := text[i+m.windowLength]

		d, ok := m.model[window]
		if !ok {
			d = &Distribution{}
			m.model[window] = d
		}
		d.Record(next)
	}

	var transitions int
	for _, d := range m.model {
		d.Normalize()
		transitions += d.Len()
	}

	m.logger.Info("Training completed",
		slog.Int("window_length", m.windowLength),
		slog.Int("corpus_length", len(text)),
		slog.Int("windows", len(m.model)),
		slog.Int("transitions", transitions),
	)
}
