package markov

import (
	"log/slog"
)

// Prune removes every entry whose count is less than or equal to minCount.
// This is useful for reducing a model to its common transitions by removing
// rare, and often noisy, ones. Windows left without entries are dropped and
// the remaining distributions are renormalized. It returns the number of
// entries removed.
func (m *LanguageModel) Prune(minCount int) int {
	var removed, windowsRemoved int
	for window, d := range m.model {
		kept := d.entries[:0]
		for _, e := range d.entries {
			if e.Count > minCount {
				kept = append(kept, e)
			} else {
				removed++
			}
		}
		d.entries = kept

		if len(d.entries) == 0 {
			delete(m.model, window)
			windowsRemoved++
			continue
		}
		d.Normalize()
	}

	m.logger.Info("Model pruned",
		slog.Int("window_length", m.windowLength),
		slog.Int("min_count", minCount),
		slog.Int("entries_removed", removed),
		slog.Int("windows_removed", windowsRemoved),
	)
	return removed
}
