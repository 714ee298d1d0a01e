package markov

// ModelStats holds aggregated statistics for a trained LanguageModel.
type ModelStats struct {
	WindowLength int `json:"window_length"` // The number of characters in each window
	Windows      int `json:"windows"`       // The number of distinct windows observed
	Transitions  int `json:"transitions"`   // The number of unique window->next character links
	Observations int `json:"observations"`  // The sum of all counts; the number of trained transitions
	Alphabet     int `json:"alphabet"`      // The number of distinct characters that follow any window
}

// Stats returns a snapshot of statistics for the model.
func (m *LanguageModel) Stats() ModelStats {
	alphabet := make(map[rune]struct{})
	stats := ModelStats{
		WindowLength: m.windowLength,
		Windows:      len(m.model),
	}
	for _, d := range m.model {
		stats.Transitions += d.Len()
		for _, e := range d.entries {
			stats.Observations += e.Count
			alphabet[e.Char] = struct{}{}
		}
	}
	stats.Alphabet = len(alphabet)
	return stats
}
