package markov

import (
	"bufio"
	"io"
	"slices"
	"strings"
)

// Dump writes a textual rendering of the model to w, one line per window:
//
//	window : ((c count p cp) ...)
//
// Windows are written in sorted order. Backslashes, line breaks and tabs
// inside a window are escaped. The format is meant for inspection and is not stable.
func (m *LanguageModel) Dump(w io.Writer) error {
	windows := make([]string, 0, len(m.model))
	for window := range m.model {
		windows = append(windows, window)
	}
	slices.Sort(windows)

	bw := bufio.NewWriter(w)
	for _, window := range windows {
		_, _ = bw.WriteString(escapeWindow(window))
		_, _ = bw.WriteString(" : ")
		_, _ = bw.WriteString(m.model[window].String())
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// String returns the same rendering as Dump.
func (m *LanguageModel) String() string {
	var sb strings.Builder
	_ = m.Dump(&sb)
	return sb.String()
}

func escapeWindow(window string) string {
	if !strings.ContainsAny(window, "\\\n\t\r") {
		return window
	}
	var sb strings.Builder
	for _, r := range window {
		sb.WriteString(escapeRune(r))
	}
	return sb.String()
}
