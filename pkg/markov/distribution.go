package markov

import (
	"strconv"
	"strings"
)

// CharFrequency is a single observed next character within a window's
// Distribution. Probability and CumulativeProbability are zero until the
// owning Distribution has been normalized.
type CharFrequency struct {
	Char                  rune
	Count                 int
	Probability           float64
	CumulativeProbability float64
}

// String renders the entry as "(c count p cp)".
func (cf CharFrequency) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(escapeRune(cf.Char))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(cf.Count))
	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatFloat(cf.Probability, 'g', -1, 64))
	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatFloat(cf.CumulativeProbability, 'g', -1, 64))
	sb.WriteByte(')')
	return sb.String()
}

// Distribution is the ordered table of next characters observed after one
// window. Entries keep the order in which their characters were first seen,
// which is the order Sample scans them in.
type Distribution struct {
	entries []CharFrequency
}

// Record increments the count of c, appending a new entry with a count of 1
// if c has not been seen before.
func (d *Distribution) Record(c rune) {
	if i := d.indexOf(c); i >= 0 {
		d.entries[i].Count++
		return
	}
	d.entries = append(d.entries, CharFrequency{Char: c, Count: 1})
}

// Normalize computes the probability and cumulative probability of every
// entry from the accumulated counts. It is a no-op on an empty Distribution.
func (d *Distribution) Normalize() {
	total := d.Total()
	if total == 0 {
		return
	}
	var cumulative float64
	for i := range d.entries {
		d.entries[i].Probability = float64(d.entries[i].Count) / float64(total)
		cumulative += d.entries[i].Probability
		d.entries[i].CumulativeProbability = cumulative
	}
}

// Sample returns the character of the first entry whose cumulative
// probability exceeds u, where u is a uniform draw in [0, 1). If rounding
// left every cumulative probability at or below u, the first entry's
// character is returned. An empty Distribution yields 0.
func (d *Distribution) Sample(u float64) rune {
	if len(d.entries) == 0 {
		return 0
	}
	for _, e := range d.entries {
		if e.CumulativeProbability > u {
			return e.Char
		}
	}
	return d.entries[0].Char
}

// Len returns the number of distinct characters in the Distribution.
func (d *Distribution) Len() int {
	return len(d.entries)
}

// Total returns the sum of all counts.
func (d *Distribution) Total() int {
	var total int
	for _, e := range d.entries {
		total += e.Count
	}
	return total
}

// Get returns the entry for c, if present.
func (d *Distribution) Get(c rune) (CharFrequency, bool) {
	if i := d.indexOf(c); i >= 0 {
		return d.entries[i], true
	}
	return CharFrequency{}, false
}

// Entries returns a copy of the entries in first-seen order.
func (d *Distribution) Entries() []CharFrequency {
	out := make([]CharFrequency, len(d.entries))
	copy(out, d.entries)
	return out
}

// String renders the Distribution as "((a 2 0.5 0.5) (b 2 0.5 1))".
func (d *Distribution) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, e := range d.entries {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(e.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// indexOf is a linear scan; distributions are bounded by the alphabet size.
func (d *Distribution) indexOf(c rune) int {
	for i, e := range d.entries {
		if e.Char == c {
			return i
		}
	}
	return -1
}

// escapeRune keeps control characters from breaking the one-line dump format.
// Backslash is escaped too so `\n` and a newline render differently.
func escapeRune(r rune) string {
	switch r {
	case '\\':
		return `\\`
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	}
	return string(r)
}
