// Package collision disambiguates curve mnemonics that repeat within one file.
package collision

import (
	"strconv"
	"strings"
)

// Tracker assigns every curve a unique label. The first curve carrying a
// mnemonic keeps it; later ones get "#2", "#3" and so on appended.
type Tracker struct {
	seen      map[string]int // mnemonic → occurrences so far
	labels    []string       // ordered list of assigned labels
	duplicate bool           // whether any mnemonic repeated
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		seen:   make(map[string]int),
		labels: make([]string, 0),
	}
}

// Track records the next curve's mnemonic and returns its unique label.
// Mnemonics are compared case-insensitively, as the header writers do not
// agree on case.
func (t *Tracker) Track(name string) string {
	key := strings.ToUpper(name)
	t.seen[key]++

	label := name
	if n := t.seen[key]; n > 1 {
		t.duplicate = true
		label = name + "#" + strconv.Itoa(n)
	}

	// a generated label can itself be a later mnemonic ("GR#2"); claim it too
	if label != name {
		t.seen[strings.ToUpper(label)]++
	}
	t.labels = append(t.labels, label)

	return label
}

// HasDuplicates returns true if any mnemonic was tracked more than once.
func (t *Tracker) HasDuplicates() bool {
	return t.duplicate
}

// Labels returns the assigned labels in tracking order.
func (t *Tracker) Labels() []string {
	return t.labels
}

// Count returns the number of tracked curves.
func (t *Tracker) Count() int {
	return len(t.labels)
}

// Reset clears all tracked curves so the tracker can serve another file.
func (t *Tracker) Reset() {
	clear(t.seen)
	t.labels = t.labels[:0]
	t.duplicate = false
}

// Labels returns unique labels for names in one call.
func Labels(names []string) []string {
	t := NewTracker()
	for _, name := range names {
		t.Track(name)
	}

	return t.Labels()
}
