// Package results collects per-file timestamp pairs and orders them for output.
package results

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ccollicutt/logspan/pkg/scanner"
)

// ErrInvalidSortKey is returned by ParseSortKey for unknown keys.
var ErrInvalidSortKey = errors.New("invalid sort order")

// SortKey selects the column results are ordered by.
type SortKey string

const (
	SortFilename SortKey = "FILENAME"
	SortFirst    SortKey = "FIRST"
	SortLast     SortKey = "LAST"
)

// DefaultSortKey is used when no key is given.
const DefaultSortKey = SortFilename

// ParseSortKey converts FILENAME, FIRST or LAST into a SortKey.
// An empty string yields DefaultSortKey.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case "":
		return DefaultSortKey, nil
	case SortFilename, SortFirst, SortLast:
		return SortKey(s), nil
	default:
		return "", fmt.Errorf("%w %q (use FILENAME, FIRST, or LAST)", ErrInvalidSortKey, s)
	}
}

func (k SortKey) String() string {
	return string(k)
}

// Pair is the first and last timestamp found in one file.
type Pair struct {
	First scanner.Match `json:"first"`
	Last  scanner.Match `json:"last"`
}

// Entry is a Pair together with the file it came from.
type Entry struct {
	Filename string `json:"filename"`
	Pair
}

// Set maps filenames to pairs, remembering insertion order.
type Set struct {
	order []string
	pairs map[string]Pair
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{pairs: make(map[string]Pair)}
}

// Add records the pair for filename. Adding a filename again replaces its
// pair but keeps its original position.
func (s *Set) Add(filename string, p Pair) {
	if _, ok := s.pairs[filename]; !ok {
		s.order = append(s.order, filename)
	}
	s.pairs[filename] = p
}

// Get returns the pair stored for filename.
func (s *Set) Get(filename string) (Pair, bool) {
	p, ok := s.pairs[filename]
	return p, ok
}

// Len returns the number of files in the set.
func (s *Set) Len() int {
	return len(s.order)
}

// Entries returns the entries in insertion order.
func (s *Set) Entries() []Entry {
	entries := make([]Entry, 0, len(s.order))
	for _, name := range s.order {
		entries = append(entries, Entry{Filename: name, Pair: s.pairs[name]})
	}
	return entries
}

// Sorted returns the entries ordered by key. FIRST and LAST compare the
// matched text as plain strings, with NoMatch ordering before any match,
// and break ties by filename. The set itself is not modified.
func (s *Set) Sorted(key SortKey) []Entry {
	entries := s.Entries()

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		c := 0
		switch key {
		case SortFirst:
			c = compareMatch(a.First, b.First)
		case SortLast:
			c = compareMatch(a.Last, b.Last)
		}
		if c != 0 {
			return c < 0
		}
		return a.Filename < b.Filename
	})

	return entries
}

// compareMatch orders NoMatch before every match, including a match of "",
// and matches by their text.
func compareMatch(a, b scanner.Match) int {
	if a.Found != b.Found {
		if !a.Found {
			return -1
		}
		return 1
	}
	return strings.Compare(a.Text, b.Text)
}
