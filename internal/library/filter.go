package library

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Snapshot is an ordered copy of the library's command texts, newest first.
// Callers own the slice; the store never hands out a live view.
type Snapshot []string

// Clone returns an independent copy.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	out := make(Snapshot, len(s))
	copy(out, s)
	return out
}

// IsBlankQuery reports whether q means "no filter".
func IsBlankQuery(q string) bool {
	return strings.TrimSpace(q) == ""
}

// Filter returns the entries of s that contain query as a substring, in order.
// Matching is case-sensitive. A blank query returns a copy of s.
func Filter(s Snapshot, query string) Snapshot {
	if IsBlankQuery(query) {
		return s.Clone()
	}
	q := strings.TrimSpace(query)
	out := Snapshot{}
	for _, text := range s {
		if strings.Contains(text, q) {
			out = append(out, text)
		}
	}
	return out
}

// FilterOrAll filters s and falls back to the whole snapshot when nothing
// matched. The bool reports whether the filtered view is in effect.
func FilterOrAll(s Snapshot, query string) (Snapshot, bool) {
	if IsBlankQuery(query) {
		return s.Clone(), false
	}
	got := Filter(s, query)
	if len(got) == 0 {
		return s.Clone(), false
	}
	return got, true
}

// Fuzzy returns the entries of s that fuzzy-match query, best match first.
func Fuzzy(s Snapshot, query string) Snapshot {
	if IsBlankQuery(query) {
		return s.Clone()
	}
	matches := fuzzy.Find(strings.TrimSpace(query), []string(s))
	out := make(Snapshot, 0, len(matches))
	for _, m := range matches {
		out = append(out, s[m.Index])
	}
	return out
}

// Mode selects the matcher used by Search.
type Mode string

const (
	ModeSubstring Mode = "substring"
	ModeFuzzy     Mode = "fuzzy"
)

// Search applies the matcher for mode with the empty-result fallback.
func Search(s Snapshot, query string, mode Mode) (Snapshot, bool) {
	if mode != ModeFuzzy {
		return FilterOrAll(s, query)
	}
	if IsBlankQuery(query) {
		return s.Clone(), false
	}
	got := Fuzzy(s, query)
	if len(got) == 0 {
		return s.Clone(), false
	}
	return got, true
}
