package tui

import "cmdhandler/internal/library"

// selection owns the focused index and the edit buffer. The list widget only
// renders; the cursor is pushed into it from here.
//
// States: empty (index == -1, buffer targets a new item) or valid(index).
type selection struct {
	snapshot library.Snapshot
	index    int
	buffer   string
}

func newSelection(s library.Snapshot) selection {
	var sel selection
	sel.Reset(s)
	return sel
}

// SetFocus moves focus to i and reloads the buffer from the entry there.
// Out-of-range indices are rejected without changing anything.
func (s *selection) SetFocus(i int) bool {
	if i < 0 || i >= len(s.snapshot) {
		return false
	}
	s.index = i
	s.buffer = s.snapshot[i]
	return true
}

// Rebuild swaps in a fresh snapshot, keeping the index when it is still in
// range and clamping to the last entry otherwise.
func (s *selection) Rebuild(snap library.Snapshot) {
	s.snapshot = snap.Clone()
	if len(s.snapshot) == 0 {
		s.index = -1
		s.buffer = ""
		return
	}
	i := s.index
	if i < 0 {
		i = 0
	}
	if i > len(s.snapshot)-1 {
		i = len(s.snapshot) - 1
	}
	s.SetFocus(i)
}

// Reset swaps in a snapshot with focus on the first entry.
func (s *selection) Reset(snap library.Snapshot) {
	s.index = -1
	s.Rebuild(snap)
}

func (s *selection) EditBuffer() string { return s.buffer }

func (s *selection) SetEditBuffer(text string) { s.buffer = text }

func (s *selection) Selected() (string, bool) {
	if s.index < 0 {
		return "", false
	}
	return s.snapshot[s.index], true
}

func (s *selection) Index() (int, bool) {
	if s.index < 0 {
		return 0, false
	}
	return s.index, true
}

func (s *selection) Len() int { return len(s.snapshot) }

func (s *selection) Snapshot() library.Snapshot { return s.snapshot.Clone() }
