package tui

import (
	"testing"

	"cmdhandler/internal/library"
)

func TestSelectionSetFocus(t *testing.T) {
	t.Parallel()
	s := newSelection(library.Snapshot{"a", "b", "c"})

	if i, ok := s.Index(); !ok || i != 0 || s.EditBuffer() != "a" {
		t.Fatalf("initial = (%d,%v,%q)", i, ok, s.EditBuffer())
	}
	if !s.SetFocus(2) || s.EditBuffer() != "c" {
		t.Fatalf("SetFocus(2) buffer = %q", s.EditBuffer())
	}
	for _, bad := range []int{-1, 3, 100} {
		s.SetEditBuffer("draft")
		if s.SetFocus(bad) {
			t.Fatalf("SetFocus(%d) accepted", bad)
		}
		if i, _ := s.Index(); i != 2 || s.EditBuffer() != "draft" {
			t.Fatalf("rejected focus changed state: %d %q", i, s.EditBuffer())
		}
	}
}

func TestSelectionRebuild(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		focus     int
		next      library.Snapshot
		wantIndex int
		wantOK    bool
		wantBuf   string
	}{
		{"keeps index", 1, library.Snapshot{"x", "y", "z"}, 1, true, "y"},
		{"clamps", 2, library.Snapshot{"x"}, 0, true, "x"},
		{"empties", 1, library.Snapshot{}, 0, false, ""},
	}
	for _, tt := range tests {
		s := newSelection(library.Snapshot{"a", "b", "c"})
		s.SetFocus(tt.focus)
		s.Rebuild(tt.next)
		i, ok := s.Index()
		if ok != tt.wantOK || (ok && i != tt.wantIndex) || s.EditBuffer() != tt.wantBuf {
			t.Errorf("%s: got (%d,%v,%q)", tt.name, i, ok, s.EditBuffer())
		}
		if _, sel := s.Selected(); sel != tt.wantOK {
			t.Errorf("%s: Selected ok = %v", tt.name, sel)
		}
	}
}

func TestSelectionRebuildFromEmpty(t *testing.T) {
	t.Parallel()
	s := newSelection(nil)
	if s.Len() != 0 {
		t.Fatalf("len = %d", s.Len())
	}
	s.SetEditBuffer("new command")
	s.Rebuild(library.Snapshot{"new command"})
	if text, ok := s.Selected(); !ok || text != "new command" {
		t.Fatalf("selected = %q, %v", text, ok)
	}
}

func TestSelectionResetAndSnapshotCopy(t *testing.T) {
	t.Parallel()
	src := library.Snapshot{"a", "b", "c"}
	s := newSelection(src)
	s.SetFocus(2)
	s.Reset(library.Snapshot{"b", "c"})
	if i, _ := s.Index(); i != 0 || s.EditBuffer() != "b" {
		t.Fatalf("reset = %d %q", i, s.EditBuffer())
	}
	snap := s.Snapshot()
	snap[0] = "mutated"
	if text, _ := s.Selected(); text != "b" {
		t.Fatalf("snapshot aliasing: %q", text)
	}
	src[0] = "mutated"
	s2 := newSelection(src[:1])
	src[0] = "again"
	if text, _ := s2.Selected(); text != "mutated" {
		t.Fatalf("input aliasing: %q", text)
	}
}
