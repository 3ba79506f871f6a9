package tui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"cmdhandler/internal/config"
	"cmdhandler/internal/store"
	"cmdhandler/internal/workspace"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeEditor struct {
	result string
	err    error
	calls  []string
}

func (f *fakeEditor) EditExternally(text string) tea.Cmd {
	f.calls = append(f.calls, text)
	return func() tea.Msg {
		return editDoneMsg{original: text, edited: f.result, err: f.err}
	}
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(s string) error {
	if f.err != nil {
		return f.err
	}
	f.text = s
	return nil
}

type testEnv struct {
	store     *store.Store
	layout    workspace.Layout
	cfg       *config.Config
	editor    *fakeEditor
	clipboard *fakeClipboard
	external  []string
}

func noViewer(string) (string, error) { return "", errors.New("not found") }

// newTestModel opens a store in a temp dir and adds seed in order, so the
// last seed entry is listed first.
func newTestModel(t *testing.T, seed ...string) (appModel, *testEnv) {
	t.Helper()

	dir := t.TempDir()
	layout := workspace.Layout{Dir: dir}
	st, err := store.Open(context.Background(), layout.DBPath())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	for _, s := range seed {
		if err := st.Add(context.Background(), s); err != nil {
			t.Fatalf("seed %q: %v", s, err)
		}
	}

	env := &testEnv{
		store:     st,
		layout:    layout,
		cfg:       config.DefaultConfig(),
		editor:    &fakeEditor{},
		clipboard: &fakeClipboard{},
	}
	env.cfg.Theme = "mocha"

	m, err := newAppModel(Options{
		Store:     st,
		Layout:    layout,
		Config:    env.cfg,
		Editor:    env.editor,
		Clipboard: env.clipboard,
		LookPath:  noViewer,
		StartExternal: func(_ []string, cmdText string) error {
			env.external = append(env.external, cmdText)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("newAppModel: %v", err)
	}
	mm, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return mm.(appModel), env
}

func press(t *testing.T, m appModel, keys ...tea.KeyMsg) appModel {
	t.Helper()
	for _, k := range keys {
		mm, _ := m.Update(k)
		m = mm.(appModel)
	}
	return m
}

func keyMsg(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// typeText sends s one rune at a time.
func typeText(t *testing.T, m appModel, s string) appModel {
	t.Helper()
	for _, r := range s {
		k := runes(string(r))
		if r == ' ' {
			k = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		}
		m = press(t, m, k)
	}
	return m
}

func listTexts(t *testing.T, st *store.Store) []string {
	t.Helper()
	got, err := st.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	return got
}

func tempPath(env *testEnv, name string) string { return filepath.Join(env.layout.Dir, name) }
