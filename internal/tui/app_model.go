package tui

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"

	"cmdhandler/internal/config"
	"cmdhandler/internal/library"
	"cmdhandler/internal/logger"
	"cmdhandler/internal/runner"
	"cmdhandler/internal/store"
	"cmdhandler/internal/workspace"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Options wires the TUI to its store and capabilities. Nil capabilities get
// the production implementations.
type Options struct {
	Store   *store.Store
	Layout  workspace.Layout
	Config  *config.Config
	Watcher *store.Watcher

	Editor    Editor
	Clipboard Clipboard
	LookPath  runner.LookPathFunc

	// StartExternal launches a command in a new terminal window.
	StartExternal func(terminal []string, cmdText string) error
}

type appModel struct {
	ctx    context.Context
	store  *store.Store
	layout workspace.Layout
	cfg    *config.Config
	runner *runner.Runner
	log    *slog.Logger

	watcher       *store.Watcher
	editor        Editor
	clipboard     Clipboard
	lookPath      runner.LookPathFunc
	startExternal func([]string, string) error

	width  int
	height int

	mode mode

	all library.Snapshot
	sel selection

	// query is the search applied to the visible list, "" when unfiltered.
	query string

	list   list.Model
	input  textinput.Model
	search textinput.Model
	help   help.Model
	output viewport.Model

	outputTitle string
	styles      styles

	minibufferText string
	minibufferSeq  int

	lastDataVersion int64
	pendingReload   bool
	quitting        bool
}

func newAppModel(opts Options) (appModel, error) {
	if opts.Store == nil {
		return appModel{}, errors.New("tui: no store")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	m := appModel{
		ctx:     context.Background(),
		store:   opts.Store,
		layout:  opts.Layout,
		cfg:     cfg,
		watcher: opts.Watcher,
		runner: &runner.Runner{
			Shell:      cfg.Shell,
			ScriptPath: opts.Layout.ScriptPath(),
			LogPath:    opts.Layout.LogPath(),
			ErrorPath:  opts.Layout.ErrorPath(),
		},
		log:           logger.ComponentLogger("tui"),
		editor:        opts.Editor,
		clipboard:     opts.Clipboard,
		lookPath:      opts.LookPath,
		startExternal: opts.StartExternal,
		mode:          modeList,
		width:         80,
		height:        24,
	}
	if m.editor == nil {
		m.editor = newExecEditor(opts.Layout.EditPath(), cfg.EditorCommand())
	}
	if m.clipboard == nil {
		m.clipboard = systemClipboard{}
	}
	if m.lookPath == nil {
		m.lookPath = exec.LookPath
	}
	if m.startExternal == nil {
		m.startExternal = runner.RunExternal
	}

	m.styles = newStyles(cfg)
	m.list = newCommandList(newCommandDelegate(m.styles, cfg))
	m.input = newEditInput(m.styles)
	m.search = newSearchInput(m.styles)
	m.help = help.New()
	m.output = viewport.New(0, 0)

	snap, err := m.store.List(m.ctx)
	if err != nil {
		return appModel{}, err
	}
	m.all = snap
	m.sel = newSelection(snap)
	if v, err := m.store.DataVersion(m.ctx); err == nil {
		m.lastDataVersion = v
	}
	m.syncList()
	m.resize()
	return m, nil
}

func (m appModel) Init() tea.Cmd {
	return waitForStoreChange(m.watcher)
}

// showMinibuffer sets the status line and returns the command that clears it.
func (m *appModel) showMinibuffer(text string) tea.Cmd {
	m.minibufferSeq++
	m.minibufferText = text
	return clearMinibufferAfter(m.minibufferSeq)
}

// reportError logs err and turns it into a status line.
func (m *appModel) reportError(op string, err error) tea.Cmd {
	m.log.Error(op+" failed", "err", err)
	return m.showMinibuffer(describeError(op, err))
}
