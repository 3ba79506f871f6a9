package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type mode int

const (
	modeList mode = iota
	modePrompt
	modeSearch
	modeHelp
	modeOutput
)

func (m mode) String() string {
	switch m {
	case modeList:
		return "list"
	case modePrompt:
		return "prompt"
	case modeSearch:
		return "search"
	case modeHelp:
		return "help"
	case modeOutput:
		return "output"
	}
	return "unknown"
}

type modeMask uint8

func maskOf(ms ...mode) modeMask {
	var mm modeMask
	for _, m := range ms {
		mm |= 1 << uint(m)
	}
	return mm
}

func (mm modeMask) has(m mode) bool { return mm&(1<<uint(m)) != 0 }

var (
	inList    = maskOf(modeList)
	inEditing = maskOf(modeList, modePrompt)
	inEntry   = maskOf(modePrompt, modeSearch)
	inSearch  = maskOf(modeSearch)
	inOutput  = maskOf(modeOutput)
	inAnyMode = maskOf(modeList, modePrompt, modeSearch, modeHelp, modeOutput)
)

type action int

const (
	actionNone action = iota
	actionNavigateUp
	actionNavigateDown
	actionEnterSearch
	actionCommitSearch
	actionSwitchToPrompt
	actionCancel
	actionClearBuffer
	actionAdd
	actionRemove
	actionUpdate
	actionCopy
	actionRun
	actionRunInteractive
	actionRunExternal
	actionShowLog
	actionDownload
	actionUpload
	actionShowHelp
	actionRefresh
	actionCleanup
	actionExit
	actionDismissOverlay
	actionPassThrough

	actionCount
)

type actionSpec struct {
	name  string
	label string
}

// actionSpecs is indexed by action.
var actionSpecs = [actionCount]actionSpec{
	actionNone:           {name: "none", label: ""},
	actionNavigateUp:     {name: "up", label: "Previous command"},
	actionNavigateDown:   {name: "down", label: "Next command"},
	actionEnterSearch:    {name: "search", label: "Search"},
	actionCommitSearch:   {name: "commit", label: "Apply search"},
	actionSwitchToPrompt: {name: "prompt", label: "Edit command"},
	actionCancel:         {name: "cancel", label: "Back to list"},
	actionClearBuffer:    {name: "clear", label: "Clear command"},
	actionAdd:            {name: "add", label: "Add command"},
	actionRemove:         {name: "remove", label: "Remove command"},
	actionUpdate:         {name: "update", label: "Edit in $EDITOR"},
	actionCopy:           {name: "copy", label: "Copy to clipboard"},
	actionRun:            {name: "run", label: "Run"},
	actionRunInteractive: {name: "pty", label: "Run interactively"},
	actionRunExternal:    {name: "term", label: "Run in new terminal"},
	actionShowLog:        {name: "log", label: "Show output log"},
	actionDownload:       {name: "download", label: "Export to transfer file"},
	actionUpload:         {name: "upload", label: "Import from transfer file"},
	actionShowHelp:       {name: "help", label: "Help"},
	actionRefresh:        {name: "refresh", label: "Reload"},
	actionCleanup:        {name: "cleanup", label: "Remove temporary files"},
	actionExit:           {name: "exit", label: "Quit"},
	actionDismissOverlay: {name: "close", label: "Close"},
	actionPassThrough:    {name: "type", label: "Type into command"},
}

func (a action) String() string {
	if a < 0 || a >= actionCount {
		return "unknown"
	}
	return actionSpecs[a].name
}

type binding struct {
	modes  modeMask
	key    key.Binding
	action action
}

func bind(modes modeMask, a action, help string, keys ...string) binding {
	return binding{
		modes:  modes,
		key:    key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, actionSpecs[a].label)),
		action: a,
	}
}

// bindings is checked in order; the first entry whose mode mask contains the
// current mode and whose keys match wins.
var bindings = []binding{
	bind(inAnyMode, actionExit, "f8", "f8", "ctrl+c"),

	bind(inOutput, actionDismissOverlay, "esc/q", "esc", "q", "enter"),

	bind(inList, actionNavigateUp, "↑", "up", "ctrl+p"),
	bind(inList, actionNavigateDown, "↓", "down", "ctrl+n"),
	bind(inList, actionSwitchToPrompt, "tab", "tab"),
	bind(inEditing, actionShowHelp, "f1", "f1"),
	bind(inList, actionShowHelp, "?", "?"),
	bind(inList, actionPassThrough, "l c r t x", "l", "c", "r", "t", "x", " "),

	bind(inList, actionEnterSearch, "/", "/"),
	bind(inEditing, actionEnterSearch, "ctrl+f", "ctrl+f", "ctrl+home"),
	bind(inSearch, actionCommitSearch, "enter", "enter"),
	bind(inEntry, actionCancel, "esc", "esc"),
	bind(maskOf(modePrompt), actionClearBuffer, "ctrl+u", "ctrl+u"),

	bind(inEditing, actionAdd, "ctrl+a", "ctrl+a", "f2"),
	bind(inEditing, actionRemove, "ctrl+d", "ctrl+d", "f3"),
	bind(inEditing, actionUpdate, "ctrl+r", "ctrl+r", "f4"),
	bind(inEditing, actionCopy, "ctrl+y", "ctrl+y"),
	bind(inEditing, actionRun, "ctrl+e", "ctrl+e"),
	bind(inEditing, actionRunInteractive, "ctrl+t", "ctrl+t"),
	bind(inEditing, actionRunExternal, "ctrl+x", "ctrl+x"),
	bind(inEditing, actionShowLog, "ctrl+o", "ctrl+o"),
	bind(inEditing, actionDownload, "ctrl+s", "ctrl+s"),
	bind(inEditing, actionUpload, "ctrl+l", "ctrl+l"),
	bind(inEditing, actionRefresh, "f5", "f5"),
	bind(inEditing, actionCleanup, "f6", "f6"),
}

func resolveAction(m mode, msg tea.KeyMsg) action {
	for _, b := range bindings {
		if b.modes.has(m) && key.Matches(msg, b.key) {
			return b.action
		}
	}
	return actionNone
}

// bindingsFor returns the bindings active in m, in table order.
func bindingsFor(m mode) []binding {
	var out []binding
	for _, b := range bindings {
		if b.modes.has(m) {
			out = append(out, b)
		}
	}
	return out
}

// helpKeyMap feeds bubbles/help with the bindings of one mode.
type helpKeyMap struct {
	mode mode
}

func (h helpKeyMap) ShortHelp() []key.Binding {
	short := map[action]bool{
		actionEnterSearch:    true,
		actionCommitSearch:   true,
		actionSwitchToPrompt: true,
		actionCancel:         true,
		actionAdd:            true,
		actionRemove:         true,
		actionUpdate:         true,
		actionRun:            true,
		actionShowHelp:       true,
		actionDismissOverlay: true,
		actionExit:           true,
	}
	var out []key.Binding
	for _, b := range bindingsFor(h.mode) {
		if short[b.action] {
			out = append(out, b.key)
		}
	}
	return out
}

func (h helpKeyMap) FullHelp() [][]key.Binding {
	var col []key.Binding
	for _, b := range bindingsFor(h.mode) {
		col = append(col, b.key)
	}
	return [][]key.Binding{col}
}
