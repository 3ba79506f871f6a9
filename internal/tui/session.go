package tui

import (
	"cmdhandler/internal/store"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// reloadSession re-reads the store, drops any search and returns to the list
// with the focused index preserved (clamped).
func (m *appModel) reloadSession() error {
	snap, err := m.store.List(m.ctx)
	if err != nil {
		m.mode = modeList
		m.syncList()
		return err
	}
	m.all = snap
	m.query = ""
	m.search.SetValue("")
	m.search.Blur()
	m.input.Blur()
	m.sel.Rebuild(snap)
	m.mode = modeList
	m.pendingReload = false
	if v, err := m.store.DataVersion(m.ctx); err == nil {
		m.lastDataVersion = v
	}
	m.syncList()
	m.log.Debug("session reloaded", "commands", len(snap))
	return nil
}

// syncList pushes the controller state into the widgets.
func (m *appModel) syncList() {
	snap := m.sel.Snapshot()
	items := make([]list.Item, 0, len(snap))
	for _, text := range snap {
		items = append(items, commandItem{text: text})
	}
	m.list.SetItems(items)
	if i, ok := m.sel.Index(); ok {
		m.list.Select(i)
	}
	m.syncInput()
}

func (m *appModel) syncInput() {
	m.input.SetValue(m.sel.EditBuffer())
	m.input.CursorEnd()
}

// showSnapshot replaces the visible list with a search result.
func (m *appModel) showSnapshot(snap []string) {
	m.sel.Reset(snap)
	m.syncList()
}

func waitForStoreChange(w *store.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case _, ok := <-w.Changes():
			if !ok {
				return nil
			}
			return storeChangedMsg{}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return watchErrMsg{err: err}
		}
	}
}

// handleStoreChanged reloads when another process committed to the store.
// Our own writes leave PRAGMA data_version unchanged.
func (m *appModel) handleStoreChanged() tea.Cmd {
	v, err := m.store.DataVersion(m.ctx)
	if err != nil {
		m.log.Warn("data_version failed", "err", err)
		return waitForStoreChange(m.watcher)
	}
	if v == m.lastDataVersion {
		return waitForStoreChange(m.watcher)
	}
	m.lastDataVersion = v
	if m.mode != modeList {
		m.pendingReload = true
		return waitForStoreChange(m.watcher)
	}
	cmds := []tea.Cmd{waitForStoreChange(m.watcher)}
	if err := m.reloadSession(); err != nil {
		cmds = append(cmds, m.reportError("reload", err))
	} else {
		cmds = append(cmds, m.showMinibuffer("Library changed on disk; reloaded"))
	}
	return tea.Batch(cmds...)
}
