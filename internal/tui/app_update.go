package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case minibufferClearMsg:
		if msg.seq == m.minibufferSeq {
			m.minibufferText = ""
		}
		return m, nil

	case storeChangedMsg:
		cmd := m.handleStoreChanged()
		return m, cmd

	case watchErrMsg:
		m.log.Warn("watcher", "err", msg.err)
		return m, waitForStoreChange(m.watcher)

	case editDoneMsg:
		cmd := m.applyEdit(msg)
		return m, cmd

	case viewerDoneMsg:
		if msg.err != nil {
			cmd := m.reportError("viewer", msg.err)
			m.showOutput(msg.path, readLines(msg.path))
			m.output.GotoBottom()
			return m, cmd
		}
		cmd := m.reload()
		return m, cmd

	case interactiveDoneMsg:
		cmd := m.finishInteractive(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := resolveAction(m.mode, msg)

	if m.mode == modeHelp && a != actionExit {
		cmd := m.reload()
		return m, cmd
	}

	if a != actionNone {
		cmd := m.dispatch(a, msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.mode {
	case modePrompt:
		m.input, cmd = m.input.Update(msg)
		m.sel.SetEditBuffer(m.input.Value())
	case modeSearch:
		before := m.search.Value()
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != before {
			m.liveSearch()
		}
	case modeOutput:
		m.output, cmd = m.output.Update(msg)
	}
	return m, cmd
}
