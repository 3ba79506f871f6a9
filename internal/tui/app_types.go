package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const minibufferAutoClearAfter = 4 * time.Second

// editDoneMsg carries the result of an external editor round trip.
type editDoneMsg struct {
	original string
	edited   string
	err      error
}

type viewerDoneMsg struct {
	path string
	err  error
}

type interactiveDoneMsg struct {
	command string
	err     error
}

// storeChangedMsg is posted by the watcher when the database files change.
type storeChangedMsg struct{}

type watchErrMsg struct{ err error }

type minibufferClearMsg struct{ seq int }

func clearMinibufferAfter(seq int) tea.Cmd {
	return tea.Tick(minibufferAutoClearAfter, func(time.Time) tea.Msg {
		return minibufferClearMsg{seq: seq}
	})
}
