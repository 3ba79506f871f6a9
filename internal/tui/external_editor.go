package tui

import (
	"os"
	"os/exec"

	"cmdhandler/internal/runner"

	tea "github.com/charmbracelet/bubbletea"
)

// Editor hands text to an external editor. The returned command eventually
// produces an editDoneMsg.
type Editor interface {
	EditExternally(text string) tea.Cmd
}

// execEditor edits through a scratch file (cmdedit in the data dir).
type execEditor struct {
	path    string
	command string
}

func newExecEditor(path, command string) execEditor {
	return execEditor{path: path, command: command}
}

func (e execEditor) EditExternally(text string) tea.Cmd {
	args := runner.SplitWords(e.command)
	if len(args) == 0 {
		args = []string{"vim"}
	}

	if err := os.WriteFile(e.path, []byte(text+"\n"), 0o600); err != nil {
		return func() tea.Msg { return editDoneMsg{original: text, err: err} }
	}

	cmd := exec.Command(args[0], append(args[1:], e.path)...)
	path := e.path
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		if err != nil {
			return editDoneMsg{original: text, err: err}
		}
		b, rerr := os.ReadFile(path)
		if rerr != nil {
			return editDoneMsg{original: text, err: rerr}
		}
		return editDoneMsg{original: text, edited: string(b)}
	})
}
