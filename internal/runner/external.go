package runner

import (
	"errors"
	"fmt"
	"os/exec"
)

// DefaultTerminal opens a new gnome-terminal tab and runs the script with bash.
var DefaultTerminal = []string{"gnome-terminal", "--tab", "--", "bash", "-c"}

// ExternalScript keeps the terminal open after cmdText finishes.
func ExternalScript(cmdText string) string {
	return fmt.Sprintf(`%s ; echo; echo; echo Press \<Enter\> to continue! ; read line`, cmdText)
}

// RunExternal starts cmdText in a new terminal window and returns without
// waiting for it.
func RunExternal(terminal []string, cmdText string) error {
	if len(terminal) == 0 {
		terminal = DefaultTerminal
	}
	if _, err := exec.LookPath(terminal[0]); err != nil {
		return &SpawnError{Command: cmdText, Err: err}
	}
	if cmdText == "" {
		return &SpawnError{Command: cmdText, Err: errors.New("empty command")}
	}

	argv := append(append([]string{}, terminal[1:]...), ExternalScript(cmdText))
	cmd := exec.Command(terminal[0], argv...)
	if err := cmd.Start(); err != nil {
		return &SpawnError{Command: cmdText, Err: err}
	}
	// Reap the launcher; the terminal itself usually detaches.
	go func() { _ = cmd.Wait() }()
	return nil
}
