package cli

import (
	"errors"
	"fmt"
	"io/fs"
)

// commandFailedError reports a command that ran but exited non-zero.
type commandFailedError struct {
	command  string
	exitCode int
}

func (e commandFailedError) Error() string {
	return fmt.Sprintf("command exited with status %d: %s", e.exitCode, e.command)
}

func errCommandFailed(command string, code int) error {
	return commandFailedError{command: command, exitCode: code}
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
