package tui

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

type Clipboard interface {
	WriteAll(text string) error
}

// systemClipboard uses atotto/clipboard and falls back to the usual
// command-line tools when it reports no support.
type systemClipboard struct{}

func (systemClipboard) WriteAll(s string) error {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if !clipboard.Unsupported {
		if err := clipboard.WriteAll(s); err == nil {
			return nil
		}
	}
	return copyWithCommands(s)
}

func copyWithCommands(s string) error {
	switch runtime.GOOS {
	case "darwin":
		return runClipboardCmd("pbcopy", nil, s)
	case "windows":
		if err := runClipboardCmd("cmd", []string{"/c", "clip"}, s); err == nil {
			return nil
		}
		return runClipboardCmd("powershell", []string{"-NoProfile", "-Command", "Set-Clipboard"}, s)
	default:
		if err := runClipboardCmd("wl-copy", nil, s); err == nil {
			return nil
		}
		if err := runClipboardCmd("xclip", []string{"-selection", "clipboard"}, s); err == nil {
			return nil
		}
		return runClipboardCmd("xsel", []string{"--clipboard", "--input"}, s)
	}
}

func runClipboardCmd(name string, args []string, stdin string) error {
	if _, err := exec.LookPath(name); err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	if err := cmd.Run(); err != nil {
		return errors.New(name + ": " + err.Error())
	}
	return nil
}
