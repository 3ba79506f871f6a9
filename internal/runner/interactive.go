package runner

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/creack/pty"
	"github.com/muesli/cancelreader"
	"golang.org/x/term"
)

// DefaultExitKey is ctrl+], the telnet escape.
const DefaultExitKey byte = 0x1d

// ErrDetached is returned when the user leaves a session with the exit key.
var ErrDetached = errors.New("interactive session detached")

// Interactive runs one command on a pseudo-terminal attached to the user's
// terminal. It satisfies bubbletea's ExecCommand, so the TUI can hand the
// terminal over with tea.Exec and take it back when Run returns.
type Interactive struct {
	Shell   string
	Command string
	ExitKey byte

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func NewInteractive(shell, cmdText string, exitKey byte) *Interactive {
	if exitKey == 0 {
		exitKey = DefaultExitKey
	}
	return &Interactive{Shell: shell, Command: cmdText, ExitKey: exitKey}
}

func (s *Interactive) SetStdin(r io.Reader)  { s.stdin = r }
func (s *Interactive) SetStdout(w io.Writer) { s.stdout = w }
func (s *Interactive) SetStderr(w io.Writer) { s.stderr = w }

// Run blocks until the command exits or the exit key is typed.
func (s *Interactive) Run() error {
	stdin := s.stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	stdout := s.stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	shell := strings.TrimSpace(s.Shell)
	if shell == "" {
		shell = DefaultShell
	}
	cmd := exec.Command(shell, "-c", s.Command)
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return &SpawnError{Command: s.Command, Err: err}
	}

	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		stopResize := watchResize(f, ptmx)
		defer stopResize()
		if st, err := term.MakeRaw(int(f.Fd())); err == nil {
			defer func() { _ = term.Restore(int(f.Fd()), st) }()
		}
	}

	in, err := cancelreader.NewReader(stdin)
	if err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		_ = ptmx.Close()
		return err
	}
	defer in.Close()

	fmt.Fprintf(stdout, "$ %s\r\n(%s to leave)\r\n", s.Command, describeCtrlKey(s.ExitKey))

	outDone := make(chan struct{})
	go func() {
		_, _ = io.Copy(stdout, ptmx)
		close(outDone)
	}()

	detach := make(chan struct{})
	inDone := make(chan struct{})
	go func() {
		defer close(inDone)
		if pumpInput(in, ptmx, s.ExitKey) {
			close(detach)
		}
	}()

	waitErr := make(chan error, 1)
	go func() { waitErr <- cmd.Wait() }()

	var runErr error
	select {
	case runErr = <-waitErr:
	case <-detach:
		_ = cmd.Process.Kill()
		<-waitErr
		runErr = ErrDetached
	}

	in.Cancel()
	<-inDone
	_ = ptmx.Close()
	<-outDone
	return runErr
}

// pumpInput copies src to dst until src fails or exitKey shows up. Bytes
// before the exit key are forwarded; the key itself is swallowed.
func pumpInput(src io.Reader, dst io.Writer, exitKey byte) bool {
	buf := make([]byte, 4096)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			if i := bytes.IndexByte(chunk, exitKey); i >= 0 {
				if i > 0 {
					_, _ = dst.Write(chunk[:i])
				}
				return true
			}
			if _, werr := dst.Write(chunk); werr != nil {
				return false
			}
		}
		if err != nil {
			return false
		}
	}
}

// ParseCtrlKey turns "ctrl+]" or "ctrl+q" into the control byte the terminal
// sends for it.
func ParseCtrlKey(s string) (byte, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	rest, ok := strings.CutPrefix(s, "ctrl+")
	if !ok || len(rest) != 1 {
		return 0, fmt.Errorf("unsupported exit key %q (want ctrl+<key>)", s)
	}
	c := rest[0]
	switch {
	case c >= 'a' && c <= 'z':
		return c - 'a' + 1, nil
	case c >= '\\' && c <= '_':
		return c - '@', nil
	}
	return 0, fmt.Errorf("unsupported exit key %q", s)
}

func describeCtrlKey(b byte) string {
	switch {
	case b >= 1 && b <= 26:
		return "ctrl+" + string(rune('a'+b-1))
	case b >= 0x1c && b <= 0x1f:
		return "ctrl+" + string(rune('@'+b))
	}
	return fmt.Sprintf("0x%02x", b)
}
