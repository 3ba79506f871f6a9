package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

const DefaultShell = "/bin/sh"

// SpawnError means the shell could not be started at all. A command that
// starts and then fails is not a SpawnError; its output is captured normally.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn %q: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// Runner executes commands through a scratch script and keeps an append-only
// log of every run.
type Runner struct {
	Shell      string
	ScriptPath string
	LogPath    string
	ErrorPath  string
}

// Result is what one Run captured.
type Result struct {
	Command  string
	Lines    []string
	ExitCode int
	Duration time.Duration
	// Err is a *SpawnError, or a failure to write the script or the log.
	Err error
}

// Failed reports whether the command did not run to a zero exit status.
func (r Result) Failed() bool {
	return r.Err != nil || r.ExitCode != 0
}

func (r *Runner) shell() string {
	if s := strings.TrimSpace(r.Shell); s != "" {
		return s
	}
	return DefaultShell
}

// Run writes cmdText to the script file, runs it under the shell and blocks
// until it exits. Combined stdout/stderr is split into lines and appended to
// the log as "$ <cmd>", the lines, and a blank line.
func (r *Runner) Run(ctx context.Context, cmdText string) Result {
	res := Result{Command: cmdText}

	if err := writeScript(r.ScriptPath, cmdText); err != nil {
		res.Err = &SpawnError{Command: cmdText, Err: err}
		res.Lines = []string{res.Err.Error()}
		r.writeErrorArtifact(res.Err)
		return res
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, r.shell(), r.ScriptPath)
	out, err := cmd.CombinedOutput()
	res.Duration = time.Since(start)

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			res.Err = &SpawnError{Command: cmdText, Err: err}
			res.Lines = []string{res.Err.Error()}
			r.writeErrorArtifact(res.Err)
			return res
		}
		res.ExitCode = exitErr.ExitCode()
	}

	res.Lines = splitOutput(string(out))
	if err := appendLog(r.LogPath, cmdText, res.Lines); err != nil {
		res.Err = fmt.Errorf("append output log: %w", err)
	}
	return res
}

func writeScript(path, cmdText string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("no script path")
	}
	return os.WriteFile(path, []byte(cmdText+"\n"), 0o600)
}

func (r *Runner) writeErrorArtifact(err error) {
	if strings.TrimSpace(r.ErrorPath) == "" {
		return
	}
	_ = os.WriteFile(r.ErrorPath, []byte(err.Error()+"\n"), 0o644)
}

// splitOutput drops one trailing newline and splits the rest.
func splitOutput(out string) []string {
	out = strings.ReplaceAll(out, "\r\n", "\n")
	out = strings.TrimSuffix(out, "\n")
	if out == "" {
		return []string{}
	}
	return strings.Split(out, "\n")
}

// FormatLogEntry renders one log entry exactly as Run appends it.
func FormatLogEntry(cmdText string, lines []string) string {
	var b strings.Builder
	b.WriteString("$ ")
	b.WriteString(cmdText)
	b.WriteByte('\n')
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

func appendLog(path, cmdText string, lines []string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(FormatLogEntry(cmdText, lines)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
