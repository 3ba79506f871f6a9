package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()

	dir := t.TempDir()
	return &Runner{
		Shell:      DefaultShell,
		ScriptPath: filepath.Join(dir, "cmdfile"),
		LogPath:    filepath.Join(dir, "output"),
		ErrorPath:  filepath.Join(dir, "output.err"),
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func TestRun_EchoAppendsLogEntry(t *testing.T) {
	t.Parallel()

	r := newTestRunner(t)
	res := r.Run(context.Background(), "echo hi")
	if res.Err != nil {
		t.Fatalf("run: %v", res.Err)
	}
	if !reflect.DeepEqual(res.Lines, []string{"hi"}) {
		t.Fatalf("Lines=%#v, want [hi]", res.Lines)
	}
	if got := readFile(t, r.LogPath); got != "$ echo hi\nhi\n\n" {
		t.Fatalf("unexpected log: %q", got)
	}
	if got := readFile(t, r.ScriptPath); got != "echo hi\n" {
		t.Fatalf("unexpected script file: %q", got)
	}
}

func TestRun_LogIsAppendOnly(t *testing.T) {
	t.Parallel()

	r := newTestRunner(t)
	r.Run(context.Background(), "echo one")
	r.Run(context.Background(), "echo two")

	want := "$ echo one\none\n\n$ echo two\ntwo\n\n"
	if got := readFile(t, r.LogPath); got != want {
		t.Fatalf("log=%q, want %q", got, want)
	}
}

func TestRun_CapturesStderrAndExitCode(t *testing.T) {
	t.Parallel()

	r := newTestRunner(t)
	res := r.Run(context.Background(), "echo out; echo err 1>&2; exit 3")
	if res.Err != nil {
		t.Fatalf("a failing command is not a runner error: %v", res.Err)
	}
	if res.ExitCode != 3 || !res.Failed() {
		t.Fatalf("ExitCode=%d Failed=%v", res.ExitCode, res.Failed())
	}
	joined := strings.Join(res.Lines, "\n")
	if !strings.Contains(joined, "out") || !strings.Contains(joined, "err") {
		t.Fatalf("expected combined output, got %#v", res.Lines)
	}
}

func TestRun_NoOutput(t *testing.T) {
	t.Parallel()

	r := newTestRunner(t)
	res := r.Run(context.Background(), "true")
	if len(res.Lines) != 0 {
		t.Fatalf("expected no lines, got %#v", res.Lines)
	}
	if got := readFile(t, r.LogPath); got != "$ true\n\n" {
		t.Fatalf("unexpected log: %q", got)
	}
}

func TestRun_SpawnFailureIsCaptured(t *testing.T) {
	t.Parallel()

	r := newTestRunner(t)
	r.Shell = filepath.Join(t.TempDir(), "no-such-shell")

	res := r.Run(context.Background(), "echo hi")
	var serr *SpawnError
	if !errors.As(res.Err, &serr) {
		t.Fatalf("expected SpawnError, got %v", res.Err)
	}
	if len(res.Lines) != 1 || !strings.Contains(res.Lines[0], "no-such-shell") {
		t.Fatalf("expected the error text as output, got %#v", res.Lines)
	}
	if got := readFile(t, r.ErrorPath); !strings.Contains(got, "no-such-shell") {
		t.Fatalf("expected error artifact, got %q", got)
	}
	if _, err := os.Stat(r.LogPath); !os.IsNotExist(err) {
		t.Fatalf("spawn failures are not logged, stat err=%v", err)
	}
}

func TestSplitOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"\n", []string{}},
		{"\n\n", []string{"", ""}},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\n\nb\n", []string{"a", "", "b"}},
		{"a\r\nb\r\n", []string{"a", "b"}},
	}
	for _, tt := range tests {
		if got := splitOutput(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("splitOutput(%q)=%#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestFindViewer(t *testing.T) {
	t.Parallel()

	available := map[string]bool{"gedit": true, "less": true}
	lookPath := func(name string) (string, error) {
		if available[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}

	if v, ok := FindViewer(DefaultViewers, lookPath); !ok || v != "gedit" {
		t.Fatalf("FindViewer=%q ok=%v, want gedit", v, ok)
	}
	if _, ok := FindViewer([]string{"vim"}, lookPath); ok {
		t.Fatalf("expected no viewer")
	}
	if _, ok := FindViewer([]string{"none", "less"}, lookPath); ok {
		t.Fatalf("none must disable the viewer")
	}
	if v, ok := FindViewer([]string{"less -R"}, lookPath); !ok || v != "less -R" {
		t.Fatalf("expected configured argv to be kept, got %q ok=%v", v, ok)
	}
}

func TestViewerCommand_OpensAtEnd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		viewer string
		want   []string
	}{
		{"vim", []string{"vim", "+normal G$", "/tmp/output"}},
		{"gedit", []string{"gedit", "/tmp/output", "+"}},
		{"less -R", []string{"less", "-R", "/tmp/output"}},
	}
	for _, tt := range tests {
		cmd := ViewerCommand(tt.viewer, "/tmp/output")
		if !reflect.DeepEqual(cmd.Args, tt.want) {
			t.Fatalf("ViewerCommand(%q).Args=%#v, want %#v", tt.viewer, cmd.Args, tt.want)
		}
	}
}

func TestExternalScript(t *testing.T) {
	t.Parallel()

	got := ExternalScript("df -h")
	if !strings.HasPrefix(got, "df -h ; echo; echo;") || !strings.HasSuffix(got, "read line") {
		t.Fatalf("unexpected external script: %q", got)
	}
}

func TestRunExternal_MissingTerminal(t *testing.T) {
	t.Parallel()

	err := RunExternal([]string{"definitely-not-a-terminal-xyz"}, "ls")
	var serr *SpawnError
	if !errors.As(err, &serr) {
		t.Fatalf("expected SpawnError, got %v", err)
	}
}

func TestRun_UsesProcessWorkingDirectory(t *testing.T) {
	t.Parallel()

	want, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	r := newTestRunner(t)
	res := r.Run(context.Background(), "pwd -P")
	if res.Err != nil {
		t.Fatalf("run: %v", res.Err)
	}
	if want, err = filepath.EvalSymlinks(want); err != nil {
		t.Fatal(err)
	}
	if len(res.Lines) != 1 || res.Lines[0] != want {
		t.Fatalf("pwd = %#v, want %q", res.Lines, want)
	}
}
