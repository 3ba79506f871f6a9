package runner

import (
	"bytes"
	"strings"
	"testing"
)

func TestPumpInput_StopsAtExitKey(t *testing.T) {
	t.Parallel()

	src := strings.NewReader("ls -l\r" + string([]byte{DefaultExitKey}) + "ignored")
	var dst bytes.Buffer

	if !pumpInput(src, &dst, DefaultExitKey) {
		t.Fatalf("expected detach on exit key")
	}
	if got := dst.String(); got != "ls -l\r" {
		t.Fatalf("forwarded %q, want %q", got, "ls -l\r")
	}
}

func TestPumpInput_EOFWithoutExitKey(t *testing.T) {
	t.Parallel()

	var dst bytes.Buffer
	if pumpInput(strings.NewReader("abc"), &dst, DefaultExitKey) {
		t.Fatalf("EOF is not a detach")
	}
	if dst.String() != "abc" {
		t.Fatalf("forwarded %q", dst.String())
	}
}

func TestParseCtrlKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    byte
		wantErr bool
	}{
		{in: "ctrl+]", want: 0x1d},
		{in: "CTRL+Q", want: 0x11},
		{in: "ctrl+\\", want: 0x1c},
		{in: "ctrl+a", want: 0x01},
		{in: "alt+q", wantErr: true},
		{in: "ctrl+", wantErr: true},
		{in: "ctrl+1", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseCtrlKey(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseCtrlKey(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("ParseCtrlKey(%q)=%#x err=%v, want %#x", tt.in, got, err, tt.want)
		}
		if back := describeCtrlKey(got); back != strings.ToLower(tt.in) {
			t.Fatalf("describeCtrlKey(%#x)=%q, want %q", got, back, strings.ToLower(tt.in))
		}
	}
}
