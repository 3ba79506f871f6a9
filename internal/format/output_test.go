package format

import (
	"bytes"
	"strings"
	"testing"
)

type listPayload struct {
	Count    int      `json:"count"`
	Commands []string `json:"commands"`
}

func (p listPayload) Text() string { return strings.Join(p.Commands, "\n") }

func TestWriteFormats(t *testing.T) {
	payload := listPayload{Count: 2, Commands: []string{"ls -la", "df -h"}}
	tests := []struct {
		format string
		pretty bool
		want   string
	}{
		{"json", false, `{"count":2,"commands":["ls -la","df -h"]}` + "\n"},
		{"", false, `{"count":2,"commands":["ls -la","df -h"]}` + "\n"},
		{"edn", false, `{:count 2 :commands ["ls -la" "df -h"]}` + "\n"},
		{"edn", true, "{\n  :count 2\n  :commands [\n    \"ls -la\"\n    \"df -h\"\n  ]\n}\n"},
		{"text", false, "ls -la\ndf -h\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := Write(&buf, payload, tt.format, tt.pretty); err != nil {
			t.Fatalf("%s: %v", tt.format, err)
		}
		if buf.String() != tt.want {
			t.Errorf("%s pretty=%v:\n got %q\nwant %q", tt.format, tt.pretty, buf.String(), tt.want)
		}
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, 1, "xml", false); err == nil {
		t.Fatal("expected error")
	}
}

func TestWriteTextVariants(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{[]string{"a", "b"}, "a\nb\n"},
		{[]string{}, ""},
		{"removed\n", "removed\n"},
		{3, "3\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := WriteText(&buf, tt.in); err != nil {
			t.Fatal(err)
		}
		if buf.String() != tt.want {
			t.Errorf("WriteText(%v) = %q, want %q", tt.in, buf.String(), tt.want)
		}
	}
}

func TestEDNKeywordUnderscores(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEDN(&buf, map[string]any{"exit_code": 1, "ok": nil}, false); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "{:exit-code 1 :ok nil}\n" {
		t.Fatalf("got %q", got)
	}
}

type runPayload struct {
	Command    string         `json:"command"`
	ExitCode   int            `json:"exitCode"`
	DurationMs int64          `json:"durationMs"`
	Lines      []string       `json:"lines"`
	Meta       map[string]any `json:"meta,omitempty"`
	Hidden     string         `json:"-"`
	note       string
}

func TestEDNTypedPayload(t *testing.T) {
	p := runPayload{Command: "echo hi", ExitCode: 1, DurationMs: 12, Lines: []string{"hi"}, Hidden: "x", note: "y"}
	var buf bytes.Buffer
	if err := WriteEDN(&buf, &p, false); err != nil {
		t.Fatal(err)
	}
	want := `{:command "echo hi" :exit-code 1 :duration-ms 12 :lines ["hi"]}` + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestEDNNilAndEmpty(t *testing.T) {
	var nilLines []string
	tests := []struct {
		in   any
		want string
	}{
		{nil, "nil\n"},
		{nilLines, "nil\n"},
		{[]string{}, "[]\n"},
		{map[string]any{}, "{}\n"},
		{1.5, "1.5\n"},
		{map[string]any{"removed": []any{"a", 2, true}}, `{:removed ["a" 2 true]}` + "\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := WriteEDN(&buf, tt.in, false); err != nil {
			t.Fatal(err)
		}
		if buf.String() != tt.want {
			t.Errorf("WriteEDN(%#v) = %q, want %q", tt.in, buf.String(), tt.want)
		}
	}
}

func TestEDNKeyword(t *testing.T) {
	tests := map[string]string{
		"exitCode":  "exit-code",
		"debugLog":  "debug-log",
		"exit_code": "exit-code",
		"query":     "query",
		"db":        "db",
	}
	for in, want := range tests {
		if got := ednKeyword(in); got != want {
			t.Errorf("ednKeyword(%q) = %q, want %q", in, got, want)
		}
	}
}
