package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - edn
// - text
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "edn":
		return WriteEDN(w, v, pretty)
	case "text":
		return WriteText(w, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// Formats lists the names accepted by Write.
func Formats() []string { return []string{"json", "edn", "text"} }

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// Texter is implemented by payloads with a plain-text rendering.
type Texter interface {
	Text() string
}

// WriteText writes one line per element for string lists, the Text() of a
// Texter, or fmt's %v for anything else.
func WriteText(w io.Writer, v any) error {
	var out string
	switch t := v.(type) {
	case Texter:
		out = t.Text()
	case []string:
		out = strings.Join(t, "\n")
	case string:
		out = t
	default:
		out = fmt.Sprintf("%v", v)
	}
	if out == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(out, "\n"))
	return err
}
