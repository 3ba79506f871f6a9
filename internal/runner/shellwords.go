package runner

import "unicode"

// SplitWords splits a configured command line (editor, viewer, terminal)
// into argv. Single quotes, double quotes and backslash escapes outside
// single quotes are honored; nothing is expanded.
func SplitWords(s string) []string {
	var (
		out      []string
		cur      []rune
		inSingle bool
		inDouble bool
		escaped  bool
		started  bool
	)

	flush := func() {
		if !started {
			return
		}
		out = append(out, string(cur))
		cur = cur[:0]
		started = false
	}

	for _, r := range s {
		switch {
		case escaped:
			cur = append(cur, r)
			escaped = false
		case r == '\\' && !inSingle:
			escaped = true
			started = true
		case r == '\'' && !inDouble:
			inSingle = !inSingle
			started = true
		case r == '"' && !inSingle:
			inDouble = !inDouble
			started = true
		case !inSingle && !inDouble && unicode.IsSpace(r):
			flush()
		default:
			cur = append(cur, r)
			started = true
		}
	}

	flush()
	return out
}
