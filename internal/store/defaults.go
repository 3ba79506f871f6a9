package store

import _ "embed"

//go:embed defaults.txt
var defaultCommands string

// DefaultCommands is the built-in library used to seed an empty store.
func DefaultCommands() []string {
	var out []string
	for _, l := range SplitLines(defaultCommands) {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}
