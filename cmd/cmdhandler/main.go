package main

import (
	"os"
	"strings"

	"cmdhandler/internal/cli"
)

// isInlineCommand reports whether a positional token is a shell command
// rather than a subcommand name.
func isInlineCommand(s string) bool {
	return strings.ContainsAny(strings.TrimSpace(s), " \t")
}

// rewriteInlineRunArgs turns `cmdhandler "df -h"` into `cmdhandler run "df -h"`.
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten
// before parsing.
func rewriteInlineRunArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":    true,
		"--format": true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
		"--debug":  true,
	}

	insertRun := func(i int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, "run")
		out = append(out, argv[i:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isInlineCommand(argv[i+1]) {
				return insertRun(i + 1)
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}

		if isInlineCommand(a) {
			return insertRun(i)
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteInlineRunArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
