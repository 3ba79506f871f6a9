package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCleanCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove temporary files (script, output log, editor scratch, transfer file)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			removed, err := sess.layout.Cleanup()
			if err != nil {
				return writeErr(cmd, err)
			}
			if removed == nil {
				removed = []string{}
			}
			return writeOut(cmd, app, envelope{
				Data: map[string]any{"removed": removed},
				text: fmt.Sprintf("removed %d files\n%s", len(removed), strings.Join(removed, "\n")),
			})
		},
	}
}

func newPathsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Show where the library keeps its files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			l := sess.layout
			paths := map[string]any{
				"dir":      l.Dir,
				"db":       l.DBPath(),
				"config":   l.ConfigPath(),
				"env":      l.EnvPath(),
				"log":      l.LogPath(),
				"errors":   l.ErrorPath(),
				"script":   l.ScriptPath(),
				"edit":     l.EditPath(),
				"transfer": l.TransferPath(),
				"debugLog": l.DebugLogPath(),
			}
			var b strings.Builder
			for _, k := range []string{"dir", "db", "config", "env", "log", "errors", "script", "edit", "transfer", "debugLog"} {
				fmt.Fprintf(&b, "%-9s %s\n", k, paths[k])
			}
			return writeOut(cmd, app, envelope{Data: paths, text: b.String()})
		},
	}
}
