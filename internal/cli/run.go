package cli

import (
	"context"
	"errors"
	"strings"

	"cmdhandler/internal/runner"

	"github.com/spf13/cobra"
)

func newRunCmd(app *App) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "run <command...>",
		Short: "Run a command through the shell, appending its output to the log",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			text := strings.TrimSpace(strings.Join(args, " "))
			if save {
				if err := sess.store.Add(context.Background(), text); err != nil {
					return writeErr(cmd, err)
				}
			}

			r := &runner.Runner{
				Shell:      sess.cfg.Shell,
				ScriptPath: sess.layout.ScriptPath(),
				LogPath:    sess.layout.LogPath(),
				ErrorPath:  sess.layout.ErrorPath(),
			}
			res := r.Run(cmd.Context(), text)

			var spawnErr *runner.SpawnError
			if errors.As(res.Err, &spawnErr) {
				return writeErr(cmd, spawnErr)
			}

			if err := writeOut(cmd, app, envelope{
				Data: map[string]any{
					"command":    res.Command,
					"exitCode":   res.ExitCode,
					"lines":      res.Lines,
					"durationMs": res.Duration.Milliseconds(),
				},
				text: strings.Join(res.Lines, "\n"),
			}); err != nil {
				return err
			}
			if res.Err != nil {
				return writeErr(cmd, res.Err)
			}
			if res.ExitCode != 0 {
				return writeErr(cmd, errCommandFailed(text, res.ExitCode))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "Also add the command to the library")
	return cmd
}
