package cli

import (
	"fmt"
	"os"
	"strings"

	"cmdhandler/internal/format"
	"cmdhandler/internal/logger"
	"cmdhandler/internal/store"
	"cmdhandler/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string
	Debug      bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "cmdhandler",
		Short:        "Keep, search and run your favourite shell commands",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  cmdhandler

  # Scriptable commands
  cmdhandler list git
  cmdhandler add "du -sh * | sort -h"

  # Run a command through the library's shell and log (shortcut for: cmdhandler run ...)
  cmdhandler "df -h"
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", "", "Data directory (default: $CMDHANDLER_DIR, a .cmdhandler dir above the cwd, or ~/.cmdhandler)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("CMDHANDLER_FORMAT", "json"), "Output format ("+strings.Join(format.Formats(), "|")+")")
	cmd.PersistentFlags().BoolVar(&app.Debug, "debug", false, "Write debug records to cmdhandler.log")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newRunCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newCleanCmd(app))
	cmd.AddCommand(newPathsCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	sess, err := openSession(app)
	if err != nil {
		return err
	}
	defer sess.Close()

	w, err := store.Watch(sess.store.Path())
	if err != nil {
		logger.Warn("store watcher disabled: %v", err)
	} else {
		defer w.Close()
	}

	return tui.Run(tui.Options{
		Store:   sess.store,
		Layout:  sess.layout,
		Config:  sess.cfg,
		Watcher: w,
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// envelope is the output shape of every subcommand. Text is what --format
// text prints.
type envelope struct {
	Data any            `json:"data"`
	Meta map[string]any `json:"meta,omitempty"`
	text string
}

func (e envelope) Text() string { return e.text }

func writeOut(cmd *cobra.Command, app *App, v envelope) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
