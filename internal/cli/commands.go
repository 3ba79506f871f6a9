package cli

import (
	"context"
	"strings"

	"cmdhandler/internal/library"

	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	var fuzzy bool
	cmd := &cobra.Command{
		Use:   "list [query]",
		Short: "List commands, newest first, optionally filtered",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			all, err := sess.store.List(context.Background())
			if err != nil {
				return writeErr(cmd, err)
			}
			query := strings.Join(args, " ")
			mode := sess.cfg.SearchMode()
			if fuzzy {
				mode = library.ModeFuzzy
			}

			out := all
			if !library.IsBlankQuery(query) {
				if mode == library.ModeFuzzy {
					out = library.Fuzzy(all, query)
				} else {
					out = library.Filter(all, query)
				}
			}
			return writeOut(cmd, app, envelope{
				Data: []string(out),
				Meta: map[string]any{
					"count": len(out),
					"total": len(all),
					"query": strings.TrimSpace(query),
					"mode":  string(mode),
				},
				text: strings.Join(out, "\n"),
			})
		},
	}
	cmd.Flags().BoolVar(&fuzzy, "fuzzy", false, "Use fuzzy matching regardless of config")
	return cmd
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <command...>",
		Short: "Add a command (an existing identical command moves to the top)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			text := strings.TrimSpace(strings.Join(args, " "))
			if err := sess.store.Add(context.Background(), text); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope{
				Data: map[string]any{"text": text},
				text: "added: " + text,
			})
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <command...>",
		Aliases: []string{"remove"},
		Short:   "Remove a command by its exact text",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			ctx := context.Background()
			text := strings.TrimSpace(strings.Join(args, " "))
			before, err := sess.store.Count(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := sess.store.Delete(ctx, text); err != nil {
				return writeErr(cmd, err)
			}
			after, err := sess.store.Count(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}

			removed := after < before
			msg := "removed: " + text
			if !removed {
				msg = "not found: " + text
			}
			return writeOut(cmd, app, envelope{
				Data: map[string]any{"text": text, "removed": removed},
				text: msg,
			})
		},
	}
}
