package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write every command to a text file, one per line (default: the transfer file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			path := sess.layout.TransferPath()
			if len(args) == 1 {
				path = args[0]
			}
			n, err := sess.store.ExportFile(context.Background(), path)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope{
				Data: map[string]any{"path": path, "count": n},
				text: fmt.Sprintf("exported %d commands to %s", n, path),
			})
		},
	}
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Replace the library with the lines of a text file (default: the transfer file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			path := sess.layout.TransferPath()
			if len(args) == 1 {
				path = args[0]
			}
			n, err := sess.store.ImportFile(context.Background(), path)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope{
				Data: map[string]any{"path": path, "count": n},
				text: fmt.Sprintf("imported %d commands from %s", n, path),
			})
		},
	}
}
