//go:build !windows

package runner

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
)

// watchResize keeps the pty's window size in sync with tty.
func watchResize(tty, ptmx *os.File) func() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)
	go func() {
		for range ch {
			_ = pty.InheritSize(tty, ptmx)
		}
	}()
	ch <- syscall.SIGWINCH
	return func() {
		signal.Stop(ch)
		close(ch)
	}
}
