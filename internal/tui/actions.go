package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"cmdhandler/internal/library"
	"cmdhandler/internal/runner"
	"cmdhandler/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

// dispatch runs the handler for a resolved action. Handlers never return
// errors; failures end up in the minibuffer or the output overlay.
func (m *appModel) dispatch(a action, msg tea.KeyMsg) tea.Cmd {
	m.log.Debug("action", "action", a.String(), "mode", m.mode.String(), "key", msg.String())

	switch a {
	case actionNavigateUp:
		return m.navigate(-1)
	case actionNavigateDown:
		return m.navigate(1)
	case actionEnterSearch:
		return m.enterSearch()
	case actionCommitSearch:
		return m.commitSearch()
	case actionSwitchToPrompt:
		m.mode = modePrompt
		m.input.CursorEnd()
		return m.input.Focus()
	case actionCancel:
		return m.cancel()
	case actionClearBuffer:
		m.sel.SetEditBuffer("")
		m.input.SetValue("")
		return nil
	case actionAdd:
		return m.addCommand()
	case actionRemove:
		return m.removeCommand()
	case actionUpdate:
		return m.updateCommand()
	case actionCopy:
		return m.copyCommand()
	case actionRun:
		return m.runCommand()
	case actionRunInteractive:
		return m.runInteractive()
	case actionRunExternal:
		return m.runExternal()
	case actionShowLog:
		return m.showLog()
	case actionDownload:
		return m.download()
	case actionUpload:
		return m.upload()
	case actionShowHelp:
		m.mode = modeHelp
		m.output.SetContent(m.renderHelp())
		m.output.GotoTop()
		return nil
	case actionRefresh:
		return m.reloadWithNotice("Reloaded")
	case actionCleanup:
		return m.cleanup()
	case actionExit:
		return m.exit()
	case actionDismissOverlay:
		return m.reload()
	case actionPassThrough:
		return m.passThrough(msg)
	}
	return nil
}

func (m *appModel) reload() tea.Cmd {
	if err := m.reloadSession(); err != nil {
		return m.reportError("reload", err)
	}
	return nil
}

func (m *appModel) reloadWithNotice(text string) tea.Cmd {
	if err := m.reloadSession(); err != nil {
		return m.reportError("reload", err)
	}
	return m.showMinibuffer(text)
}

func (m *appModel) navigate(delta int) tea.Cmd {
	i, ok := m.sel.Index()
	if !ok {
		return nil
	}
	if m.sel.SetFocus(i + delta) {
		m.list.Select(i + delta)
		m.syncInput()
	}
	return nil
}

func (m *appModel) enterSearch() tea.Cmd {
	m.input.Blur()
	m.mode = modeSearch
	m.search.SetValue(m.query)
	m.search.CursorEnd()
	return m.search.Focus()
}

// liveSearch re-filters the full library as the query is typed.
func (m *appModel) liveSearch() {
	q := m.search.Value()
	if library.IsBlankQuery(q) {
		m.query = ""
		m.showSnapshot(m.all)
		return
	}
	got, _ := library.Search(m.all, q, m.cfg.SearchMode())
	m.query = strings.TrimSpace(q)
	m.showSnapshot(got)
}

func (m *appModel) commitSearch() tea.Cmd {
	q := m.search.Value()
	m.search.Blur()
	m.mode = modeList
	if m.pendingReload {
		if err := m.reloadSession(); err != nil {
			return m.reportError("reload", err)
		}
		m.search.SetValue(q)
	}

	got, matched := library.Search(m.all, q, m.cfg.SearchMode())
	m.showSnapshot(got)
	if library.IsBlankQuery(q) {
		m.query = ""
		return nil
	}
	if !matched {
		m.query = ""
		m.search.SetValue("")
		return m.showMinibuffer(fmt.Sprintf("No command matches %q; showing all", strings.TrimSpace(q)))
	}
	m.query = strings.TrimSpace(q)
	return m.showMinibuffer(fmt.Sprintf("%d of %d commands match", len(got), len(m.all)))
}

func (m *appModel) cancel() tea.Cmd {
	switch m.mode {
	case modeSearch:
		return m.reload()
	case modePrompt:
		if m.pendingReload {
			return m.reload()
		}
		m.mode = modeList
		m.input.Blur()
		if text, ok := m.sel.Selected(); ok {
			m.sel.SetEditBuffer(text)
		} else {
			m.sel.SetEditBuffer("")
		}
		m.syncInput()
	}
	return nil
}

func (m *appModel) passThrough(msg tea.KeyMsg) tea.Cmd {
	m.input.Focus()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.input.Blur()
	m.sel.SetEditBuffer(m.input.Value())
	return cmd
}

func (m *appModel) addCommand() tea.Cmd {
	text := m.sel.EditBuffer()
	if err := m.store.Add(m.ctx, text); err != nil {
		return m.reportError("add", err)
	}
	m.log.Info("command added", "text", strings.TrimSpace(text))
	return m.reloadWithNotice("Added: " + strings.TrimSpace(text))
}

func (m *appModel) removeCommand() tea.Cmd {
	text := m.sel.EditBuffer()
	if strings.TrimSpace(text) == "" {
		return m.showMinibuffer("Nothing to remove")
	}
	if err := m.store.Delete(m.ctx, text); err != nil {
		return m.reportError("remove", err)
	}
	m.log.Info("command removed", "text", strings.TrimSpace(text))
	return m.reloadWithNotice("Removed: " + strings.TrimSpace(text))
}

func (m *appModel) updateCommand() tea.Cmd {
	text := m.sel.EditBuffer()
	if strings.TrimSpace(text) == "" {
		return m.showMinibuffer("Nothing to edit")
	}
	return m.editor.EditExternally(text)
}

// applyEdit replaces the original text with the edited one. Editor failures
// and blank results leave the store untouched.
func (m *appModel) applyEdit(msg editDoneMsg) tea.Cmd {
	if msg.err != nil {
		return m.reportError("edit", msg.err)
	}
	edited := strings.TrimSpace(msg.edited)
	if edited == "" {
		return m.showMinibuffer("Edited command is empty; nothing changed")
	}
	if edited == strings.TrimSpace(msg.original) {
		return m.reloadWithNotice("No changes")
	}
	if err := m.store.Replace(m.ctx, msg.original, edited); err != nil {
		return m.reportError("update", err)
	}
	m.log.Info("command updated", "from", strings.TrimSpace(msg.original), "to", edited)
	return m.reloadWithNotice("Updated: " + edited)
}

func (m *appModel) copyCommand() tea.Cmd {
	text := m.sel.EditBuffer()
	if err := m.clipboard.WriteAll(text); err != nil {
		return m.reportError("copy", err)
	}
	return m.reloadWithNotice("Copied to clipboard")
}

func (m *appModel) runCommand() tea.Cmd {
	text := strings.TrimSpace(m.sel.EditBuffer())
	if text == "" {
		return m.showMinibuffer("Nothing to run")
	}

	res := m.runner.Run(m.ctx, text)
	m.log.Info("command ran", "command", text, "exit", res.ExitCode, "lines", len(res.Lines), "duration", res.Duration)

	var spawnErr *runner.SpawnError
	if errors.As(res.Err, &spawnErr) {
		m.log.Error("spawn failed", "command", text, "err", spawnErr)
		m.showOutput("Failed to start: "+text, res.Lines)
		return nil
	}
	if res.Err != nil {
		m.log.Error("output log", "err", res.Err)
		m.showOutput(m.resultTitle(res), res.Lines)
		return m.showMinibuffer(describeError("log", res.Err))
	}

	if viewer, ok := runner.FindViewer(m.cfg.Viewers, m.lookPath); ok {
		return m.openViewer(viewer, m.layout.LogPath())
	}
	m.showOutput(m.resultTitle(res), res.Lines)
	return nil
}

func (m *appModel) resultTitle(res runner.Result) string {
	title := fmt.Sprintf("$ %s  exit %d  %s", res.Command, res.ExitCode, res.Duration.Round(1e6))
	if st, err := os.Stat(m.layout.LogPath()); err == nil {
		title += "  log " + humanize.Bytes(uint64(st.Size()))
	}
	return title
}

func (m *appModel) openViewer(viewer, path string) tea.Cmd {
	cmd := runner.ViewerCommand(viewer, path)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return viewerDoneMsg{path: path, err: err}
	})
}

func (m *appModel) runInteractive() tea.Cmd {
	text := strings.TrimSpace(m.sel.EditBuffer())
	if text == "" {
		return m.showMinibuffer("Nothing to run")
	}
	m.log.Info("interactive session", "command", text)
	session := runner.NewInteractive(m.cfg.Shell, text, m.cfg.ExitKeyByte())
	return tea.Exec(session, func(err error) tea.Msg {
		return interactiveDoneMsg{command: text, err: err}
	})
}

func (m *appModel) finishInteractive(msg interactiveDoneMsg) tea.Cmd {
	if err := m.reloadSession(); err != nil {
		return m.reportError("reload", err)
	}
	switch {
	case msg.err == nil:
		return m.showMinibuffer("Session ended: " + msg.command)
	case errors.Is(msg.err, runner.ErrDetached):
		return m.showMinibuffer("Detached from: " + msg.command)
	default:
		var spawnErr *runner.SpawnError
		if errors.As(msg.err, &spawnErr) {
			return m.reportError("interactive run", msg.err)
		}
		return m.showMinibuffer(fmt.Sprintf("Session ended: %s (%v)", msg.command, msg.err))
	}
}

func (m *appModel) runExternal() tea.Cmd {
	text := strings.TrimSpace(m.sel.EditBuffer())
	if text == "" {
		return m.showMinibuffer("Nothing to run")
	}
	if err := m.startExternal(m.cfg.Terminal, text); err != nil {
		return m.reportError("external run", err)
	}
	m.log.Info("external run", "command", text)
	return m.showMinibuffer("Started in new terminal: " + text)
}

func (m *appModel) showLog() tea.Cmd {
	path := m.layout.LogPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return m.showMinibuffer("No output yet")
		}
		return m.reportError("show log", err)
	}
	if viewer, ok := runner.FindViewer(m.cfg.Viewers, m.lookPath); ok {
		return m.openViewer(viewer, path)
	}
	title := fmt.Sprintf("%s  %s", path, humanize.Bytes(uint64(len(data))))
	m.showOutput(title, readLines(path))
	m.output.GotoBottom()
	return nil
}

func (m *appModel) download() tea.Cmd {
	path := m.layout.TransferPath()
	n, err := m.store.ExportFile(m.ctx, path)
	if err != nil {
		return m.reportError("download", err)
	}
	m.log.Info("exported", "path", path, "commands", n)
	return m.showMinibuffer(fmt.Sprintf("Exported %d commands to %s", n, path))
}

func (m *appModel) upload() tea.Cmd {
	path := m.layout.TransferPath()
	n, err := m.store.ImportFile(m.ctx, path)
	if err != nil {
		return m.reportError("upload", err)
	}
	m.log.Info("imported", "path", path, "commands", n)
	return m.reloadWithNotice(fmt.Sprintf("Imported %d commands from %s", n, path))
}

func (m *appModel) cleanup() tea.Cmd {
	removed, err := m.layout.Cleanup()
	if err != nil {
		return m.reportError("cleanup", err)
	}
	m.log.Info("cleanup", "removed", len(removed))
	return m.showMinibuffer(fmt.Sprintf("Removed %d temporary files", len(removed)))
}

func (m *appModel) exit() tea.Cmd {
	if _, err := m.layout.Cleanup(); err != nil {
		m.log.Warn("cleanup on exit", "err", err)
	}
	m.quitting = true
	return tea.Quit
}

func describeError(op string, err error) string {
	var (
		validation  *store.ValidationError
		importErr   *store.ImportError
		persistence *store.PersistenceError
		spawnErr    *runner.SpawnError
	)
	switch {
	case errors.As(err, &validation):
		return "Invalid command: " + validation.Reason
	case errors.As(err, &importErr):
		return fmt.Sprintf("Cannot import %s: %v", importErr.Path, importErr.Err)
	case errors.As(err, &persistence):
		return fmt.Sprintf("Storage error (%s): %v", persistence.Op, persistence.Err)
	case errors.As(err, &spawnErr):
		return "Cannot start: " + spawnErr.Err.Error()
	}
	return fmt.Sprintf("%s failed: %v", op, err)
}
