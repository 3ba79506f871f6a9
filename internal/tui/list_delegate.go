package tui

import (
	"fmt"
	"io"
	"strings"

	"cmdhandler/internal/config"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type commandItem struct {
	text string
}

func (i commandItem) FilterValue() string { return i.text }
func (i commandItem) Title() string       { return i.text }

// commandDelegate renders one command per row, colored by highlight group.
type commandDelegate struct {
	styles styles
	cfg    *config.Config
}

func newCommandDelegate(st styles, cfg *config.Config) commandDelegate {
	return commandDelegate{styles: st, cfg: cfg}
}

func (d commandDelegate) Height() int                             { return 1 }
func (d commandDelegate) Spacing() int                            { return 0 }
func (d commandDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d commandDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		return
	}

	txt := ""
	if t, ok := item.(commandItem); ok {
		txt = t.text
	} else {
		txt = fmt.Sprint(item)
	}

	marker := "  "
	style := d.rowStyle(txt)
	if index == m.Index() {
		marker = "> "
		style = style.Inherit(d.styles.selected)
	}

	line := marker + txt
	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Truncate(line, contentW-1, "…")
	}

	fmt.Fprint(w, style.Render(line))
}

func (d commandDelegate) rowStyle(text string) lipgloss.Style {
	if d.cfg != nil {
		if g := d.cfg.HighlightFor(text); g != nil {
			if st, ok := d.styles.highlight[g.Name]; ok {
				return st
			}
		}
	}
	return d.styles.normal
}

func newCommandList(delegate list.ItemDelegate) list.Model {
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}
