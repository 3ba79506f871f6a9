package tui

import (
	"fmt"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// chrome rows: header, edit line, search line, action bar, minibuffer
const chromeRows = 5

func (m *appModel) resize() {
	w := m.width
	if w < 20 {
		w = 20
	}
	h := m.height - chromeRows
	if h < 3 {
		h = 3
	}
	m.list.SetSize(w, h)
	m.input.Width = w - 4
	m.search.Width = w - 4
	m.help.Width = w
	m.output.Width = w
	m.output.Height = m.height - 2
	if m.output.Height < 3 {
		m.output.Height = 3
	}
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.mode {
	case modeHelp:
		return m.output.View() + "\n" + m.styles.muted.Render("any key: close")
	case modeOutput:
		return m.viewOutput()
	}

	var lines []string
	lines = append(lines, m.viewHeader())
	if m.sel.Len() == 0 {
		empty := m.styles.muted.Render("No commands yet. Type one below (tab) and press ctrl+a to add it.")
		lines = append(lines, empty+strings.Repeat("\n", max(0, m.list.Height()-1)))
	} else {
		lines = append(lines, m.list.View())
	}
	lines = append(lines, m.input.View())
	if m.mode == modeSearch || m.query != "" {
		lines = append(lines, m.search.View())
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, m.help.ShortHelpView(helpKeyMap{mode: m.mode}.ShortHelp()))
	lines = append(lines, m.viewMinibuffer())
	return strings.Join(lines, "\n")
}

func (m appModel) viewHeader() string {
	count := fmt.Sprintf("%d commands", len(m.all))
	if m.query != "" {
		count = fmt.Sprintf("%d/%d commands  /%s", m.sel.Len(), len(m.all), m.query)
	}
	left := m.styles.title.Render("cmdhandler")
	right := m.styles.muted.Render(count + "  " + m.mode.String())
	return truncate(left+"  "+right, m.width)
}

func (m appModel) viewMinibuffer() string {
	if m.minibufferText == "" {
		return ""
	}
	return m.styles.accent.Render(truncate(m.minibufferText, m.width))
}

func truncate(s string, width int) string {
	if width <= 0 || xansi.StringWidth(s) <= width {
		return s
	}
	return xansi.Truncate(s, width-1, "…")
}
