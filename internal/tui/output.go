package tui

import (
	"os"
	"strings"
)

// showOutput opens the output overlay with lines.
func (m *appModel) showOutput(title string, lines []string) {
	m.mode = modeOutput
	m.outputTitle = title
	body := strings.Join(lines, "\n")
	if len(lines) == 0 {
		body = m.styles.muted.Render("(no output)")
	}
	m.output.SetContent(body)
	m.output.GotoTop()
}

func (m appModel) viewOutput() string {
	header := m.styles.title.Render(truncate(m.outputTitle, m.width))
	footer := m.styles.muted.Render("esc/q/enter: close  ↑/↓ pgup/pgdn: scroll")
	return strings.Join([]string{header, m.output.View(), footer}, "\n")
}

// readLines returns the lines of path, or nil when it cannot be read.
func readLines(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return nil
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}
