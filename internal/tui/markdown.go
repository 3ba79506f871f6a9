package tui

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
)

var (
	mdRendererMu sync.Mutex
	// keyed by style + wrap width; building a renderer is not cheap
	mdRenderers = map[string]*glamour.TermRenderer{}
)

func renderMarkdown(md string, width int, st styles) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}

	key := st.flavor.Base().Hex + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	r := mdRenderers[key]
	mdRendererMu.Unlock()

	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStyles(markdownStyleConfig(st)),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRendererMu.Lock()
		if existing := mdRenderers[key]; existing != nil {
			r = existing
		} else {
			mdRenderers[key] = rr
			r = rr
		}
		mdRendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func markdownStyleConfig(st styles) ansi.StyleConfig {
	cfg := glamourstyles.LightStyleConfig
	if st.dark {
		cfg = glamourstyles.DarkStyleConfig
	}

	heading := st.flavor.Mauve().Hex
	cfg.Heading.Color = &heading
	cfg.H1.Color = &heading
	cfg.H2.Color = &heading

	text := st.flavor.Text().Hex
	cfg.Text.Color = &text
	code := st.flavor.Green().Hex
	cfg.Code.Color = &code
	return cfg
}

// helpMarkdown documents every binding, grouped by mode.
func helpMarkdown() string {
	var b strings.Builder
	b.WriteString("# cmdhandler\n\n")
	b.WriteString("Browse, edit and run your saved shell commands. ")
	b.WriteString("The command line under the list is what every action works on.\n\n")

	for _, md := range []mode{modeList, modePrompt, modeSearch, modeOutput} {
		fmt.Fprintf(&b, "## %s mode\n\n", strings.ToUpper(md.String()[:1])+md.String()[1:])
		b.WriteString("| Keys | Action |\n|---|---|\n")
		for _, bd := range bindingsFor(md) {
			keys := make([]string, 0, len(bd.key.Keys()))
			for _, k := range bd.key.Keys() {
				if k == " " {
					k = "space"
				}
				keys = append(keys, "`"+k+"`")
			}
			fmt.Fprintf(&b, "| %s | %s |\n", strings.Join(keys, " "), actionSpecs[bd.action].label)
		}
		b.WriteString("\n")
	}
	b.WriteString("Press any key to close this page.\n")
	return b.String()
}

func (m appModel) renderHelp() string {
	return renderMarkdown(helpMarkdown(), m.width-2, m.styles)
}
