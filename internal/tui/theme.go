package tui

import (
	"os"
	"strings"

	"cmdhandler/internal/config"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type styles struct {
	flavor catppuccin.Flavor
	dark   bool

	title     lipgloss.Style
	muted     lipgloss.Style
	accent    lipgloss.Style
	selected  lipgloss.Style
	normal    lipgloss.Style
	prompt    lipgloss.Style
	errorText lipgloss.Style

	// highlight is keyed by config highlight group name.
	highlight map[string]lipgloss.Style
}

func newStyles(cfg *config.Config) styles {
	flavor := cfg.Flavor()
	c := func(name string) lipgloss.Color {
		hex, _ := config.PaletteColor(flavor, name)
		return lipgloss.Color(hex)
	}

	st := styles{
		flavor:    flavor,
		dark:      flavor != catppuccin.Latte,
		title:     lipgloss.NewStyle().Bold(true).Foreground(c("mauve")),
		muted:     lipgloss.NewStyle().Foreground(c("overlay")),
		accent:    lipgloss.NewStyle().Foreground(c("blue")),
		selected:  lipgloss.NewStyle().Foreground(c("text")).Background(c("surface")).Bold(true),
		normal:    lipgloss.NewStyle().Foreground(c("text")),
		prompt:    lipgloss.NewStyle().Foreground(c("green")).Bold(true),
		errorText: lipgloss.NewStyle().Foreground(c("red")),
		highlight: map[string]lipgloss.Style{},
	}
	for _, g := range cfg.Highlight {
		hs := lipgloss.NewStyle().Foreground(c(g.Color))
		if g.Bold {
			hs = hs.Bold(true)
		}
		st.highlight[g.Name] = hs
	}
	return st
}

// applyColorProfilePreference sets Lip Gloss's color profile for the TUI.
// NO_COLOR wins; otherwise TERM/COLORTERM may upgrade termenv's guess.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && profile > termenv.ANSI256 {
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
}
