package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cmdhandler/internal/library"
	"cmdhandler/internal/runner"

	"gopkg.in/yaml.v3"
)

// HighlightGroup styles list entries matching any of its patterns.
type HighlightGroup struct {
	// Name is shown nowhere; it documents the group in the config file.
	Name string `yaml:"name"`

	// Color is a catppuccin color name (e.g. "red", "peach", "mauve").
	Color string `yaml:"color"`

	Bold bool `yaml:"bold"`

	// Patterns match whole command texts; a single * matches anything.
	Patterns []string `yaml:"patterns"`
}

// Config holds user preferences loaded from config.yaml in the data dir.
type Config struct {
	// Theme is auto, latte, frappe, macchiato or mocha.
	Theme string `yaml:"theme"`

	// Shell runs inline and interactive commands.
	Shell string `yaml:"shell"`

	// Editor overrides $VISUAL/$EDITOR for the Update action.
	Editor string `yaml:"editor"`

	// Viewers are tried in order for the output log; "none" disables them.
	Viewers []string `yaml:"viewers"`

	// Terminal is the argv prefix for RunExternal; the script is appended.
	Terminal []string `yaml:"terminal"`

	// TransferFile is the Download/Upload file, relative to the data dir.
	TransferFile string `yaml:"transfer_file"`

	// Search is substring or fuzzy.
	Search string `yaml:"search"`

	// ExitKey leaves an interactive session (ctrl+<key>).
	ExitKey string `yaml:"exit_key"`

	// Highlight groups are checked in order; first match wins.
	Highlight []HighlightGroup `yaml:"highlight"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme:        "auto",
		Shell:        runner.DefaultShell,
		Viewers:      append([]string{}, runner.DefaultViewers...),
		Terminal:     append([]string{}, runner.DefaultTerminal...),
		TransferFile: "download",
		Search:       string(library.ModeSubstring),
		ExitKey:      "ctrl+]",
		Highlight: []HighlightGroup{
			{
				Name:  "dangerous",
				Color: "red",
				Bold:  true,
				Patterns: []string{
					"rm *",
					"sudo *",
					"dd *",
					"mkfs*",
					"kill *",
					"pkill *",
					"killall *",
					"shutdown*",
					"reboot*",
				},
			},
			{
				Name:     "system",
				Color:    "peach",
				Patterns: []string{"systemctl *", "dpkg *", "apt *"},
			},
			{
				Name:     "inspect",
				Color:    "green",
				Patterns: []string{"cat *", "ls*", "df *", "du *", "ps *", "stat *"},
			},
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch library.Mode(c.Search) {
	case library.ModeSubstring, library.ModeFuzzy:
	case "":
		c.Search = string(library.ModeSubstring)
	default:
		return fmt.Errorf("search: unknown mode %q", c.Search)
	}
	if _, ok := FlavorByName(c.Theme); !ok && !strings.EqualFold(strings.TrimSpace(c.Theme), "auto") && strings.TrimSpace(c.Theme) != "" {
		return fmt.Errorf("theme: unknown flavor %q", c.Theme)
	}
	if strings.TrimSpace(c.ExitKey) != "" {
		if _, err := runner.ParseCtrlKey(c.ExitKey); err != nil {
			return err
		}
	}
	for _, g := range c.Highlight {
		if _, ok := PaletteColor(FlavorByNameOrDefault("mocha"), g.Color); !ok {
			return fmt.Errorf("highlight %q: unknown color %q", g.Name, g.Color)
		}
	}
	return nil
}

// SearchMode is the configured matcher.
func (c *Config) SearchMode() library.Mode {
	return library.Mode(c.Search)
}

// ExitKeyByte is the control byte for ExitKey, falling back to ctrl+].
func (c *Config) ExitKeyByte() byte {
	b, err := runner.ParseCtrlKey(c.ExitKey)
	if err != nil {
		return runner.DefaultExitKey
	}
	return b
}

// EditorCommand is the editor argv source: config, $VISUAL, $EDITOR, vim.
func (c *Config) EditorCommand() string {
	if v := strings.TrimSpace(c.Editor); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("VISUAL")); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("EDITOR")); v != "" {
		return v
	}
	return "vim"
}

// HighlightFor returns the first group whose patterns match text.
func (c *Config) HighlightFor(text string) *HighlightGroup {
	for i := range c.Highlight {
		g := &c.Highlight[i]
		for _, p := range g.Patterns {
			if matchPattern(p, text) {
				return g
			}
		}
	}
	return nil
}

// matchPattern supports a single * anywhere in pattern.
func matchPattern(pattern, value string) bool {
	if pattern == value {
		return true
	}
	prefix, suffix, ok := strings.Cut(pattern, "*")
	if !ok {
		return false
	}
	return len(value) >= len(prefix)+len(suffix) &&
		strings.HasPrefix(value, prefix) &&
		strings.HasSuffix(value, suffix)
}
