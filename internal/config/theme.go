package config

import (
	"strings"

	catppuccin "github.com/catppuccin/go"
	"github.com/muesli/termenv"
)

// FlavorByName maps a theme name to a catppuccin flavor.
func FlavorByName(name string) (catppuccin.Flavor, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "latte":
		return catppuccin.Latte, true
	case "frappe":
		return catppuccin.Frappe, true
	case "macchiato":
		return catppuccin.Macchiato, true
	case "mocha":
		return catppuccin.Mocha, true
	}
	return nil, false
}

func FlavorByNameOrDefault(name string) catppuccin.Flavor {
	if f, ok := FlavorByName(name); ok {
		return f
	}
	return catppuccin.Mocha
}

// Flavor resolves the configured theme. "auto" asks the terminal for its
// background and picks mocha (dark) or latte (light).
func (c *Config) Flavor() catppuccin.Flavor {
	if f, ok := FlavorByName(c.Theme); ok {
		return f
	}
	if termenv.HasDarkBackground() {
		return catppuccin.Mocha
	}
	return catppuccin.Latte
}

// PaletteColor returns the hex value of a named accent in flavor.
func PaletteColor(flavor catppuccin.Flavor, name string) (string, bool) {
	var c catppuccin.Color
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rosewater":
		c = flavor.Rosewater()
	case "flamingo":
		c = flavor.Flamingo()
	case "pink":
		c = flavor.Pink()
	case "mauve":
		c = flavor.Mauve()
	case "red":
		c = flavor.Red()
	case "maroon":
		c = flavor.Maroon()
	case "peach":
		c = flavor.Peach()
	case "yellow":
		c = flavor.Yellow()
	case "green":
		c = flavor.Green()
	case "teal":
		c = flavor.Teal()
	case "sky":
		c = flavor.Sky()
	case "sapphire":
		c = flavor.Sapphire()
	case "blue":
		c = flavor.Blue()
	case "lavender":
		c = flavor.Lavender()
	case "text":
		c = flavor.Text()
	case "subtext":
		c = flavor.Subtext0()
	case "overlay":
		c = flavor.Overlay0()
	case "surface":
		c = flavor.Surface0()
	case "base":
		c = flavor.Base()
	default:
		return "", false
	}
	return c.Hex, true
}
