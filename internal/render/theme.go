package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/algoviz/internal/step"
)

// Theme is the colour scheme for frames and SVG exports.
type Theme struct {
	Name    string
	Roles   map[step.Role]lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Accent  lipgloss.Color
	Pointer lipgloss.Color
	Canvas  lipgloss.Color
}

var (
	ThemeDefault = Theme{
		Name: "default",
		Roles: map[step.Role]lipgloss.Color{
			step.RoleDefault:   "#525252",
			step.RoleActive:    "#60a5fa",
			step.RoleComparing: "#fbbf24",
			step.RoleSwapping:  "#c084fc",
			step.RoleSorted:    "#34d399",
			step.RoleTarget:    "#fb7185",
			step.RoleFound:     "#4ade80",
		},
		Text:    "#f5f5f5",
		Muted:   "#a3a3a3",
		Accent:  "#60a5fa",
		Pointer: "#60a5fa",
		Canvas:  "#171717",
	}

	ThemeCyberpunk = Theme{
		Name: "cyberpunk",
		Roles: map[step.Role]lipgloss.Color{
			step.RoleDefault:   "#666666",
			step.RoleActive:    "#00ffff",
			step.RoleComparing: "#ffff00",
			step.RoleSwapping:  "#ff00ff",
			step.RoleSorted:    "#00ff88",
			step.RoleTarget:    "#ff0000",
			step.RoleFound:     "#00ff00",
		},
		Text:    "#ffffff",
		Muted:   "#666666",
		Accent:  "#ff00ff",
		Pointer: "#00ffff",
		Canvas:  "#0a0a0a",
	}

	ThemeRetro = Theme{
		Name: "retro",
		Roles: map[step.Role]lipgloss.Color{
			step.RoleDefault:   "#005500",
			step.RoleActive:    "#00cc00",
			step.RoleComparing: "#ffff00",
			step.RoleSwapping:  "#88ff88",
			step.RoleSorted:    "#00ff00",
			step.RoleTarget:    "#ff0000",
			step.RoleFound:     "#88ff88",
		},
		Text:    "#00ff00",
		Muted:   "#005500",
		Accent:  "#88ff88",
		Pointer: "#88ff88",
		Canvas:  "#001100",
	}

	ThemeOcean = Theme{
		Name: "ocean",
		Roles: map[step.Role]lipgloss.Color{
			step.RoleDefault:   "#4488aa",
			step.RoleActive:    "#00a8cc",
			step.RoleComparing: "#ffd700",
			step.RoleSwapping:  "#ffcc00",
			step.RoleSorted:    "#00ff88",
			step.RoleTarget:    "#ff4444",
			step.RoleFound:     "#00ff88",
		},
		Text:    "#e0f0ff",
		Muted:   "#4488aa",
		Accent:  "#ffd700",
		Pointer: "#00a8cc",
		Canvas:  "#001a33",
	}

	Themes = []Theme{ThemeDefault, ThemeCyberpunk, ThemeRetro, ThemeOcean}
)

// namedColors resolves the colour names generators put on pointers.
var namedColors = map[string]lipgloss.Color{
	"blue":   "#60a5fa",
	"green":  "#4ade80",
	"yellow": "#fbbf24",
	"red":    "#fb7185",
	"purple": "#c084fc",
	"orange": "#fb923c",
}

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDefault
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// WithColors returns a copy of t with role colours overridden. Keys are role
// names; unknown keys are ignored.
func (t Theme) WithColors(colors map[string]string) Theme {
	roles := make(map[step.Role]lipgloss.Color, len(t.Roles))
	for r, c := range t.Roles {
		roles[r] = c
	}
	for name, c := range colors {
		r := step.Role(strings.ToLower(name))
		if _, ok := roles[r]; ok {
			roles[r] = colorOf(c, roles[r])
		}
	}
	t.Roles = roles
	return t
}

func (t Theme) Color(r step.Role) lipgloss.Color {
	if c, ok := t.Roles[r]; ok {
		return c
	}
	return t.Roles[step.RoleDefault]
}

func (t Theme) PointerColor(p step.Pointer) lipgloss.Color {
	return colorOf(p.Color, t.Pointer)
}

func colorOf(name string, fallback lipgloss.Color) lipgloss.Color {
	switch {
	case name == "":
		return fallback
	case strings.HasPrefix(name, "#"):
		return lipgloss.Color(name)
	}
	if c, ok := namedColors[strings.ToLower(name)]; ok {
		return c
	}
	return fallback
}
