// Package render draws player state as terminal frames, SVG, plots and
// markdown transcripts.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/player"
	"github.com/san-kum/algoviz/internal/step"
)

// Options control what a frame shows.
type Options struct {
	Title       string
	ShowIndices bool
	ShowValues  bool
	ShowCode    bool
	// Width wraps the cell row. Zero disables wrapping.
	Width    int
	Theme    Theme
	Renderer *lipgloss.Renderer
}

// OptionsFrom builds frame options from a visualizer config.
func OptionsFrom(cfg config.Visualizer, theme string) Options {
	return Options{
		ShowIndices: cfg.ShowIndices,
		ShowValues:  cfg.ShowValues,
		ShowCode:    true,
		Theme:       GetTheme(theme).WithColors(cfg.Colors),
	}
}

// NewRenderer returns a renderer that detects the colour profile of w.
func NewRenderer(w io.Writer) *lipgloss.Renderer {
	return lipgloss.NewRenderer(w)
}

// PlainRenderer returns a renderer that emits no escape sequences.
func PlainRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return r
}

func (o Options) renderer() *lipgloss.Renderer {
	if o.Renderer != nil {
		return o.Renderer
	}
	return lipgloss.DefaultRenderer()
}

func (o Options) theme() Theme {
	if o.Theme.Roles == nil {
		return ThemeDefault
	}
	return o.Theme
}

// Frame renders the store's current derived state.
func Frame(s *player.Store, opts Options) string {
	r := opts.renderer()
	th := opts.theme()
	text := r.NewStyle().Foreground(th.Text)
	muted := r.NewStyle().Foreground(th.Muted)

	var b strings.Builder
	if opts.Title != "" {
		b.WriteString(r.NewStyle().Bold(true).Foreground(th.Accent).Render(opts.Title))
		b.WriteString("\n\n")
	}

	b.WriteString(Cells(s, opts))
	b.WriteString("\n\n")

	if cur, ok := s.Current(); ok {
		b.WriteString(muted.Render(fmt.Sprintf("Step %d/%d", s.Index()+1, s.Len())))
		b.WriteString("  ")
		b.WriteString(text.Render(cur.Description))
		b.WriteString("\n")
		if opts.ShowCode && cur.Code != "" {
			b.WriteString(r.NewStyle().Foreground(th.Accent).Render("  > " + cur.Code))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(muted.Render("No steps"))
		b.WriteString("\n")
	}

	if vars := Variables(s); vars != "" {
		b.WriteString(text.Render(vars))
		b.WriteString("\n")
	}
	return b.String()
}

// Variables formats the variable snapshot as one line.
func Variables(s *player.Store) string {
	vars := s.Variables()
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = v.Name + " = " + v.Value.String()
	}
	return strings.Join(parts, " | ")
}

// Cells renders the data array with pointers above and indices below.
func Cells(s *player.Store, opts Options) string {
	r := opts.renderer()
	th := opts.theme()
	data := s.Data()
	if len(data) == 0 {
		return r.NewStyle().Foreground(th.Muted).Render("(empty)")
	}

	inner := 1
	for i, v := range data {
		inner = max(inner, lipgloss.Width(v.String()), lipgloss.Width(fmt.Sprint(i)))
		if p, ok := s.PointerAt(i); ok {
			inner = max(inner, lipgloss.Width(pointerLabel(s, i, p))-2)
		}
	}
	width := inner + 2

	columns := make([]string, len(data))
	for i, v := range data {
		role := s.ElementState(i)
		color := th.Color(role)

		label := " "
		arrow := " "
		pcolor := th.Pointer
		if p, ok := s.PointerAt(i); ok {
			label = pointerLabel(s, i, p)
			arrow = "v"
			pcolor = th.PointerColor(p)
		}
		pstyle := r.NewStyle().Foreground(pcolor).Width(width).Align(lipgloss.Center)

		content := v.String()
		if !opts.ShowValues {
			content = ""
		}
		box := r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color).
			Foreground(color).
			Width(inner).
			Align(lipgloss.Center)
		if role != step.RoleDefault {
			box = box.Bold(true)
		}

		parts := []string{pstyle.Render(label), pstyle.Render(arrow), box.Render(content)}
		if opts.ShowIndices {
			parts = append(parts, r.NewStyle().Foreground(th.Muted).Width(width).Align(lipgloss.Center).Render(fmt.Sprint(i)))
		}
		columns[i] = lipgloss.JoinVertical(lipgloss.Center, parts...)
	}

	perRow := len(columns)
	if opts.Width > 0 {
		perRow = max(1, (opts.Width+1)/(width+1))
	}
	var rows []string
	for start := 0; start < len(columns); start += perRow {
		end := min(start+perRow, len(columns))
		row := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				row = append(row, " ")
			}
			row = append(row, columns[i])
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}

// pointerLabel joins the names of every pointer at index i.
func pointerLabel(s *player.Store, i int, first step.Pointer) string {
	names := []string{}
	for _, p := range s.Pointers() {
		if p.Index == i {
			names = append(names, p.Name)
		}
	}
	if len(names) == 0 {
		return first.Name
	}
	return strings.Join(names, ",")
}

// Status is the one-line transport summary.
func Status(s *player.Store) string {
	state := "paused"
	if s.IsPlaying() {
		state = "playing"
	}
	return fmt.Sprintf("%s  %.2gx  step %d/%d", state, s.Speed(), min(s.Index()+1, s.Len()), s.Len())
}
