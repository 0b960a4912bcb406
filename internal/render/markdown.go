package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/san-kum/algoviz/internal/step"
)

// Markdown writes a step-by-step transcript of seq.
func Markdown(title string, data []step.Value, seq step.Sequence) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

	items := make([]string, len(data))
	for i, v := range data {
		items[i] = v.String()
	}
	fmt.Fprintf(&b, "Input: `[%s]`, %d steps.\n\n", strings.Join(items, ", "), len(seq))

	for i, s := range seq {
		fmt.Fprintf(&b, "%d. **%s** %s", i+1, s.Kind, s.Description)
		if len(s.Indices) > 0 {
			idx := make([]string, len(s.Indices))
			for j, n := range s.Indices {
				idx[j] = fmt.Sprint(n)
			}
			fmt.Fprintf(&b, " _(%s: %s)_", s.EffectiveRole(), strings.Join(idx, ", "))
		}
		b.WriteString("\n")
		if s.Code != "" {
			fmt.Fprintf(&b, "   `%s`\n", s.Code)
		}
		if names := s.VarNames(); len(names) > 0 {
			vars := make([]string, len(names))
			for j, name := range names {
				vars[j] = fmt.Sprintf("`%s = %s`", name, s.Variables[name])
			}
			fmt.Fprintf(&b, "   %s\n", strings.Join(vars, " "))
		}
	}
	return b.String()
}

// RenderMarkdown renders md for the terminal. style is a glamour standard
// style name; "auto" detects the background.
func RenderMarkdown(md, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
