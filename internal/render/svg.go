package render

import (
	"fmt"
	"strings"

	"github.com/san-kum/algoviz/internal/player"
	"golang.org/x/net/html"
)

const (
	svgCell   = 48
	svgGap    = 8
	svgMargin = 24
)

// SVG draws the current frame as a standalone SVG document.
func SVG(s *player.Store, opts Options) string {
	th := opts.theme()
	data := s.Data()

	n := max(len(data), 1)
	width := 2*svgMargin + n*svgCell + (n-1)*svgGap
	height := 2*svgMargin + 3*svgCell

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="monospace">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, th.Canvas))

	if opts.Title != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" fill="%s" font-size="14" font-weight="bold">%s</text>
`, svgMargin, svgMargin-6, th.Accent, html.EscapeString(opts.Title)))
	}

	top := svgMargin + svgCell
	for i, v := range data {
		x := svgMargin + i*(svgCell+svgGap)
		color := th.Color(s.ElementState(i))

		if p, ok := s.PointerAt(i); ok {
			sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" fill="%s" font-size="12" text-anchor="middle">%s</text>
`, x+svgCell/2, top-12, th.PointerColor(p), html.EscapeString(pointerLabel(s, i, p))))
		}

		sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" rx="6" fill="%s" fill-opacity="0.2" stroke="%s" stroke-width="2"/>
`, x, top, svgCell, svgCell, color, color))

		if opts.ShowValues {
			sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" fill="%s" font-size="14" text-anchor="middle" dominant-baseline="middle">%s</text>
`, x+svgCell/2, top+svgCell/2, th.Text, html.EscapeString(v.String())))
		}
		if opts.ShowIndices {
			sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" fill="%s" font-size="10" text-anchor="middle">%d</text>
`, x+svgCell/2, top+svgCell+14, th.Muted, i))
		}
	}

	if cur, ok := s.Current(); ok {
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" fill="%s" font-size="12">%s</text>
`, svgMargin, height-svgMargin, th.Text, html.EscapeString(fmt.Sprintf("Step %d/%d: %s", s.Index()+1, s.Len(), cur.Description))))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
