package markdown

import (
	"bufio"
	"html"
	"io"
	"strings"
)

// WriteHTML writes nodes as an HTML fragment. All text is escaped.
func WriteHTML(w io.Writer, nodes []Node) error {
	bw := bufio.NewWriter(w)
	for _, n := range nodes {
		switch n := n.(type) {
		case Heading3:
			bw.WriteString(`<h3>`)
			bw.WriteString(html.EscapeString(n.Text))
			bw.WriteString("</h3>\n")
		case Heading2:
			bw.WriteString(`<h2>`)
			bw.WriteString(html.EscapeString(n.Text))
			bw.WriteString("</h2>\n")
		case ListGroup:
			bw.WriteString("<ul>\n")
			for _, item := range n.Items {
				bw.WriteString("<li>")
				bw.WriteString(html.EscapeString(item))
				bw.WriteString("</li>\n")
			}
			bw.WriteString("</ul>\n")
		case Paragraph:
			bw.WriteString("<p>")
			for _, s := range n.Segments {
				if s.Emphasized {
					bw.WriteString("<strong>")
					bw.WriteString(html.EscapeString(s.Text))
					bw.WriteString("</strong>")
					continue
				}
				bw.WriteString(html.EscapeString(s.Text))
			}
			bw.WriteString("</p>\n")
		case Break:
			bw.WriteString("<br>\n")
		}
	}
	return bw.Flush()
}

// HTML renders src and returns the resulting HTML fragment.
func HTML(src string) string {
	var sb strings.Builder
	// strings.Builder never returns a write error.
	_ = WriteHTML(&sb, Render(src))
	return sb.String()
}
