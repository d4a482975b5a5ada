package markdown

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TerminalStyles holds the lipgloss styles used by RenderTerminal.
type TerminalStyles struct {
	Heading3 lipgloss.Style
	Heading2 lipgloss.Style
	Bullet   lipgloss.Style
	Item     lipgloss.Style
	Text     lipgloss.Style
	Strong   lipgloss.Style

	color bool
}

// NewTerminalStyles returns the terminal palette. With colorEnabled false the
// output is plain text with no escape sequences.
func NewTerminalStyles(colorEnabled bool) *TerminalStyles {
	if !colorEnabled {
		return &TerminalStyles{}
	}
	return &TerminalStyles{
		Heading3: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true).Underline(true),
		Heading2: lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Bold(true),
		Bullet:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Item:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Text:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Strong:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		color:    true,
	}
}

func (s *TerminalStyles) render(st lipgloss.Style, text string) string {
	if !s.color {
		return text
	}
	return st.Render(text)
}

// RenderTerminal lays nodes out as terminal text, one line per node and one
// line per list item. Headings are preceded by a blank line except at the top.
func RenderTerminal(nodes []Node, styles *TerminalStyles) string {
	if styles == nil {
		styles = NewTerminalStyles(false)
	}

	var sb strings.Builder
	for i, n := range nodes {
		switch n := n.(type) {
		case Heading3:
			if i > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(styles.render(styles.Heading3, n.Text))
			sb.WriteByte('\n')
		case Heading2:
			if i > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(styles.render(styles.Heading2, n.Text))
			sb.WriteByte('\n')
		case ListGroup:
			for _, item := range n.Items {
				sb.WriteString("  ")
				sb.WriteString(styles.render(styles.Bullet, "•"))
				sb.WriteByte(' ')
				sb.WriteString(styles.render(styles.Item, item))
				sb.WriteByte('\n')
			}
		case Paragraph:
			for _, seg := range n.Segments {
				if seg.Emphasized {
					sb.WriteString(styles.render(styles.Strong, seg.Text))
					continue
				}
				sb.WriteString(styles.render(styles.Text, seg.Text))
			}
			sb.WriteByte('\n')
		case Break:
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
