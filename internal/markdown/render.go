// Package markdown renders the small markdown subset produced by the
// analysis model: `### ` and `## ` headings, `* ` list items, a single
// `**bold**` or `__bold__` span per line, and blank lines.
//
// It is not a CommonMark implementation. Nested lists, tables, code blocks,
// links, images and escapes are rendered as plain paragraphs.
package markdown

import "strings"

const (
	prefixHeading3 = "### "
	prefixHeading2 = "## "
	prefixListItem = "* "
)

// state is the list accumulator threaded through one Render pass.
type state struct {
	insideList bool
	pending    []string
}

// flush appends the pending list, if any, to out and resets the state.
func (s *state) flush(out []Node) []Node {
	if !s.insideList {
		return out
	}
	out = append(out, ListGroup{Items: s.pending})
	s.insideList = false
	s.pending = nil
	return out
}

// classify appends the nodes produced by line to out. The order of the
// checks is the classification priority.
func (s *state) classify(line string, out []Node) []Node {
	switch {
	case strings.HasPrefix(line, prefixHeading3):
		out = s.flush(out)
		return append(out, Heading3{Text: line[len(prefixHeading3):]})
	case strings.HasPrefix(line, prefixHeading2):
		out = s.flush(out)
		return append(out, Heading2{Text: line[len(prefixHeading2):]})
	case strings.HasPrefix(line, prefixListItem):
		s.insideList = true
		s.pending = append(s.pending, line[len(prefixListItem):])
		return out
	case hasBold(line):
		out = s.flush(out)
		return append(out, Paragraph{Segments: splitBold(line)})
	case strings.TrimSpace(line) == "":
		out = s.flush(out)
		return append(out, Break{})
	default:
		out = s.flush(out)
		return append(out, Paragraph{Segments: []Segment{{Text: line}}})
	}
}

// Render converts src into an ordered sequence of nodes in a single pass.
// It never fails. An empty src yields no nodes.
func Render(src string) []Node {
	lines := Lines(src)
	if len(lines) == 0 {
		return nil
	}

	var st state
	out := make([]Node, 0, len(lines))
	for _, line := range lines {
		out = st.classify(line, out)
	}
	return st.flush(out)
}

// Lines splits src on '\n'. A trailing '\r' is dropped from every line and a
// single terminating newline does not start an extra empty line.
func Lines(src string) []string {
	if src == "" {
		return nil
	}
	src = strings.TrimSuffix(src, "\n")
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
