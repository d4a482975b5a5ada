package markdown

import "encoding/json"

// Kind classifies a rendered node.
type Kind uint8

const (
	KindHeading3 Kind = iota + 1
	KindHeading2
	KindList
	KindParagraph
	KindBreak
)

func (k Kind) String() string {
	switch k {
	case KindHeading3:
		return "heading3"
	case KindHeading2:
		return "heading2"
	case KindList:
		return "list"
	case KindParagraph:
		return "paragraph"
	case KindBreak:
		return "break"
	default:
		return "unknown"
	}
}

// Node is one visual unit produced by Render. The set of implementations is
// closed: Heading3, Heading2, ListGroup, Paragraph and Break.
type Node interface {
	Kind() Kind
	node()
}

// Heading3 is a `### ` line.
type Heading3 struct {
	Text string
}

// Heading2 is a `## ` line.
type Heading2 struct {
	Text string
}

// ListGroup holds a maximal run of consecutive `* ` lines, in order.
type ListGroup struct {
	Items []string
}

// Segment is a run of paragraph text, optionally emphasized (bold).
type Segment struct {
	Text       string `json:"text"`
	Emphasized bool   `json:"emphasized"`
}

// Paragraph is a line of text split into plain and emphasized segments.
type Paragraph struct {
	Segments []Segment
}

// Break stands for a blank line.
type Break struct{}

func (Heading3) Kind() Kind  { return KindHeading3 }
func (Heading2) Kind() Kind  { return KindHeading2 }
func (ListGroup) Kind() Kind { return KindList }
func (Paragraph) Kind() Kind { return KindParagraph }
func (Break) Kind() Kind     { return KindBreak }

func (Heading3) node()  {}
func (Heading2) node()  {}
func (ListGroup) node() {}
func (Paragraph) node() {}
func (Break) node()     {}

// Text returns the paragraph's segments concatenated, without emphasis.
func (p Paragraph) Text() string {
	var n int
	for _, s := range p.Segments {
		n += len(s.Text)
	}
	buf := make([]byte, 0, n)
	for _, s := range p.Segments {
		buf = append(buf, s.Text...)
	}
	return string(buf)
}

func (h Heading3) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}{KindHeading3.String(), h.Text})
}

func (h Heading2) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}{KindHeading2.String(), h.Text})
}

func (l ListGroup) MarshalJSON() ([]byte, error) {
	items := l.Items
	if items == nil {
		items = []string{}
	}
	return json.Marshal(struct {
		Type  string   `json:"type"`
		Items []string `json:"items"`
	}{KindList.String(), items})
}

func (p Paragraph) MarshalJSON() ([]byte, error) {
	segments := p.Segments
	if segments == nil {
		segments = []Segment{}
	}
	return json.Marshal(struct {
		Type     string    `json:"type"`
		Segments []Segment `json:"segments"`
	}{KindParagraph.String(), segments})
}

func (Break) MarshalJSON() ([]byte, error) {
	return []byte(`{"type":"break"}`), nil
}
