package markdown

import "regexp"

// boldPattern matches a `**X**` or `__X__` span. Delimiters must agree; RE2
// has no backreferences so each delimiter gets its own alternative.
var boldPattern = regexp.MustCompile(`\*\*(.*?)\*\*|__(.*?)__`)

// hasBold reports whether line contains a delimited bold span.
func hasBold(line string) bool {
	return boldPattern.MatchString(line)
}

// splitBold splits line around its first bold span.
//
// Only the first span is recognized. Any later delimiters are left verbatim
// in the trailing plain segment. Empty plain segments are omitted; the
// emphasized segment is always present when a span matched.
func splitBold(line string) []Segment {
	m := boldPattern.FindStringSubmatchIndex(line)
	if m == nil {
		return []Segment{{Text: line}}
	}

	innerStart, innerEnd := m[2], m[3]
	if innerStart < 0 {
		innerStart, innerEnd = m[4], m[5]
	}

	segments := make([]Segment, 0, 3)
	if before := line[:m[0]]; before != "" {
		segments = append(segments, Segment{Text: before})
	}
	segments = append(segments, Segment{Text: line[innerStart:innerEnd], Emphasized: true})
	if after := line[m[1]:]; after != "" {
		segments = append(segments, Segment{Text: after})
	}
	return segments
}
