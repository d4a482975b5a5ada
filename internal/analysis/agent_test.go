package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/muhammadolammi/cvmatch/internal/documents"
	"github.com/muhammadolammi/cvmatch/internal/markdown"
)

func TestRequestParts(t *testing.T) {
	t.Parallel()

	jd := &documents.Document{Role: documents.RoleJobDescription, Name: "jd.pdf", MIMEType: documents.MIMEPDF, Data: []byte("%PDF-1.4")}
	cv := &documents.Document{Role: documents.RoleCV, Name: "cv.docx", MIMEType: documents.MIMEDOCX, Data: []byte("PK"), Text: "Go engineer"}

	parts := RequestParts(jd, cv)
	require.Len(t, parts, 3)

	assert.Equal(t, "Job Description (jd.pdf):", parts[0].Text)
	require.NotNil(t, parts[1].InlineData)
	assert.Equal(t, documents.MIMEPDF, parts[1].InlineData.MIMEType)
	assert.Equal(t, jd.Data, parts[1].InlineData.Data)
	assert.Equal(t, "Curriculum Vitae (cv.docx):\nGo engineer", parts[2].Text)
	assert.Nil(t, parts[2].InlineData)
}

func TestContentText(t *testing.T) {
	t.Parallel()

	c := &genai.Content{Parts: []*genai.Part{
		{Text: "thinking...", Thought: true},
		{Text: "### Overall Summary\n"},
		nil,
		{Text: "Good fit."},
	}}
	assert.Equal(t, "### Overall Summary\nGood fit.", contentText(c))
}

func TestPromptRendersAsSections(t *testing.T) {
	t.Parallel()

	p := Prompt()
	// ADK treats {name} in instructions as a state placeholder.
	assert.NotContains(t, p, "{")

	var headings []string
	for _, n := range markdown.Render(p) {
		if h, ok := n.(markdown.Heading3); ok {
			headings = append(headings, h.Text)
		}
	}
	assert.Equal(t, []string{
		"Overall Summary",
		"Compatibility Score",
		"Key Strengths",
		"Potential Gaps",
		"Final Recommendation",
	}, headings)

	for _, option := range []string{
		"Strongly Recommend for Interview",
		"Recommend for Interview",
		"Consider for Interview with Reservations",
		"Not a Suitable Match at this Time",
	} {
		assert.True(t, strings.Contains(p, "**"+option+"**"), option)
	}
}
