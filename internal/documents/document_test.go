package documents_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadolammi/cvmatch/internal/documents"
)

// minimalPDF builds a one-page PDF with a correct cross-reference table.
func minimalPDF() []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestParseTypes(t *testing.T) {
	t.Parallel()

	types, err := documents.ParseTypes("pdf, DOCX ,txt")
	require.NoError(t, err)
	assert.Equal(t, []string{documents.MIMEPDF, documents.MIMEDOCX, documents.MIMEText}, types)

	types, err = documents.ParseTypes("application/pdf")
	require.NoError(t, err)
	assert.Equal(t, []string{documents.MIMEPDF}, types)

	_, err = documents.ParseTypes("pdf,odt")
	require.Error(t, err)

	_, err = documents.ParseTypes(" , ")
	require.Error(t, err)
}

func TestPolicy_Accept(t *testing.T) {
	t.Parallel()

	pdfOnly := documents.DefaultPolicy()
	withText := documents.NewPolicy(64, documents.MIMEPDF, documents.MIMEText)

	tests := []struct {
		name     string
		policy   documents.Policy
		file     string
		declared string
		data     []byte
		wantErr  error
	}{
		{
			name:     "valid pdf",
			policy:   pdfOnly,
			file:     "jd.pdf",
			declared: "application/pdf",
			data:     minimalPDF(),
		},
		{
			name:    "pdf by extension when type is missing",
			policy:  pdfOnly,
			file:    "cv.pdf",
			data:    minimalPDF(),
			wantErr: nil,
		},
		{
			name:     "corrupt pdf",
			policy:   pdfOnly,
			file:     "cv.pdf",
			declared: "application/pdf",
			data:     []byte("definitely not a pdf"),
			wantErr:  documents.ErrUnreadable,
		},
		{
			name:     "text rejected by default",
			policy:   pdfOnly,
			file:     "cv.txt",
			declared: "text/plain",
			data:     []byte("hello"),
			wantErr:  documents.ErrUnsupportedType,
		},
		{
			name:     "text accepted when enabled",
			policy:   withText,
			file:     "cv.txt",
			declared: "text/plain; charset=utf-8",
			data:     []byte("Go developer"),
		},
		{
			name:     "empty payload",
			policy:   withText,
			file:     "cv.txt",
			declared: "text/plain",
			data:     nil,
			wantErr:  documents.ErrEmpty,
		},
		{
			name:     "blank text",
			policy:   withText,
			file:     "cv.txt",
			declared: "text/plain",
			data:     []byte("  \n "),
			wantErr:  documents.ErrEmpty,
		},
		{
			name:     "too large",
			policy:   withText,
			file:     "cv.txt",
			declared: "text/plain",
			data:     bytes.Repeat([]byte("a"), 65),
			wantErr:  documents.ErrTooLarge,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			doc, err := testCase.policy.Accept(documents.RoleCV, testCase.file, testCase.declared, testCase.data)
			if testCase.wantErr != nil {
				require.ErrorIs(t, err, testCase.wantErr)
				assert.Nil(t, doc)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, doc)
			assert.Equal(t, documents.RoleCV, doc.Role)
			assert.Equal(t, testCase.file, doc.Name)
			assert.Equal(t, len(testCase.data), doc.Size())
		})
	}
}

func TestPolicy_AcceptPDFMetadata(t *testing.T) {
	t.Parallel()

	doc, err := documents.DefaultPolicy().Accept(documents.RoleJobDescription, "jd.pdf", "application/pdf", minimalPDF())
	require.NoError(t, err)
	assert.True(t, doc.Inline())
	assert.Equal(t, 1, doc.Pages)
	assert.Empty(t, doc.Text)
}

func memSource(name, declared, body string) *documents.Source {
	return &documents.Source{
		Name:         name,
		DeclaredType: declared,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}

func TestPolicy_ReadPair(t *testing.T) {
	t.Parallel()

	policy := documents.NewPolicy(0, documents.MIMEText)

	jd, cv, err := policy.ReadPair(context.Background(),
		memSource("jd.txt", "text/plain", "Senior Go engineer"),
		memSource("cv.txt", "text/plain", "Ten years of Go"),
	)
	require.NoError(t, err)
	require.NotNil(t, jd)
	require.NotNil(t, cv)
	assert.Equal(t, documents.RoleJobDescription, jd.Role)
	assert.Equal(t, "Senior Go engineer", jd.Text)
	assert.Equal(t, documents.RoleCV, cv.Role)
	assert.Equal(t, "Ten years of Go", cv.Text)
	assert.False(t, cv.Inline())
}

func TestPolicy_ReadPairRejectsSilently(t *testing.T) {
	t.Parallel()

	jd, cv, err := documents.DefaultPolicy().ReadPair(context.Background(),
		memSource("jd.png", "image/png", "\x89PNG"),
		nil,
	)
	require.NoError(t, err)
	assert.Nil(t, jd)
	assert.Nil(t, cv)
}

func TestPolicy_ReadPairOpenError(t *testing.T) {
	t.Parallel()

	broken := &documents.Source{
		Name: "cv.pdf",
		Open: func() (io.ReadCloser, error) { return nil, io.ErrUnexpectedEOF },
	}
	_, _, err := documents.DefaultPolicy().ReadPair(context.Background(), nil, broken)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestExtractText(t *testing.T) {
	t.Parallel()

	text, err := documents.ExtractText(documents.MIMEText, []byte("plain"))
	require.NoError(t, err)
	assert.Equal(t, "plain", text)

	_, err = documents.ExtractText("image/png", nil)
	require.Error(t, err)
}

func TestRoleLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Job Description", documents.RoleJobDescription.Label())
	assert.Equal(t, "Curriculum Vitae", documents.RoleCV.Label())
}
