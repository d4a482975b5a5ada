package documents

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ExtractText returns the plain text of a document.
func ExtractText(mimeType string, data []byte) (string, error) {
	switch mimeType {
	case MIMEText:
		return string(data), nil
	case MIMEPDF:
		return extractPDFText(data)
	case MIMEDOCX:
		return extractDocxText(data)
	default:
		return "", fmt.Errorf("unsupported file type: %s", mimeType)
	}
}

func openPDF(data []byte) (r *pdf.Reader, err error) {
	// The pdf package panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			r, err = nil, fmt.Errorf("malformed pdf: %v", rec)
		}
	}()
	r, err = pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf: %w", err)
	}
	return r, nil
}

func pdfPageCount(data []byte) (n int, err error) {
	r, err := openPDF(data)
	if err != nil {
		return 0, err
	}
	defer func() {
		if rec := recover(); rec != nil {
			n, err = 0, fmt.Errorf("malformed pdf: %v", rec)
		}
	}()
	return r.NumPage(), nil
}

func extractPDFText(data []byte) (text string, err error) {
	r, err := openPDF(data)
	if err != nil {
		return "", err
	}
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("malformed pdf: %v", rec)
		}
	}()

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, _ := page.GetPlainText(nil)
		sb.WriteString(pageText)
	}
	return sb.String(), nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>`)
	docxTag          = regexp.MustCompile(`<[^>]+>`)
)

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return docxPlainText(doc.Editable().GetContent()), nil
}

// docxPlainText turns WordprocessingML into text, one line per paragraph.
func docxPlainText(content string) string {
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = docxTag.ReplaceAllString(content, "")
	return strings.TrimSpace(unescapeXML(content))
}

var xmlEntities = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&amp;", "&",
)

func unescapeXML(s string) string {
	return xmlEntities.Replace(s)
}
