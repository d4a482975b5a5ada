// Package documents holds the two payloads of an analysis (job description
// and CV) and the policy deciding which uploads are accepted.
package documents

import (
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEText = "text/plain"
)

// DefaultMaxBytes caps a single document. Inline request data for the model
// is limited, so larger uploads are rejected.
const DefaultMaxBytes = 10 << 20

var (
	ErrUnsupportedType = errors.New("unsupported document type")
	ErrUnreadable      = errors.New("unreadable document")
	ErrTooLarge        = errors.New("document too large")
	ErrEmpty           = errors.New("empty document")
)

// Role tells the job description and the CV apart.
type Role string

const (
	RoleJobDescription Role = "jd"
	RoleCV             Role = "cv"
)

func (r Role) Label() string {
	switch r {
	case RoleJobDescription:
		return "Job Description"
	case RoleCV:
		return "Curriculum Vitae"
	default:
		return string(r)
	}
}

// Document is one accepted upload.
type Document struct {
	Role     Role
	Name     string
	MIMEType string
	Data     []byte
	// Text is the extracted content for documents that are not sent to the
	// model as binary (DOCX and plain text).
	Text string
	// Pages is set for PDFs.
	Pages int
}

// Inline reports whether the document goes to the model as a binary part.
func (d *Document) Inline() bool {
	return d.MIMEType == MIMEPDF
}

// Size returns the payload size in bytes.
func (d *Document) Size() int {
	return len(d.Data)
}

var typeAliases = map[string]string{
	"pdf":  MIMEPDF,
	"docx": MIMEDOCX,
	"txt":  MIMEText,
	"text": MIMEText,
}

// ParseTypes turns a comma separated list such as "pdf,docx" into mime
// types. Full mime types are accepted as well.
func ParseTypes(list string) ([]string, error) {
	var out []string
	for _, raw := range strings.Split(list, ",") {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		if m, ok := typeAliases[name]; ok {
			out = append(out, m)
			continue
		}
		switch name {
		case MIMEPDF, MIMEDOCX, MIMEText:
			out = append(out, name)
		default:
			return nil, fmt.Errorf("unknown document type %q", raw)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no document types given")
	}
	return out, nil
}

// Policy decides which uploads are accepted.
type Policy struct {
	accepted map[string]bool
	maxBytes int
}

// NewPolicy accepts the given mime types. With none it accepts PDF only.
func NewPolicy(maxBytes int, mimeTypes ...string) Policy {
	if len(mimeTypes) == 0 {
		mimeTypes = []string{MIMEPDF}
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	p := Policy{accepted: make(map[string]bool, len(mimeTypes)), maxBytes: maxBytes}
	for _, m := range mimeTypes {
		p.accepted[m] = true
	}
	return p
}

// DefaultPolicy accepts PDFs up to DefaultMaxBytes.
func DefaultPolicy() Policy {
	return NewPolicy(DefaultMaxBytes)
}

// MaxBytes returns the per-document size limit.
func (p Policy) MaxBytes() int {
	return p.maxBytes
}

// Accepts reports whether mimeType is in the accepted set.
func (p Policy) Accepts(mimeType string) bool {
	return p.accepted[mimeType]
}

// Accept validates an upload and returns it as a Document. The returned
// error says why it was rejected; callers treat a rejection as "no file".
func (p Policy) Accept(role Role, name, declaredType string, data []byte) (*Document, error) {
	mimeType := normalizeType(name, declaredType)
	if !p.accepted[mimeType] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, mimeType)
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if len(data) > p.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(data))
	}

	doc := &Document{Role: role, Name: name, MIMEType: mimeType, Data: data}
	switch mimeType {
	case MIMEPDF:
		pages, err := pdfPageCount(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
		if pages == 0 {
			return nil, fmt.Errorf("%w: pdf has no pages", ErrUnreadable)
		}
		doc.Pages = pages
	default:
		text, err := ExtractText(mimeType, data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
		if strings.TrimSpace(text) == "" {
			return nil, ErrEmpty
		}
		doc.Text = text
	}
	return doc, nil
}

// normalizeType strips parameters from the declared type and falls back to
// the file extension when nothing usable was declared.
func normalizeType(name, declared string) string {
	if declared != "" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil && mt != "application/octet-stream" {
			return mt
		}
	}
	if byExt := mimeByExtension(filepath.Ext(name)); byExt != "" {
		return byExt
	}
	return strings.ToLower(strings.TrimSpace(declared))
}

func mimeByExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".pdf":
		return MIMEPDF
	case ".docx":
		return MIMEDOCX
	case ".txt", ".md":
		return MIMEText
	case "":
		return ""
	}
	if t := mime.TypeByExtension(ext); t != "" {
		if mt, _, err := mime.ParseMediaType(t); err == nil {
			return mt
		}
	}
	return ""
}
