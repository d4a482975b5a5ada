package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/muhammadolammi/cvmatch/internal/analysis"
	"github.com/muhammadolammi/cvmatch/internal/documents"
	"github.com/muhammadolammi/cvmatch/internal/logging"
	"github.com/muhammadolammi/cvmatch/internal/markdown"
)

// User-visible messages. Causes are logged, never shown.
const (
	MsgMissingDocuments = "Please upload both a Job Description and a CV."
	MsgAnalysisFailed   = "An error occurred while analyzing the documents. Please try again."
)

const (
	fieldJobDescription = "jd"
	fieldCV             = "cv"
)

type pageData struct {
	Error      string
	Accept     string
	AnalysisID uuid.UUID
	Result     template.HTML
}

func (s *Server) acceptAttr() string {
	var accept []string
	for _, t := range []struct{ ext, mime string }{
		{".pdf", documents.MIMEPDF},
		{".docx", documents.MIMEDOCX},
		{".txt", documents.MIMEText},
	} {
		if s.policy.Accepts(t.mime) {
			accept = append(accept, t.ext, t.mime)
		}
	}
	return strings.Join(accept, ",")
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	data.Accept = s.acceptAttr()

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "index.html", data); err != nil {
		logging.FromContext(r.Context()).Error("failed to render page", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, pageData{})
}

// compare reads both uploads and runs the analysis. The returned status and
// message are what the client sees on failure.
func (s *Server) compare(w http.ResponseWriter, r *http.Request) (*analysis.Result, int, string) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	jd, cv, err := s.readUploads(ctx, w, r)
	if err != nil {
		logger.Warn("failed to read uploads", "err", err)
		return nil, http.StatusBadRequest, MsgMissingDocuments
	}

	res, err := s.svc.Compare(ctx, jd, cv)
	switch {
	case err == nil:
		return res, http.StatusOK, ""
	case errors.Is(err, analysis.ErrMissingDocuments):
		return nil, http.StatusBadRequest, MsgMissingDocuments
	default:
		logger.Error("analysis request failed", "err", err)
		return nil, http.StatusBadGateway, MsgAnalysisFailed
	}
}

func (s *Server) readUploads(ctx context.Context, w http.ResponseWriter, r *http.Request) (*documents.Document, *documents.Document, error) {
	// Two documents plus room for the multipart framing.
	limit := int64(2*s.policy.MaxBytes()) + 1<<20
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		return nil, nil, err
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	return s.policy.ReadPair(ctx,
		documents.MultipartSource(formFile(r.MultipartForm, fieldJobDescription)),
		documents.MultipartSource(formFile(r.MultipartForm, fieldCV)),
	)
}

func formFile(form *multipart.Form, field string) *multipart.FileHeader {
	if form == nil {
		return nil
	}
	if files := form.File[field]; len(files) > 0 {
		return files[0]
	}
	return nil
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	res, status, msg := s.compare(w, r)
	if res == nil {
		s.render(w, r, status, pageData{Error: msg})
		return
	}

	var buf bytes.Buffer
	if err := markdown.WriteHTML(&buf, res.Nodes); err != nil {
		logging.FromContext(r.Context()).Error("failed to render analysis", "err", err)
		s.render(w, r, http.StatusInternalServerError, pageData{Error: MsgAnalysisFailed})
		return
	}
	// WriteHTML escapes all text it emits.
	s.render(w, r, http.StatusOK, pageData{
		AnalysisID: res.ID,
		Result:     template.HTML(buf.String()),
	})
}

type apiError struct {
	Error string `json:"error"`
}

func (s *Server) handleAPIAnalyze(w http.ResponseWriter, r *http.Request) {
	res, status, msg := s.compare(w, r)
	if res == nil {
		writeJSON(w, status, apiError{Error: msg})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
