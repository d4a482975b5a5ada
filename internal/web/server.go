// Package web serves the upload form, the rendered analysis and a small JSON
// API over the analysis service.
package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/muhammadolammi/cvmatch/internal/analysis"
	"github.com/muhammadolammi/cvmatch/internal/documents"
	"github.com/muhammadolammi/cvmatch/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

// Comparer runs one analysis. *analysis.Service implements it.
type Comparer interface {
	Compare(ctx context.Context, jd, cv *documents.Document) (*analysis.Result, error)
}

// Server serves HTTP endpoints backed by a Comparer.
type Server struct {
	svc    Comparer
	policy documents.Policy
	tmpl   *template.Template
}

func New(svc Comparer, policy documents.Policy) *Server {
	return &Server{
		svc:    svc,
		policy: policy,
		tmpl:   template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

// Router returns an http.Handler with registered routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("POST /api/analyses", s.handleAPIAnalyze)
	return withLogging(mux)
}

// HTTPServer wraps the router with timeouts suited to a slow model call.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.Default()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r.WithContext(logging.WithLogger(r.Context(), logger)))

		logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}
