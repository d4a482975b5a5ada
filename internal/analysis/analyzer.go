// Package analysis compares a job description with a CV using a Gemini
// agent and turns the reply into renderable nodes.
package analysis

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/muhammadolammi/cvmatch/internal/documents"
)

var (
	// ErrMissingDocuments is returned when either document is absent. No
	// model call is made.
	ErrMissingDocuments = errors.New("both a job description and a cv are required")
	// ErrAnalysisFailed wraps every failure of the model call.
	ErrAnalysisFailed = errors.New("analysis failed")
	// ErrPoolClosed is returned by a Pool after Close.
	ErrPoolClosed = errors.New("analysis pool closed")

	errEmptyResponse = errors.New("empty agent response")
)

// Analyzer produces the markdown analysis for a pair of documents.
type Analyzer interface {
	Analyze(ctx context.Context, jd, cv *documents.Document) (string, error)
}

// Archiver stores an uploaded document and returns its object key.
type Archiver interface {
	Archive(ctx context.Context, analysisID uuid.UUID, doc *documents.Document) (string, error)
}

// Recorder keeps an audit trail of analyses and their documents. It stores
// status only, never the analysis text.
type Recorder interface {
	CreateAnalysis(ctx context.Context, id uuid.UUID, status string) error
	AddDocument(ctx context.Context, analysisID uuid.UUID, doc *documents.Document, objectKey string) error
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
}

// Publisher announces status changes of an analysis.
type Publisher interface {
	PublishStatus(ctx context.Context, analysisID uuid.UUID, status, message string) error
}

// Status values published and recorded for an analysis.
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

type nopArchiver struct{}

func (nopArchiver) Archive(context.Context, uuid.UUID, *documents.Document) (string, error) {
	return "", nil
}

type nopRecorder struct{}

func (nopRecorder) CreateAnalysis(context.Context, uuid.UUID, string) error { return nil }
func (nopRecorder) AddDocument(context.Context, uuid.UUID, *documents.Document, string) error {
	return nil
}
func (nopRecorder) SetStatus(context.Context, uuid.UUID, string) error { return nil }

type nopPublisher struct{}

func (nopPublisher) PublishStatus(context.Context, uuid.UUID, string, string) error { return nil }
