package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/muhammadolammi/cvmatch/internal/documents"
)

// Recorder writes the analysis audit trail through Queries.
type Recorder struct {
	q *Queries
}

func NewRecorder(db DBTX) *Recorder {
	return &Recorder{q: New(db)}
}

func (r *Recorder) CreateAnalysis(ctx context.Context, id uuid.UUID, status string) error {
	return r.q.CreateAnalysis(ctx, CreateAnalysisParams{ID: id, Status: status})
}

func (r *Recorder) AddDocument(ctx context.Context, analysisID uuid.UUID, doc *documents.Document, objectKey string) error {
	return r.q.CreateDocument(ctx, CreateDocumentParams{
		ID:               uuid.New(),
		AnalysisID:       analysisID,
		Role:             string(doc.Role),
		OriginalFilename: doc.Name,
		Mime:             doc.MIMEType,
		SizeBytes:        int64(doc.Size()),
		ObjectKey:        sql.NullString{String: objectKey, Valid: objectKey != ""},
	})
}

func (r *Recorder) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.q.UpdateAnalysisStatus(ctx, UpdateAnalysisStatusParams{Status: status, ID: id})
}
