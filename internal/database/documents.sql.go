package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

const createDocument = `-- name: CreateDocument :exec
INSERT INTO documents (
id, analysis_id, role, original_filename, mime, size_bytes, object_key)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

type CreateDocumentParams struct {
	ID               uuid.UUID
	AnalysisID       uuid.UUID
	Role             string
	OriginalFilename string
	Mime             string
	SizeBytes        int64
	ObjectKey        sql.NullString
}

func (q *Queries) CreateDocument(ctx context.Context, arg CreateDocumentParams) error {
	_, err := q.db.ExecContext(ctx, createDocument,
		arg.ID,
		arg.AnalysisID,
		arg.Role,
		arg.OriginalFilename,
		arg.Mime,
		arg.SizeBytes,
		arg.ObjectKey,
	)
	return err
}
