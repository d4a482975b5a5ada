package database

import (
	"context"

	"github.com/google/uuid"
)

const createAnalysis = `-- name: CreateAnalysis :exec
INSERT INTO analyses (id, status)
VALUES ($1, $2)
`

type CreateAnalysisParams struct {
	ID     uuid.UUID
	Status string
}

func (q *Queries) CreateAnalysis(ctx context.Context, arg CreateAnalysisParams) error {
	_, err := q.db.ExecContext(ctx, createAnalysis, arg.ID, arg.Status)
	return err
}

const updateAnalysisStatus = `-- name: UpdateAnalysisStatus :exec
UPDATE analyses
SET status=$1, updated_at=CURRENT_TIMESTAMP
WHERE id=$2
`

type UpdateAnalysisStatusParams struct {
	Status string
	ID     uuid.UUID
}

func (q *Queries) UpdateAnalysisStatus(ctx context.Context, arg UpdateAnalysisStatusParams) error {
	_, err := q.db.ExecContext(ctx, updateAnalysisStatus, arg.Status, arg.ID)
	return err
}
