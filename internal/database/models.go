package database

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Analysis struct {
	ID        uuid.UUID
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Document struct {
	ID               uuid.UUID
	AnalysisID       uuid.UUID
	Role             string
	OriginalFilename string
	Mime             string
	SizeBytes        int64
	ObjectKey        sql.NullString
	CreatedAt        time.Time
}
