package domain

import (
	"context"
	"time"
)

// ExportFile is a generated spreadsheet ready to be streamed to the client.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
	Rows        int
	GeneratedAt time.Time
}

type ExportUsecase interface {
	ExportUsers(ctx context.Context, filter UserFilter) (*ExportFile, error)
	ExportApplications(ctx context.Context, filter ApplicationFilter) (*ExportFile, error)
}
