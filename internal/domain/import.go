package domain

import "context"

// ImportResult reports how far a CSV bulk import got. Processed < Total
// means the import halted at the first failing row; the rows before it
// stay committed.
type ImportResult struct {
	Processed  int    `json:"processed"`
	Total      int    `json:"total"`
	ArchiveKey string `json:"archiveKey,omitempty"`
}

type ImportUsecase interface {
	ImportJobs(ctx context.Context, userID string, rawCSV string) (*ImportResult, error)
}

type ExportUsecase interface {
	// ExportApplications renders every application with candidate and job
	// details as an XLSX workbook, returning the bytes and a filename.
	ExportApplications(ctx context.Context) ([]byte, string, error)
	ExportJobs(ctx context.Context) ([]byte, string, error)
}
