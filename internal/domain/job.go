package domain

import (
	"time"

	"github.com/google/uuid"
)

type ExportMode string

const (
	// ExportRaster screenshots the rendered page and embeds the bitmap in
	// a PDF, the way the browser editor downloads it.
	ExportRaster ExportMode = "raster"
	// ExportPrint uses Chrome's print-to-PDF.
	ExportPrint ExportMode = "print"
)

func (m ExportMode) Valid() bool {
	return m == ExportRaster || m == ExportPrint
}

type ExportStatus string

const (
	ExportPending ExportStatus = "pending"
	ExportRunning ExportStatus = "running"
	ExportDone    ExportStatus = "done"
	ExportFailed  ExportStatus = "failed"
)

type ExportJob struct {
	ID        uuid.UUID    `json:"id"`
	DraftID   uuid.UUID    `json:"draft_id"`
	Mode      ExportMode   `json:"mode"`
	Status    ExportStatus `json:"status"`
	Error     string       `json:"error,omitempty"`
	FilePath  string       `json:"file_path,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (j *ExportJob) Finished() bool {
	return j.Status == ExportDone || j.Status == ExportFailed
}
