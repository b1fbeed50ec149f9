package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"resume-editor/internal/apperr"
	"resume-editor/internal/domain"
	"resume-editor/pkg/infrastructure"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Renderer turns a rendered page into PDF or PNG bytes.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
	CaptureHTML(ctx context.Context, html string, scale float64) ([]byte, error)
}

type JobsRepo interface {
	Save(ctx context.Context, j *domain.ExportJob) error
	Get(ctx context.Context, id uuid.UUID) (*domain.ExportJob, error)
}

// rasterScale is the device scale of the screenshot embedded in raster PDFs.
const rasterScale = 2

// ExportPDF produces PDF bytes for an already rendered page.
func ExportPDF(ctx context.Context, r Renderer, html string, mode domain.ExportMode) ([]byte, error) {
	var (
		out []byte
		err error
	)
	switch mode {
	case domain.ExportPrint:
		out, err = r.RenderHTMLToPDF(ctx, html)
	case domain.ExportRaster:
		var img []byte
		if img, err = r.CaptureHTML(ctx, html, rasterScale); err == nil {
			out, err = infrastructure.RasterPDF(img)
		}
	default:
		return nil, fmt.Errorf("unknown export mode %q", mode)
	}
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		return nil, fmt.Errorf("invalid PDF output (len=%d)", len(out))
	}
	return out, nil
}

// Exporter runs PDF exports in the background and tracks them as jobs.
type Exporter struct {
	renderer Renderer
	jobs     JobsRepo
	editor   *Editor
	dir      string
	log      *logrus.Logger
	now      func() time.Time
	wg       sync.WaitGroup
}

func NewExporter(r Renderer, jobs JobsRepo, editor *Editor, dir string, log *logrus.Logger) *Exporter {
	return &Exporter{
		renderer: r,
		jobs:     jobs,
		editor:   editor,
		dir:      dir,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Start renders the draft as it is now and exports it in the background.
// The returned job is pending; poll Job for the outcome.
func (x *Exporter) Start(ctx context.Context, draftID uuid.UUID, mode domain.ExportMode) (*domain.ExportJob, error) {
	const op = "Exporter.Start"
	if !mode.Valid() {
		return nil, apperr.E(apperr.CodeInvalidArgument, op, fmt.Sprintf("unknown export mode %q", mode), nil)
	}
	d, err := x.editor.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	html, err := RenderDraft(d)
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "could not render draft", err)
	}

	now := x.now()
	job := &domain.ExportJob{
		ID:        uuid.New(),
		DraftID:   draftID,
		Mode:      mode,
		Status:    domain.ExportPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := x.jobs.Save(ctx, job); err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "could not create export job", err)
	}

	queued := *job
	x.wg.Add(1)
	go func() {
		defer x.wg.Done()
		x.run(context.WithoutCancel(ctx), &queued, html)
	}()
	return job, nil
}

// run executes one job to a terminal state. Failures are not retried.
func (x *Exporter) run(ctx context.Context, job *domain.ExportJob, html string) {
	log := x.log.WithFields(logrus.Fields{"job_id": job.ID, "draft_id": job.DraftID, "mode": job.Mode})
	x.setStatus(ctx, job, domain.ExportRunning, "")

	pdf, err := ExportPDF(ctx, x.renderer, html, job.Mode)
	if err == nil {
		err = x.write(job, pdf)
	}
	if err != nil {
		log.WithError(err).Error("export failed")
		x.setStatus(ctx, job, domain.ExportFailed, err.Error())
		return
	}
	log.WithField("file", job.FilePath).Info("export done")
	x.setStatus(ctx, job, domain.ExportDone, "")
}

func (x *Exporter) write(job *domain.ExportJob, pdf []byte) error {
	if err := os.MkdirAll(x.dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(x.dir, job.ID.String()+".pdf")
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return err
	}
	job.FilePath = path
	return nil
}

func (x *Exporter) setStatus(ctx context.Context, job *domain.ExportJob, status domain.ExportStatus, msg string) {
	job.Status = status
	job.Error = msg
	job.UpdatedAt = x.now()
	if err := x.jobs.Save(ctx, job); err != nil {
		x.log.WithError(err).WithField("job_id", job.ID).Warn("failed to save export job")
	}
}

func (x *Exporter) Job(ctx context.Context, id uuid.UUID) (*domain.ExportJob, error) {
	j, err := x.jobs.Get(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.E(apperr.CodeNotFound, "Exporter.Job", "export job not found", err)
	}
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, "Exporter.Job", "storage error", err)
	}
	return j, nil
}

// File returns the path of a finished export.
func (x *Exporter) File(ctx context.Context, id uuid.UUID) (string, error) {
	const op = "Exporter.File"
	j, err := x.Job(ctx, id)
	if err != nil {
		return "", err
	}
	switch j.Status {
	case domain.ExportDone:
		return j.FilePath, nil
	case domain.ExportFailed:
		return "", apperr.E(apperr.CodeConflict, op, "export failed: "+j.Error, nil)
	}
	return "", apperr.E(apperr.CodeConflict, op, "export is not finished", nil)
}

// Wait blocks until every started export has finished.
func (x *Exporter) Wait() { x.wg.Wait() }
