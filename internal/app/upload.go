package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/interpretive-systems/studybuddy/internal/api"
	"github.com/interpretive-systems/studybuddy/internal/notify"
	"github.com/interpretive-systems/studybuddy/internal/types"
	"github.com/interpretive-systems/studybuddy/internal/uploadq"
)

// UploadBatch is a snapshot of the queue taken when an upload starts.
type UploadBatch struct {
	CourseID   string
	CourseName string
	Files      []types.UploadedFile
}

// FileOutcome is the result of uploading one file.
type FileOutcome struct {
	File types.UploadedFile
	Doc  api.UploadedDocument
	Err  error
}

// UploadResult holds one outcome per batch file, in queue order.
type UploadResult struct {
	Batch    UploadBatch
	Outcomes []FileOutcome
}

// Succeeded returns the outcomes without error.
func (r UploadResult) Succeeded() []FileOutcome {
	var out []FileOutcome
	for _, o := range r.Outcomes {
		if o.Err == nil {
			out = append(out, o)
		}
	}
	return out
}

// Failed returns the files whose upload failed, in queue order.
func (r UploadResult) Failed() []types.UploadedFile {
	var out []types.UploadedFile
	for _, o := range r.Outcomes {
		if o.Err != nil {
			out = append(out, o.File)
		}
	}
	return out
}

// RunUpload uploads every file of batch. With concurrency 1 the files are
// sent strictly one after another; larger values allow that many uploads in
// flight. A failure never stops the remaining files.
func RunUpload(ctx context.Context, backend Backend, batch UploadBatch, concurrency int, perFile time.Duration, log *zap.Logger) UploadResult {
	if log == nil {
		log = zap.NewNop()
	}
	res := UploadResult{Batch: batch, Outcomes: make([]FileOutcome, len(batch.Files))}
	one := func(i int) {
		f := batch.Files[i]
		fctx, cancel := context.WithTimeout(ctx, perFile)
		defer cancel()
		doc, err := backend.UploadDocument(fctx, batch.CourseID, f)
		if err != nil {
			log.Warn("upload failed", zap.String("file", f.Name), zap.String("course", batch.CourseID), zap.Error(err))
		} else {
			log.Debug("uploaded", zap.String("file", f.Name), zap.String("document", doc.DocumentID), zap.String("status", string(doc.Status)))
		}
		res.Outcomes[i] = FileOutcome{File: f, Doc: doc, Err: err}
	}

	if concurrency <= 1 {
		for i := range batch.Files {
			one(i)
		}
		return res
	}
	var g errgroup.Group
	g.SetLimit(concurrency)
	for i := range batch.Files {
		g.Go(func() error {
			one(i)
			return nil
		})
	}
	_ = g.Wait()
	return res
}

// Uploading reports whether an upload is in flight.
func (c *Controller) Uploading() bool { return c.uploading }

// BeginUpload snapshots the queue and returns the job that uploads it to the
// current course. It returns false when there is no current course, the queue
// is empty or an upload is already running.
func (c *Controller) BeginUpload() (func() UploadResult, bool) {
	co, ok := c.CurrentCourse()
	if !ok || c.queue.Len() == 0 || c.uploading || c.closed || c.backend == nil {
		return nil, false
	}
	c.uploading = true
	batch := UploadBatch{CourseID: co.ID, CourseName: co.Name, Files: c.queue.Files()}
	backend, concurrency, timeout, log := c.backend, c.concurrency, c.apiTimeout, c.log
	return func() UploadResult {
		return RunUpload(c.ctx, backend, batch, concurrency, timeout, log)
	}, true
}

// CompleteUpload records successful files as materials, reports the batch and
// leaves exactly the failed files in the queue.
func (c *Controller) CompleteUpload(res UploadResult) {
	c.uploading = false
	if c.closed {
		return
	}
	ok := res.Succeeded()
	failed := res.Failed()

	if len(ok) > 0 {
		if _, exists := c.course(res.Batch.CourseID); exists {
			for _, o := range ok {
				c.materials = append(c.materials, c.materialFrom(res.Batch.CourseID, o))
			}
			c.notify("Upload successful", fmt.Sprintf("%s uploaded to %s", plural(len(ok), "file"), res.Batch.CourseName), notify.VariantDefault)
		} else {
			// Materials of a deleted course are never kept.
			c.log.Warn("upload finished for a deleted course", zap.String("course", res.Batch.CourseID), zap.Int("files", len(ok)))
			c.notify("Upload discarded", fmt.Sprintf("%s uploaded, but %s was deleted", plural(len(ok), "file"), res.Batch.CourseName), notify.VariantDestructive)
		}
	}
	if len(failed) > 0 {
		c.notify("Upload failed", fmt.Sprintf("%s failed to upload. Please try again.", plural(len(failed), "file")), notify.VariantDestructive)
		c.queue.Replace(failed)
		return
	}
	c.queue.Clear()
}

// localDocumentPrefix marks material ids made up locally because the backend
// did not return one.
const localDocumentPrefix = "document-"

// LocalDocument reports whether id was made up locally and so cannot be
// fetched from the backend.
func LocalDocument(id string) bool {
	return strings.HasPrefix(id, localDocumentPrefix)
}

func (c *Controller) materialFrom(courseID string, o FileOutcome) types.Material {
	id := o.Doc.DocumentID
	if id == "" {
		id = localDocumentPrefix + c.newID()
	}
	name := o.Doc.Name
	if name == "" {
		name = o.File.Name
	}
	status := o.Doc.Status
	if status == "" {
		status = types.StatusStored
	}
	return types.Material{
		ID:         id,
		Name:       name,
		CourseID:   courseID,
		Type:       types.MaterialPDF,
		DocumentID: id,
		Status:     status,
	}
}

// UploadMaterials runs an upload synchronously.
func (c *Controller) UploadMaterials() (UploadResult, bool) {
	job, ok := c.BeginUpload()
	if !ok {
		return UploadResult{}, false
	}
	res := job()
	c.CompleteUpload(res)
	return res, true
}

// The queue is locked while an upload runs so the batch snapshot stays the
// source of truth for what ends up back in it.

// EnqueueFiles adds files to the upload queue.
func (c *Controller) EnqueueFiles(files ...types.UploadedFile) bool {
	if c.uploading {
		return false
	}
	c.queue.Enqueue(files...)
	return true
}

// DequeueFile removes the queued file at index.
func (c *Controller) DequeueFile(index int) bool {
	if c.uploading {
		return false
	}
	c.queue.Dequeue(index)
	return true
}

// ClearQueue empties the upload queue.
func (c *Controller) ClearQueue() bool {
	if c.uploading {
		return false
	}
	c.queue.Clear()
	return true
}

// DropFiles delivers a drop gesture to the queue.
func (c *Controller) DropFiles(e *uploadq.DragEvent) bool {
	if c.uploading {
		// End the gesture without accepting its files.
		c.queue.Drop(&uploadq.DragEvent{Target: e.Target, CurrentTarget: e.CurrentTarget})
		e.PreventDefault()
		return false
	}
	c.queue.Drop(e)
	return true
}
