package uploadq

import "github.com/interpretive-systems/studybuddy/internal/types"

// DragEvent describes a drag gesture over the drop zone. Target is the element
// (or source) the event originated from and CurrentTarget the one the handler
// is bound to.
type DragEvent struct {
	Target        string
	CurrentTarget string
	Files         []types.UploadedFile

	defaultPrevented bool
}

// PreventDefault suppresses the host's default handling (opening the file).
func (e *DragEvent) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether a handler suppressed default handling.
func (e *DragEvent) DefaultPrevented() bool { return e.defaultPrevented }

// Dragging reports whether a drag is currently over the drop zone.
func (q *Queue) Dragging() bool {
	return q.dragging
}

func (q *Queue) DragEnter(e *DragEvent) {
	e.PreventDefault()
	q.dragging = true
}

func (q *Queue) DragOver(e *DragEvent) {
	e.PreventDefault()
	q.dragging = true
}

// DragLeave only clears the dragging flag when the drag leaves the bound
// element itself, not one of its children.
func (q *Queue) DragLeave(e *DragEvent) {
	e.PreventDefault()
	if e.Target == e.CurrentTarget {
		q.dragging = false
	}
}

// Drop ends the gesture and enqueues the dropped files.
func (q *Queue) Drop(e *DragEvent) {
	e.PreventDefault()
	q.dragging = false
	q.Enqueue(e.Files...)
}
