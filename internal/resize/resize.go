// Package resize tracks the width of a panel that is resized by dragging its
// left edge.
package resize

// Bounds fixes the allowed width range and the starting width.
type Bounds struct {
	Min     int
	Max     int
	Default int
}

// Controller holds the panel width and the state of an in-progress drag.
type Controller struct {
	width    int
	min      int
	max      int
	resizing bool
	startX   int
	startW   int
}

// New builds a controller. Inverted bounds are swapped and the default is
// clamped into range.
func New(b Bounds) *Controller {
	lo, hi := b.Min, b.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	c := &Controller{min: lo, max: hi}
	c.width = c.clamp(b.Default)
	return c
}

func (c *Controller) Width() int       { return c.width }
func (c *Controller) Min() int         { return c.min }
func (c *Controller) Max() int         { return c.max }
func (c *Controller) IsResizing() bool { return c.resizing }

// PointerDown starts a drag gesture at column x.
func (c *Controller) PointerDown(x int) {
	c.resizing = true
	c.startX = x
	c.startW = c.width
}

// PointerMove updates the width while a drag is active. Moving left widens the
// panel.
func (c *Controller) PointerMove(x int) {
	if !c.resizing {
		return
	}
	c.width = c.clamp(c.startW + (c.startX - x))
}

// PointerUp ends the gesture. It is safe to call without an active drag.
func (c *Controller) PointerUp() {
	c.resizing = false
}

// PointerCancel ends the gesture when the pointer leaves the tracked surface.
// The width reached so far is kept.
func (c *Controller) PointerCancel() {
	c.resizing = false
}

// Nudge adjusts the width by delta, for keyboard resizing.
func (c *Controller) Nudge(delta int) {
	c.width = c.clamp(c.width + delta)
}

// SetWidth sets the width directly, clamped. Used when restoring preferences.
func (c *Controller) SetWidth(w int) {
	c.width = c.clamp(w)
}

func (c *Controller) clamp(w int) int {
	if w < c.min {
		return c.min
	}
	if w > c.max {
		return c.max
	}
	return w
}
