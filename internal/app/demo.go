package app

import "time"

// Demo asset identifiers exposed once the latch is unlocked.
const (
	DemoDocumentID = "doc_20251116_113045_649868"
	DemoVideoID    = "003cbc6c-214e-421b-9278-b383013fe4b4"
	DemoPage       = 75
)

// DemoVideoOffset is where playback of the demo video starts (30:58).
const DemoVideoOffset = 30*time.Minute + 58*time.Second

// DemoLatch starts locked and can be unlocked exactly once.
type DemoLatch struct {
	unlocked bool
}

// Unlock opens the latch and reports whether this call changed it.
func (l *DemoLatch) Unlock() bool {
	if l.unlocked {
		return false
	}
	l.unlocked = true
	return true
}

// Unlocked reports the latch state.
func (l *DemoLatch) Unlocked() bool { return l.unlocked }

// DemoDocument is the fixed slide deck shown after the first exchange.
type DemoDocument struct {
	ID   string
	Name string
}

// DemoVideo is the fixed lecture clip shown after the first exchange.
type DemoVideo struct {
	ID     string
	Offset time.Duration
}

// DemoUnlocked reports whether the demo assets are available.
func (c *Controller) DemoUnlocked() bool { return c.demo.Unlocked() }

// DemoDocument returns the demo deck once unlocked.
func (c *Controller) DemoDocument() (DemoDocument, bool) {
	if !c.demo.Unlocked() {
		return DemoDocument{}, false
	}
	return DemoDocument{ID: DemoDocumentID, Name: DemoDocumentID + ".pdf"}, true
}

// DemoVideo returns the demo clip once unlocked.
func (c *Controller) DemoVideo() (DemoVideo, bool) {
	if !c.demo.Unlocked() {
		return DemoVideo{}, false
	}
	return DemoVideo{ID: DemoVideoID, Offset: DemoVideoOffset}, true
}

// PageNumber is the slide viewer page. It is pinned to DemoPage once the demo
// assets are unlocked.
func (c *Controller) PageNumber() int {
	if c.demo.Unlocked() {
		return DemoPage
	}
	return c.page
}

// SetPage moves the slide viewer. Ignored while pinned.
func (c *Controller) SetPage(n int) {
	if c.demo.Unlocked() || n < 1 {
		return
	}
	c.page = n
}
