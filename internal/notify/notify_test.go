package notify

import (
	"testing"
	"time"
)

func TestCenter_LimitAndExpiry(t *testing.T) {
	base := time.Date(2025, 11, 16, 11, 30, 0, 0, time.UTC)
	now := base
	c := NewCenter(2, 5*time.Second)
	c.now = func() time.Time { return now }

	c.Notify(Notification{Title: "one"})
	c.Notify(Notification{Title: "two"})
	c.Notify(Notification{Title: "three"})

	active := c.Active()
	if len(active) != 2 || active[0].Title != "two" || active[1].Title != "three" {
		t.Fatalf("unexpected active toasts: %+v", active)
	}

	now = base.Add(6 * time.Second)
	if _, ok := c.Latest(); ok {
		t.Fatal("expected toasts to expire")
	}
}

func TestCenter_LatestAndDismiss(t *testing.T) {
	c := NewCenter(0, 0)
	c.Notify(Notification{Title: "a", Variant: VariantDestructive})
	n, ok := c.Latest()
	if !ok || n.Title != "a" || n.At.IsZero() {
		t.Fatalf("Latest() = %+v, %v", n, ok)
	}
	if n.Variant.String() != "destructive" {
		t.Fatalf("variant = %s", n.Variant)
	}
	c.Dismiss()
	if len(c.Active()) != 0 {
		t.Fatal("Dismiss should clear toasts")
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	var n Notifier = &r
	n.Notify(Notification{Title: "x"})
	if got := r.All(); len(got) != 1 || got[0].Title != "x" {
		t.Fatalf("All() = %+v", got)
	}
	r.Reset()
	if len(r.All()) != 0 {
		t.Fatal("Reset should clear")
	}
	Discard.Notify(Notification{Title: "ignored"})
}
