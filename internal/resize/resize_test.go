package resize

import (
	"math/rand"
	"testing"
)

func TestNew_NormalisesBounds(t *testing.T) {
	c := New(Bounds{Min: 80, Max: 30, Default: 10})
	if c.Min() != 30 || c.Max() != 80 {
		t.Fatalf("bounds = [%d,%d]", c.Min(), c.Max())
	}
	if c.Width() != 30 {
		t.Fatalf("default should clamp to min, got %d", c.Width())
	}
}

func TestDrag_WidensWhenMovingLeft(t *testing.T) {
	c := New(Bounds{Min: 30, Max: 90, Default: 40})
	c.PointerDown(100)
	if !c.IsResizing() {
		t.Fatal("expected resizing after PointerDown")
	}
	c.PointerMove(90)
	if c.Width() != 50 {
		t.Fatalf("width = %d, want 50", c.Width())
	}
	c.PointerMove(110)
	if c.Width() != 30 {
		t.Fatalf("width = %d, want clamp to 30", c.Width())
	}
	c.PointerMove(0)
	if c.Width() != 90 {
		t.Fatalf("width = %d, want clamp to 90", c.Width())
	}
	c.PointerUp()
	if c.IsResizing() {
		t.Fatal("PointerUp should end the gesture")
	}
	c.PointerMove(50)
	if c.Width() != 90 {
		t.Fatal("moves after release must be ignored")
	}
}

func TestPointerCancel_KeepsWidth(t *testing.T) {
	c := New(Bounds{Min: 10, Max: 100, Default: 40})
	c.PointerDown(50)
	c.PointerMove(45)
	c.PointerCancel()
	if c.IsResizing() || c.Width() != 45 {
		t.Fatalf("resizing=%v width=%d", c.IsResizing(), c.Width())
	}
	c.PointerUp()
}

func TestWidthAlwaysWithinBounds(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	c := New(Bounds{Min: 32, Max: 96, Default: 48})
	for i := 0; i < 2000; i++ {
		switch r.Intn(5) {
		case 0:
			c.PointerDown(r.Intn(300))
		case 1, 2:
			c.PointerMove(r.Intn(600) - 150)
		case 3:
			c.PointerUp()
		case 4:
			c.Nudge(r.Intn(41) - 20)
		}
		if w := c.Width(); w < c.Min() || w > c.Max() {
			t.Fatalf("step %d: width %d outside [%d,%d]", i, w, c.Min(), c.Max())
		}
	}
}

func TestSetWidth(t *testing.T) {
	c := New(Bounds{Min: 20, Max: 60, Default: 30})
	c.SetWidth(1000)
	if c.Width() != 60 {
		t.Fatalf("width = %d", c.Width())
	}
}
