package viewport

import (
	"testing"

	"github.com/google/uuid"

	"github.com/ghuser/mediaboard/services/canvas/domain/geometry"
	"github.com/ghuser/mediaboard/services/canvas/domain/gesture"
)

func newController() *Controller {
	return New(geometry.Sz(5000, 5000), geometry.Pt(0, 0), geometry.Sz(800, 600))
}

func TestNew_Defaults(t *testing.T) {
	c := newController()
	if c.Zoom() != 100 || c.Scroll() != geometry.Pt(0, 0) || c.IsPanning() {
		t.Fatalf("unexpected initial state: zoom=%d scroll=%v panning=%v", c.Zoom(), c.Scroll(), c.IsPanning())
	}
}

func TestZoom_ClampsAndStepping(t *testing.T) {
	c := newController()

	for i := 0; i < 20; i++ {
		c.ZoomIn()
	}
	if c.Zoom() != MaxZoom {
		t.Fatalf("expected zoom clamped to %d, got %d", MaxZoom, c.Zoom())
	}

	for i := 0; i < 30; i++ {
		c.ZoomOut()
	}
	if c.Zoom() != MinZoom {
		t.Fatalf("expected zoom clamped to %d, got %d", MinZoom, c.Zoom())
	}

	if got := c.ZoomIn(); got != 60 {
		t.Fatalf("expected 60 after one step in, got %d", got)
	}
}

func TestZoom_AlwaysInRange(t *testing.T) {
	c := newController()
	ops := []func() int{c.ZoomIn, c.ZoomOut, c.ZoomIn, c.ZoomIn, c.ZoomOut}
	for round := 0; round < 50; round++ {
		for _, op := range ops {
			z := op()
			if z < MinZoom || z > MaxZoom || z%ZoomStep != 0 {
				t.Fatalf("zoom %d escaped [%d,%d] in steps of %d", z, MinZoom, MaxZoom, ZoomStep)
			}
		}
	}
}

func TestSetZoom_Snaps(t *testing.T) {
	c := newController()
	tests := map[int]int{0: 50, -40: 50, 104: 100, 106: 110, 125: 130, 9999: 200}
	for in, want := range tests {
		if got := c.SetZoom(in); got != want {
			t.Errorf("SetZoom(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestZoom_DoesNotTouchScroll(t *testing.T) {
	c := newController()
	c.ScrollTo(geometry.Pt(400, 300))
	c.ZoomIn()
	c.ZoomOut()
	c.ZoomOut()
	if c.Scroll() != geometry.Pt(400, 300) {
		t.Fatalf("zoom changed scroll to %v", c.Scroll())
	}
}

func TestPan(t *testing.T) {
	c := newController()
	c.ScrollTo(geometry.Pt(500, 500))

	if !c.BeginPan(gesture.OnBackground(), geometry.Pt(300, 300)) {
		t.Fatal("background pointer-down must start a pan")
	}
	if !c.ContinuePan(geometry.Pt(250, 320)) {
		t.Fatal("ContinuePan must report an active pan")
	}
	// scroll = start - (pointer - startPointer) = (500,500) - (-50, 20)
	if c.Scroll() != geometry.Pt(550, 480) {
		t.Fatalf("scroll = %v, want (550,480)", c.Scroll())
	}

	c.ContinuePan(geometry.Pt(300, 300))
	if c.Scroll() != geometry.Pt(500, 500) {
		t.Fatalf("returning to the start must restore the start scroll, got %v", c.Scroll())
	}

	c.EndPan()
	if c.IsPanning() {
		t.Fatal("EndPan must clear the pan flag")
	}
	if c.ContinuePan(geometry.Pt(0, 0)) {
		t.Fatal("ContinuePan after EndPan must be ignored")
	}
	if c.Scroll() != geometry.Pt(500, 500) {
		t.Fatalf("scroll moved after EndPan: %v", c.Scroll())
	}
}

func TestBeginPan_RefusesItemsAndControls(t *testing.T) {
	c := newController()
	for _, target := range []gesture.Target{gesture.OnItem(uuid.New()), gesture.OnControl(uuid.Nil)} {
		if c.BeginPan(target, geometry.Pt(10, 10)) {
			t.Fatalf("pan must not start on %s", target.Kind)
		}
	}
	if c.IsPanning() {
		t.Fatal("refused pan must leave controller idle")
	}
}

func TestPan_ClampsToScrollableRange(t *testing.T) {
	c := newController()
	c.BeginPan(gesture.OnBackground(), geometry.Pt(100, 100))

	c.ContinuePan(geometry.Pt(900, 900))
	if c.Scroll() != geometry.Pt(0, 0) {
		t.Fatalf("scroll must not go negative, got %v", c.Scroll())
	}

	c.ContinuePan(geometry.Pt(-10000, -10000))
	if c.Scroll() != geometry.Pt(4200, 4400) {
		t.Fatalf("scroll must stop at content minus view, got %v", c.Scroll())
	}
}

func TestMaxScroll_FollowsZoom(t *testing.T) {
	c := newController()
	if got := c.MaxScroll(); got != geometry.Pt(4200, 4400) {
		t.Fatalf("100%%: %v", got)
	}
	c.SetZoom(50)
	if got := c.MaxScroll(); got != geometry.Pt(1700, 1900) {
		t.Fatalf("50%%: %v", got)
	}
	c.SetZoom(200)
	if got := c.MaxScroll(); got != geometry.Pt(9200, 9400) {
		t.Fatalf("200%%: %v", got)
	}
}

func TestResize_ReclampsScroll(t *testing.T) {
	c := newController()
	c.ScrollTo(geometry.Pt(4200, 4400))
	c.Resize(geometry.Pt(10, 20), geometry.Sz(1000, 1000))

	if c.Scroll() != geometry.Pt(4000, 4000) {
		t.Fatalf("scroll = %v, want (4000,4000)", c.Scroll())
	}
	if f := c.Frame(); f.Origin != geometry.Pt(10, 20) || f.Zoom != 100 {
		t.Fatalf("frame = %+v", f)
	}
}

func TestFrame_ReflectsLiveState(t *testing.T) {
	c := newController()
	c.ScrollTo(geometry.Pt(400, 300))
	c.SetZoom(50)
	f := c.Frame()
	if f.Scroll != geometry.Pt(400, 300) || f.Zoom != 50 {
		t.Fatalf("frame = %+v", f)
	}
	c.ZoomIn()
	if c.Frame().Zoom != 60 {
		t.Fatal("frame must be rebuilt from live state, not cached")
	}
}
