package view

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vanderheijden86/impgraph/pkg/model"
	"github.com/vanderheijden86/impgraph/pkg/sim"
)

func newTestController(t *testing.T, p *model.Payload) (*Controller, *sim.Engine) {
	t.Helper()
	eng, err := sim.New(p, 800, 600, sim.DefaultParams())
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return NewController(eng, NewCamera(), DefaultScaleConfig()), eng
}

func pairPayload() *model.Payload {
	return &model.Payload{
		Nodes: []model.Node{{ID: "a", Label: "a"}, {ID: "b", Label: "b"}},
		Links: []model.Link{{Source: "a", Target: "b"}},
	}
}

func TestPressOnNodeStartsDrag(t *testing.T) {
	c, eng := newTestController(t, pairPayload())
	slot, _ := eng.SlotOf("a")
	pos := eng.Body(slot).Pos

	c.PointerDown(pos)
	if c.Mode() != Dragging {
		t.Fatalf("mode = %v, want Dragging", c.Mode())
	}
	if c.DragSlot() != slot {
		t.Errorf("drag slot = %d, want %d", c.DragSlot(), slot)
	}
	if !eng.Body(slot).Pinned {
		t.Error("dragged node should be pinned")
	}
}

func TestPressOnBackgroundStartsPan(t *testing.T) {
	c, _ := newTestController(t, pairPayload())
	c.PointerDown(r2.Vec{X: 5, Y: 5})
	if c.Mode() != Panning {
		t.Fatalf("mode = %v, want Panning", c.Mode())
	}
	if c.DragSlot() != -1 {
		t.Errorf("drag slot = %d, want -1", c.DragSlot())
	}
}

func TestDragMovesNodeWithPointer(t *testing.T) {
	c, eng := newTestController(t, pairPayload())
	slot, _ := eng.SlotOf("a")
	start := eng.Body(slot).Pos

	c.PointerDown(start)
	c.PointerMove(r2.Add(start, r2.Vec{X: 40, Y: -25}))

	want := r2.Add(start, r2.Vec{X: 40, Y: -25})
	if eng.Body(slot).Pos != want {
		t.Errorf("dragged to %v, want %v", eng.Body(slot).Pos, want)
	}
	if !eng.Body(slot).Pinned {
		t.Error("node must stay pinned mid-drag")
	}
}

func TestPanMovesCamera(t *testing.T) {
	c, _ := newTestController(t, pairPayload())
	c.PointerDown(r2.Vec{X: 5, Y: 5})
	c.PointerMove(r2.Vec{X: 35, Y: 25})
	if c.camera.Pan != (r2.Vec{X: 30, Y: 20}) {
		t.Errorf("pan = %v, want {30 20}", c.camera.Pan)
	}
}

func TestReleaseReturnsToIdleAndUnpins(t *testing.T) {
	c, eng := newTestController(t, pairPayload())
	slot, _ := eng.SlotOf("a")
	c.PointerDown(eng.Body(slot).Pos)
	c.PointerUp()

	if c.Mode() != Idle {
		t.Errorf("mode = %v, want Idle", c.Mode())
	}
	if eng.Body(slot).Pinned {
		t.Error("node still pinned after release")
	}
	if eng.Body(slot).Vel != (r2.Vec{}) {
		t.Errorf("release left velocity %v", eng.Body(slot).Vel)
	}
}

func TestSecondPressDuringDragIsIgnored(t *testing.T) {
	c, eng := newTestController(t, pairPayload())
	a, _ := eng.SlotOf("a")
	b, _ := eng.SlotOf("b")
	c.PointerDown(eng.Body(a).Pos)
	c.PointerDown(eng.Body(b).Pos)
	if c.DragSlot() != a {
		t.Errorf("second press changed the drag target to %d", c.DragSlot())
	}
	if eng.Body(b).Pinned {
		t.Error("second press pinned another node")
	}
}

func TestPointerLeaveCancelsEverything(t *testing.T) {
	c, eng := newTestController(t, pairPayload())
	slot, _ := eng.SlotOf("a")
	c.PointerMove(eng.Body(slot).Pos) // hover
	if c.Highlight().HoveredSlot != slot {
		t.Fatalf("hover = %d, want %d", c.Highlight().HoveredSlot, slot)
	}
	c.PointerDown(eng.Body(slot).Pos)
	c.PointerLeave()

	if c.Mode() != Idle {
		t.Errorf("mode = %v, want Idle", c.Mode())
	}
	if c.Highlight().HoveredSlot != -1 {
		t.Errorf("hover = %d, want -1", c.Highlight().HoveredSlot)
	}
	if eng.Body(slot).Pinned {
		t.Error("node still pinned after leave")
	}
}

func TestHitTestTieBreaksOnSmallestID(t *testing.T) {
	p := &model.Payload{
		Nodes: []model.Node{{ID: "zz", Label: "zz"}, {ID: "aa", Label: "aa"}},
	}
	c, eng := newTestController(t, p)
	// Stack both nodes on the same point with identical sizes.
	shared := r2.Vec{X: 400, Y: 300}
	for i := 0; i < eng.Len(); i++ {
		eng.Body(i).Pos = shared
		eng.Body(i).Size = 1
	}
	hit := c.HitTest(shared)
	if hit < 0 {
		t.Fatal("expected a hit")
	}
	if eng.Node(hit).ID != "aa" {
		t.Errorf("tie should break to smallest id, got %s", eng.Node(hit).ID)
	}
}

func TestHitTestScalesWithNodeSize(t *testing.T) {
	c, eng := newTestController(t, pairPayload())
	slot, _ := eng.SlotOf("a")
	body := eng.Body(slot)
	body.Size = 2

	scaled := NewScaledValues(DefaultScaleConfig(), 1)
	justInside := r2.Add(body.Pos, r2.Vec{X: scaled.HitRadius*2 - 1})
	justOutside := r2.Add(body.Pos, r2.Vec{X: scaled.HitRadius*2 + 50})

	if c.HitTest(justInside) != slot {
		t.Error("point inside the scaled hit area missed")
	}
	if got := c.HitTest(justOutside); got == slot {
		t.Error("point outside the scaled hit area hit")
	}
}

func TestWheelZoomDirection(t *testing.T) {
	c, _ := newTestController(t, pairPayload())
	c.Wheel(r2.Vec{X: 400, Y: 300}, -1)
	if c.camera.Zoom <= 1 {
		t.Errorf("negative deltaY should zoom in, zoom=%v", c.camera.Zoom)
	}
	c.Wheel(r2.Vec{X: 400, Y: 300}, 1)
	c.Wheel(r2.Vec{X: 400, Y: 300}, 1)
	if c.camera.Zoom >= 1 {
		t.Errorf("positive deltaY should zoom out, zoom=%v", c.camera.Zoom)
	}
}

func TestHoverNotUpdatedWhileDragging(t *testing.T) {
	c, eng := newTestController(t, pairPayload())
	a, _ := eng.SlotOf("a")
	b, _ := eng.SlotOf("b")
	c.PointerDown(eng.Body(a).Pos)
	c.PointerMove(eng.Body(b).Pos)
	if c.Highlight().HoveredSlot == b {
		t.Error("hover must not retarget mid-drag")
	}
}
