package gesture

import (
	"testing"

	"github.com/framecut/framecut/backend-go/internal/document"
	"github.com/framecut/framecut/backend-go/internal/geometry"
)

func dragTestClip() document.Clip {
	// Displayed full-frame, scaled to half: a 640x360 box with ±320/±180 of
	// travel inside the composition.
	return document.Clip{
		ID: "clip_d", Type: document.ClipTypeImage, Src: "d.png",
		DurationInFrames: 60,
		ScaleX:           0.5, ScaleY: 0.5,
		NativeWidth: 1280, NativeHeight: 720,
	}
}

var dragViewport = geometry.Viewport{Width: 1280, Height: 720}

func TestDragMove(t *testing.T) {
	dc := NewDragController(dragTestClip(), dragViewport, 600, 400)

	x, y, _ := dc.Move(700, 350)
	if x != 100 || y != -50 {
		t.Errorf("position = (%v, %v), want (100, -50)", x, y)
	}
}

func TestDragClampsToExactBound(t *testing.T) {
	dc := NewDragController(dragTestClip(), dragViewport, 600, 400)

	// Way outside: the candidate lands exactly on the bound, not near it.
	x, y, _ := dc.Move(6000, -4000)
	if x != 320 || y != -180 {
		t.Errorf("position = (%v, %v), want (320, -180)", x, y)
	}
}

func TestDragScalesPointerDeltaByViewport(t *testing.T) {
	// Half-size viewport: 50 screen pixels are 100 composition pixels.
	vp := geometry.Viewport{Width: 640, Height: 360}
	dc := NewDragController(dragTestClip(), vp, 300, 200)

	x, y, _ := dc.Move(350, 200)
	if x != 100 || y != 0 {
		t.Errorf("position = (%v, %v), want (100, 0)", x, y)
	}
}

func TestDragThrottlesCommits(t *testing.T) {
	dc := NewDragController(dragTestClip(), dragViewport, 600, 400)

	_, _, commit := dc.Move(610, 400)
	if !commit {
		t.Fatal("first move should commit")
	}
	// Immediate follow-up is inside the animation-frame window.
	_, _, commit = dc.Move(620, 400)
	if commit {
		t.Error("second move inside the window should not commit")
	}
}

func TestDragReleaseIsFinalAndExact(t *testing.T) {
	dc := NewDragController(dragTestClip(), dragViewport, 600, 400)

	dc.Move(610, 400)
	dc.Move(620, 400) // throttled, but release must still be exact

	req := dc.Release(650, 430)
	if req.ClipID != "clip_d" || req.X == nil || req.Y == nil {
		t.Fatalf("release request = %+v", req)
	}
	if *req.X != 50 || *req.Y != 30 {
		t.Errorf("final position = (%v, %v), want (50, 30)", *req.X, *req.Y)
	}

	if dc.Phase() != Idle {
		t.Error("release should end the gesture")
	}
}

func TestDragCancelKeepsLastPosition(t *testing.T) {
	dc := NewDragController(dragTestClip(), dragViewport, 600, 400)
	dc.Move(700, 400)
	dc.Cancel()

	// Moves after cancel are ignored.
	x, y, commit := dc.Move(900, 900)
	if commit || x != 100 || y != 0 {
		t.Errorf("post-cancel move = (%v, %v, %v)", x, y, commit)
	}
}

func TestDragRequestMatchesCurrentPosition(t *testing.T) {
	dc := NewDragController(dragTestClip(), dragViewport, 600, 400)
	dc.Move(700, 460)

	req := dc.Request()
	if *req.X != 100 || *req.Y != 60 {
		t.Errorf("request position = (%v, %v), want (100, 60)", *req.X, *req.Y)
	}
}
