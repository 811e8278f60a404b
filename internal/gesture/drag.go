package gesture

import (
	"github.com/framecut/framecut/backend-go/internal/document"
	"github.com/framecut/framecut/backend-go/internal/geometry"
	"github.com/framecut/framecut/backend-go/internal/timeline"
)

// DragController repositions a clip over the preview. Visual position is
// reported on every move for low-latency feedback; model commits are
// throttled to the animation-frame rate, with one final unthrottled commit
// on release so the last position is exact.
type DragController struct {
	phase    Phase
	clipID   string
	viewport geometry.Viewport
	throttle *Throttle

	startPX, startPY float64
	initX, initY     float64
	scaledW, scaledH float64

	// Last clamped candidate position, committed on release.
	curX, curY float64
}

// NewDragController starts a move gesture at the given pointer position in
// viewport pixels.
func NewDragController(clip document.Clip, vp geometry.Viewport, px, py float64) *DragController {
	dispW, dispH := geometry.DisplayedMediaSize(clip.NativeWidth, clip.NativeHeight)
	return &DragController{
		phase:    Active,
		clipID:   clip.ID,
		viewport: vp,
		throttle: NewThrottle(),
		startPX:  px,
		startPY:  py,
		initX:    clip.X,
		initY:    clip.Y,
		scaledW:  dispW * clip.ScaleX,
		scaledH:  dispH * clip.ScaleY,
		curX:     clip.X,
		curY:     clip.Y,
	}
}

func (dc *DragController) Phase() Phase { return dc.phase }

// Move consumes a pointer position. It returns the clamped candidate
// position (always valid for immediate visual feedback) and whether the
// model should be committed on this event.
func (dc *DragController) Move(px, py float64) (x, y float64, commit bool) {
	if dc.phase != Active {
		return dc.curX, dc.curY, false
	}

	scale := dc.viewport.Scale()
	dxc := (px - dc.startPX) / scale
	dyc := (py - dc.startPY) / scale

	dc.curX = geometry.ClampPosition(dc.initX+dxc, geometry.CompositionWidth, dc.scaledW)
	dc.curY = geometry.ClampPosition(dc.initY+dyc, geometry.CompositionHeight, dc.scaledH)

	return dc.curX, dc.curY, dc.throttle.Allow()
}

// Release ends the gesture and returns the final resize request, which must
// be committed unthrottled.
func (dc *DragController) Release(px, py float64) timeline.ResizeRequest {
	if dc.phase == Active {
		dc.phase = Idle
		scale := dc.viewport.Scale()
		dxc := (px - dc.startPX) / scale
		dyc := (py - dc.startPY) / scale
		dc.curX = geometry.ClampPosition(dc.initX+dxc, geometry.CompositionWidth, dc.scaledW)
		dc.curY = geometry.ClampPosition(dc.initY+dyc, geometry.CompositionHeight, dc.scaledH)
	}
	x, y := dc.curX, dc.curY
	return timeline.ResizeRequest{ClipID: dc.clipID, X: &x, Y: &y}
}

// Cancel ends the gesture; whatever was last committed stands.
func (dc *DragController) Cancel() {
	dc.phase = Idle
}

// Request returns a commit for the current position, for throttled
// mid-gesture commits.
func (dc *DragController) Request() timeline.ResizeRequest {
	x, y := dc.curX, dc.curY
	return timeline.ResizeRequest{ClipID: dc.clipID, X: &x, Y: &y}
}
