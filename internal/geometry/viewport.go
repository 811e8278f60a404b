package geometry

// The composition is a fixed logical canvas. Clip transforms and hit tests
// are all expressed in this space regardless of how large the preview is
// rendered on screen.
const (
	CompositionWidth  = 1280.0
	CompositionHeight = 720.0
)

// Viewport is the on-screen pixel box the composition is rendered into.
// The rendered composition is letterboxed (or pillarboxed) inside it to
// preserve the composition aspect ratio.
type Viewport struct {
	Width  float64
	Height float64
}

// Scale returns the viewport-pixels-per-composition-pixel factor.
func (v Viewport) Scale() float64 {
	if v.Width <= 0 || v.Height <= 0 {
		return 1
	}
	compositionAspect := CompositionWidth / CompositionHeight
	viewportAspect := v.Width / v.Height
	if viewportAspect > compositionAspect {
		// Pillarboxed: empty bars left/right, height is the binding dimension.
		return v.Height / CompositionHeight
	}
	return v.Width / CompositionWidth
}

// Offset returns the top-left corner of the rendered composition inside the
// viewport, in viewport pixels.
func (v Viewport) Offset() (float64, float64) {
	if v.Width <= 0 || v.Height <= 0 {
		return 0, 0
	}
	compositionAspect := CompositionWidth / CompositionHeight
	viewportAspect := v.Width / v.Height
	if viewportAspect > compositionAspect {
		return (v.Width - v.Height*compositionAspect) / 2, 0
	}
	return 0, (v.Height - v.Width/compositionAspect) / 2
}

// ToComposition converts a viewport pixel coordinate to composition space.
func (v Viewport) ToComposition(px, py float64) (float64, float64) {
	offsetX, offsetY := v.Offset()
	scale := v.Scale()
	return (px - offsetX) / scale, (py - offsetY) / scale
}

// ToViewport converts a composition coordinate to viewport pixels.
func (v Viewport) ToViewport(cx, cy float64) (float64, float64) {
	offsetX, offsetY := v.Offset()
	scale := v.Scale()
	return cx*scale + offsetX, cy*scale + offsetY
}
