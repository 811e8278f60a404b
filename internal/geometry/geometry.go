package geometry

import (
	"math"

	"github.com/framecut/framecut/backend-go/internal/document"
)

// Clamp limits v to [lo, hi]. The max(min(...)) form is the one every clamp
// in the editor uses; when lo > hi it returns lo.
func Clamp(v, lo, hi float64) float64 {
	return math.Max(math.Min(v, hi), lo)
}

// ClampScale limits a scale factor to the allowed range.
func ClampScale(v float64) float64 {
	return Clamp(v, document.MinScale, document.MaxScale)
}

// ClampPosition limits a center offset so a box of scaledSize stays within a
// composition dimension of compSize. The offset is measured from the
// composition center, so the bound is symmetric.
func ClampPosition(v, compSize, scaledSize float64) float64 {
	bound := (compSize - scaledSize) / 2
	return Clamp(v, -bound, bound)
}

// DisplayedMediaSize returns the size at which media of the given native
// dimensions is displayed inside the composition under contain fitting:
// scaled to fit entirely while preserving its own aspect ratio. Text and
// media with unknown dimensions fill the whole composition.
func DisplayedMediaSize(nativeW, nativeH float64) (float64, float64) {
	if nativeW <= 0 || nativeH <= 0 {
		return CompositionWidth, CompositionHeight
	}
	nativeAspect := nativeW / nativeH
	compositionAspect := CompositionWidth / CompositionHeight
	if nativeAspect > compositionAspect {
		return CompositionWidth, CompositionWidth / nativeAspect
	}
	return CompositionHeight * nativeAspect, CompositionHeight
}

// ClipBoundingBox returns the clip's displayed bounding box in composition
// space, accounting for its scale and center offset.
func ClipBoundingBox(c document.Clip) Rect {
	dispW, dispH := DisplayedMediaSize(c.NativeWidth, c.NativeHeight)
	width := dispW * c.ScaleX
	height := dispH * c.ScaleY
	return Rect{
		X:      CompositionWidth/2 + c.X - width/2,
		Y:      CompositionHeight/2 + c.Y - height/2,
		Width:  width,
		Height: height,
	}
}

// HitTest returns the ID of the first clip whose bounding box contains the
// point. Candidates must be ordered topmost first; unrenderable clips never
// take hits.
func HitTest(x, y float64, topmostFirst []document.Clip) string {
	for _, c := range topmostFirst {
		if !c.Renderable() {
			continue
		}
		if ClipBoundingBox(c).Contains(x, y) {
			return c.ID
		}
	}
	return ""
}
