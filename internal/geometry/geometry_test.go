package geometry

import (
	"math"
	"testing"

	"github.com/framecut/framecut/backend-go/internal/document"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestViewportScale(t *testing.T) {
	tests := []struct {
		name string
		vp   Viewport
		want float64
	}{
		{"exact fit", Viewport{1280, 720}, 1},
		{"half size", Viewport{640, 360}, 0.5},
		{"pillarboxed wide viewport", Viewport{2000, 720}, 1},
		{"letterboxed tall viewport", Viewport{1280, 2000}, 1},
		{"small pillarboxed", Viewport{1000, 360}, 0.5},
		{"zero viewport", Viewport{0, 0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vp.Scale(); !almostEqual(got, tt.want) {
				t.Errorf("Scale() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestViewportOffset(t *testing.T) {
	tests := []struct {
		name           string
		vp             Viewport
		wantX, wantY   float64
	}{
		{"exact fit", Viewport{1280, 720}, 0, 0},
		{"pillarboxed", Viewport{2000, 720}, 360, 0},
		{"letterboxed", Viewport{1280, 1000}, 0, 140},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotX, gotY := tt.vp.Offset()
			if !almostEqual(gotX, tt.wantX) || !almostEqual(gotY, tt.wantY) {
				t.Errorf("Offset() = (%v, %v), want (%v, %v)", gotX, gotY, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestViewportRoundTrip(t *testing.T) {
	viewports := []Viewport{
		{1280, 720},
		{640, 360},
		{2000, 720},  // pillarboxed
		{1280, 2000}, // letterboxed
		{973, 541},   // awkward non-integer scale
	}

	points := [][2]float64{{0, 0}, {640, 360}, {1280, 720}, {12.5, 699.25}}

	for _, vp := range viewports {
		for _, p := range points {
			px, py := vp.ToViewport(p[0], p[1])
			cx, cy := vp.ToComposition(px, py)
			if !almostEqual(cx, p[0]) || !almostEqual(cy, p[1]) {
				t.Errorf("viewport %+v: round trip of (%v, %v) = (%v, %v)", vp, p[0], p[1], cx, cy)
			}
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name       string
		v, lo, hi  float64
		want       float64
	}{
		{"inside", 5, 0, 10, 5},
		{"below", -1, 0, 10, 0},
		{"above", 11, 0, 10, 10},
		{"at lower bound", 0, 0, 10, 0},
		{"inverted range pins to lo", 5, 8, 2, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestClampScale(t *testing.T) {
	if got := ClampScale(0.05); got != document.MinScale {
		t.Errorf("ClampScale(0.05) = %v, want %v", got, document.MinScale)
	}
	if got := ClampScale(5); got != document.MaxScale {
		t.Errorf("ClampScale(5) = %v, want %v", got, document.MaxScale)
	}
	if got := ClampScale(1.5); got != 1.5 {
		t.Errorf("ClampScale(1.5) = %v, want 1.5", got)
	}
}

func TestClampPosition(t *testing.T) {
	// 400-wide box in a 1280-wide composition can move ±440 from center.
	if got := ClampPosition(500, 1280, 400); got != 440 {
		t.Errorf("ClampPosition(500) = %v, want 440", got)
	}
	if got := ClampPosition(-500, 1280, 400); got != -440 {
		t.Errorf("ClampPosition(-500) = %v, want -440", got)
	}
	if got := ClampPosition(100, 1280, 400); got != 100 {
		t.Errorf("ClampPosition(100) = %v, want 100", got)
	}

	// A box larger than the composition has an inverted range; the clamp
	// pins to the lower bound.
	if got := ClampPosition(0, 1280, 2000); got != -360 {
		t.Errorf("ClampPosition oversized = %v, want -360", got)
	}
}

func TestDisplayedMediaSize(t *testing.T) {
	tests := []struct {
		name             string
		nativeW, nativeH float64
		wantW, wantH     float64
	}{
		{"same aspect as composition", 1920, 1080, 1280, 720},
		{"wider than composition", 3200, 720, 1280, 288},
		{"taller than composition", 720, 1280, 405, 720},
		{"square", 1000, 1000, 720, 720},
		{"unknown dimensions fill composition", 0, 0, 1280, 720},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotW, gotH := DisplayedMediaSize(tt.nativeW, tt.nativeH)
			if !almostEqual(gotW, tt.wantW) || !almostEqual(gotH, tt.wantH) {
				t.Errorf("DisplayedMediaSize(%v, %v) = (%v, %v), want (%v, %v)",
					tt.nativeW, tt.nativeH, gotW, gotH, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestClipBoundingBox(t *testing.T) {
	// 640x360 media displayed contain-fit fills the composition, so at
	// scale 0.5 centered the box is 640x360 at (320, 180).
	clip := document.Clip{
		ID: "clip_1", Type: document.ClipTypeImage, Src: "a.png",
		ScaleX: 0.5, ScaleY: 0.5,
		NativeWidth: 640, NativeHeight: 360,
	}
	box := ClipBoundingBox(clip)
	want := Rect{X: 320, Y: 180, Width: 640, Height: 360}
	if box != want {
		t.Errorf("centered box = %+v, want %+v", box, want)
	}

	// Offset moves the center, not the corner.
	clip.X = 100
	clip.Y = -50
	box = ClipBoundingBox(clip)
	want = Rect{X: 420, Y: 130, Width: 640, Height: 360}
	if box != want {
		t.Errorf("offset box = %+v, want %+v", box, want)
	}
}

func TestHitTest(t *testing.T) {
	top := document.Clip{
		ID: "clip_top", Type: document.ClipTypeImage, Src: "t.png",
		ScaleX: 1, ScaleY: 1, NativeWidth: 1280, NativeHeight: 720,
	}
	bottom := document.Clip{
		ID: "clip_bottom", Type: document.ClipTypeImage, Src: "b.png",
		ScaleX: 1, ScaleY: 1, NativeWidth: 1280, NativeHeight: 720,
	}

	t.Run("topmost wins", func(t *testing.T) {
		got := HitTest(640, 360, []document.Clip{top, bottom})
		if got != "clip_top" {
			t.Errorf("HitTest = %q, want clip_top", got)
		}
	})

	t.Run("unrenderable clip never takes hits", func(t *testing.T) {
		broken := top
		broken.Src = ""
		got := HitTest(640, 360, []document.Clip{broken, bottom})
		if got != "clip_bottom" {
			t.Errorf("HitTest = %q, want clip_bottom", got)
		}
	})

	t.Run("miss", func(t *testing.T) {
		small := document.Clip{
			ID: "clip_small", Type: document.ClipTypeImage, Src: "s.png",
			ScaleX: 0.1, ScaleY: 0.1, NativeWidth: 1280, NativeHeight: 720,
		}
		if got := HitTest(10, 10, []document.Clip{small}); got != "" {
			t.Errorf("HitTest = %q, want empty", got)
		}
	})
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 5, Y: 5, Width: 20, Height: 20}

	got := a.Union(b)
	want := Rect{X: 0, Y: 0, Width: 25, Height: 25}
	if got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}

	// Empty rects are identity elements.
	if got := (Rect{}).Union(b); got != b {
		t.Errorf("empty.Union(b) = %+v, want %+v", got, b)
	}
	if got := a.Union(Rect{}); got != a {
		t.Errorf("a.Union(empty) = %+v, want %+v", got, a)
	}
}
