package gesture

import "math"

// ScrubController converts pointer X positions over the timeline ruler into
// playback frames. Seeks are throttled like drag commits, with a final
// unthrottled seek on release.
type ScrubController struct {
	phase           Phase
	pixelsPerSecond float64
	fps             int
	totalFrames     int
	leftOffset      float64
	throttle        *Throttle

	lastFrame int
}

// NewScrubController starts a scrub gesture. leftOffset is the fixed width
// of the track-header panel to the left of the ruler.
func NewScrubController(pixelsPerSecond float64, fps, totalFrames int, leftOffset float64) *ScrubController {
	return &ScrubController{
		phase:           Active,
		pixelsPerSecond: pixelsPerSecond,
		fps:             fps,
		totalFrames:     totalFrames,
		leftOffset:      leftOffset,
		throttle:        NewThrottle(),
	}
}

func (sc *ScrubController) Phase() Phase { return sc.phase }

// FrameAt converts a pointer X position to a clamped frame number.
func (sc *ScrubController) FrameAt(x float64) int {
	if sc.pixelsPerSecond <= 0 || sc.totalFrames <= 0 {
		return 0
	}
	frame := int(math.Round((x - sc.leftOffset) / sc.pixelsPerSecond * float64(sc.fps)))
	if frame < 0 {
		frame = 0
	}
	if frame > sc.totalFrames-1 {
		frame = sc.totalFrames - 1
	}
	return frame
}

// Move consumes a pointer position and returns the frame to seek to and
// whether the seek should go through on this event.
func (sc *ScrubController) Move(x float64) (frame int, seek bool) {
	if sc.phase != Active {
		return sc.lastFrame, false
	}
	sc.lastFrame = sc.FrameAt(x)
	return sc.lastFrame, sc.throttle.Allow()
}

// Release ends the gesture and returns the final frame, which must be
// sought unthrottled.
func (sc *ScrubController) Release(x float64) int {
	if sc.phase == Active {
		sc.phase = Idle
		sc.lastFrame = sc.FrameAt(x)
	}
	return sc.lastFrame
}

// Cancel ends the gesture without a final seek.
func (sc *ScrubController) Cancel() {
	sc.phase = Idle
}
