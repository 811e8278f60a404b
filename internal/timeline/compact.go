package timeline

import "github.com/framecut/framecut/backend-go/internal/document"

// Compact recomputes every clip's StartFrame as the cumulative sum of the
// durations of the clips before it in sequence order, eliminating gaps.
// This is the single place derived timing is computed; every mutating
// operation in compaction mode goes through it.
func Compact(clips []document.Clip) []document.Clip {
	out := make([]document.Clip, len(clips))
	start := 0
	for i, c := range clips {
		c.StartFrame = start
		out[i] = c
		start += c.DurationInFrames
	}
	return out
}

// TrackEnd returns the end of the last clip on the track by time, not by
// sequence order — positional placement may leave clips out of order.
func TrackEnd(t document.Track) int {
	end := 0
	for _, c := range t.Clips {
		if c.EndFrame() > end {
			end = c.EndFrame()
		}
	}
	return end
}
