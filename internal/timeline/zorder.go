package timeline

import (
	"sort"

	"github.com/framecut/framecut/backend-go/internal/document"
)

// ZIndex is the stacking order of a clip: lower track index stacks above
// higher, and within a track later clips stack above earlier. Higher value
// renders on top. Both rendering and hit testing use this rule.
func ZIndex(numTracks, trackIndex, clipIndex int) int {
	return (numTracks-1-trackIndex)*1000 + clipIndex
}

// StackedClip pairs a clip with its computed z-index.
type StackedClip struct {
	Clip document.Clip
	Z    int
}

// VisibleClips returns the renderable clips visible at the given frame in
// ascending z-order (painter's order, back to front).
func VisibleClips(doc *document.Document, frame int) []StackedClip {
	numTracks := len(doc.Tracks)
	var out []StackedClip
	for ti := range doc.Tracks {
		for ci, c := range doc.Tracks[ti].Clips {
			if !c.VisibleAt(frame) {
				continue
			}
			out = append(out, StackedClip{Clip: c, Z: ZIndex(numTracks, ti, ci)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Z < out[j].Z })
	return out
}

// ClipsTopmostFirst returns the clips visible at the frame ordered for hit
// testing: topmost drawn wins, so highest z first.
func ClipsTopmostFirst(doc *document.Document, frame int) []document.Clip {
	stacked := VisibleClips(doc, frame)
	out := make([]document.Clip, len(stacked))
	for i, s := range stacked {
		out[len(stacked)-1-i] = s.Clip
	}
	return out
}
