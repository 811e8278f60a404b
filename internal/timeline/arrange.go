package timeline

import (
	"github.com/framecut/framecut/backend-go/internal/document"
	"github.com/framecut/framecut/backend-go/internal/geometry"
)

// MinTimelineFrames is the minimum composition length, even when empty.
const MinTimelineFrames = 90

// PlacementPolicy selects how a placement assigns timing. Both policies are
// real domain rules: compaction derives StartFrame from sequence order,
// positional placement assigns it explicitly and preserves gaps.
type PlacementPolicy int

const (
	PlacementCompact PlacementPolicy = iota
	PlacementPositional
)

// ResizeRequest carries the fields a resize may change. Nil pointers leave
// the corresponding field untouched; Duration <= 0 leaves duration alone.
type ResizeRequest struct {
	ClipID   string
	Duration int
	ScaleX   *float64
	ScaleY   *float64
	X        *float64
	Y        *float64
}

// FindClip locates a clip by ID. Returns the owning track, the clip's index
// within it, and whether it was found.
func FindClip(doc *document.Document, clipID string) (*document.Track, int, bool) {
	for ti := range doc.Tracks {
		for ci := range doc.Tracks[ti].Clips {
			if doc.Tracks[ti].Clips[ci].ID == clipID {
				return &doc.Tracks[ti], ci, true
			}
		}
	}
	return nil, 0, false
}

// PlaceClip adds a clip to the document. With a target track ID it appends
// there; otherwise it appends to the first track accepting the clip's type,
// creating one (with newTrackID) if none exists. An incompatible target is a
// no-op, not an error. The given policy decides whether the track is
// compacted or the clip is placed at the current track end.
func PlaceClip(doc *document.Document, clip document.Clip, targetTrackID, newTrackID string, policy PlacementPolicy) {
	var track *document.Track
	if targetTrackID != "" {
		for ti := range doc.Tracks {
			if doc.Tracks[ti].ID == targetTrackID {
				track = &doc.Tracks[ti]
				break
			}
		}
		if track == nil || !track.Type.Accepts(clip.Type) {
			return
		}
	} else {
		for ti := range doc.Tracks {
			if doc.Tracks[ti].Type.Accepts(clip.Type) {
				track = &doc.Tracks[ti]
				break
			}
		}
		if track == nil {
			doc.Tracks = append(doc.Tracks, document.Track{
				ID:    newTrackID,
				Type:  document.TrackTypeFor(clip.Type),
				Name:  string(document.TrackTypeFor(clip.Type)),
				Clips: []document.Clip{},
			})
			track = &doc.Tracks[len(doc.Tracks)-1]
		}
	}

	if policy == PlacementPositional {
		clip.StartFrame = TrackEnd(*track)
		track.Clips = append(track.Clips, clip)
		return
	}
	track.Clips = Compact(append(track.Clips, clip))
}

// ReorderWithinTrack moves the clip at from to position to in the sequence
// and recompacts. Out-of-range indices are clamped.
func ReorderWithinTrack(t *document.Track, from, to int) {
	n := len(t.Clips)
	if n == 0 {
		return
	}
	from = clampIndex(from, n)
	to = clampIndex(to, n)
	if from == to {
		t.Clips = Compact(t.Clips)
		return
	}

	clips := make([]document.Clip, 0, n)
	clips = append(clips, t.Clips[:from]...)
	clips = append(clips, t.Clips[from+1:]...)
	moved := t.Clips[from]
	clips = append(clips[:to], append([]document.Clip{moved}, clips[to:]...)...)
	t.Clips = Compact(clips)
}

// MoveAcrossTracks removes a clip from its track and appends it to the
// destination using positional placement: its start becomes the destination
// track's current end. An incompatible destination is a silent no-op. The
// source track is recompacted.
func MoveAcrossTracks(doc *document.Document, clipID, destTrackID string) {
	source, idx, ok := FindClip(doc, clipID)
	if !ok {
		return
	}

	var dest *document.Track
	for ti := range doc.Tracks {
		if doc.Tracks[ti].ID == destTrackID {
			dest = &doc.Tracks[ti]
			break
		}
	}
	if dest == nil || dest.ID == source.ID {
		return
	}

	clip := source.Clips[idx]
	if !dest.Type.Accepts(clip.Type) {
		return
	}

	source.Clips = Compact(append(source.Clips[:idx:idx], source.Clips[idx+1:]...))

	clip.StartFrame = TrackEnd(*dest)
	dest.Clips = append(dest.Clips, clip)
}

// ResizeClip applies a resize request: duration clamps to the minimum, scale
// to its range, position so the scaled box stays inside the composition.
// Only a duration change recompacts the owning track, since only duration
// shifts subsequent siblings. Transform-only resizes must leave StartFrames
// alone or they would erase the gaps positional placement preserves.
func ResizeClip(doc *document.Document, req ResizeRequest) {
	track, idx, ok := FindClip(doc, req.ClipID)
	if !ok {
		return
	}

	c := track.Clips[idx]
	oldDuration := c.DurationInFrames
	if req.Duration > 0 {
		c.DurationInFrames = req.Duration
	}
	if c.DurationInFrames < document.MinDurationInFrames {
		c.DurationInFrames = document.MinDurationInFrames
	}
	if req.ScaleX != nil {
		c.ScaleX = geometry.ClampScale(*req.ScaleX)
	}
	if req.ScaleY != nil {
		c.ScaleY = geometry.ClampScale(*req.ScaleY)
	}

	dispW, dispH := geometry.DisplayedMediaSize(c.NativeWidth, c.NativeHeight)
	if req.X != nil {
		c.X = geometry.ClampPosition(*req.X, geometry.CompositionWidth, dispW*c.ScaleX)
	}
	if req.Y != nil {
		c.Y = geometry.ClampPosition(*req.Y, geometry.CompositionHeight, dispH*c.ScaleY)
	}

	track.Clips[idx] = c
	if c.DurationInFrames != oldDuration {
		track.Clips = Compact(track.Clips)
	}
}

// DeleteClip removes a clip and recompacts its siblings. Returns whether a
// clip was removed.
func DeleteClip(doc *document.Document, clipID string) bool {
	track, idx, ok := FindClip(doc, clipID)
	if !ok {
		return false
	}
	track.Clips = Compact(append(track.Clips[:idx:idx], track.Clips[idx+1:]...))
	return true
}

// TotalFrames is the composition length: the furthest clip end across all
// tracks, floored at MinTimelineFrames.
func TotalFrames(doc *document.Document) int {
	total := MinTimelineFrames
	for ti := range doc.Tracks {
		if end := TrackEnd(doc.Tracks[ti]); end > total {
			total = end
		}
	}
	return total
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
