package gesture

import (
	"github.com/framecut/framecut/backend-go/internal/document"
	"github.com/framecut/framecut/backend-go/internal/timeline"
)

// DropKind classifies what was dropped onto what.
type DropKind int

const (
	// DropAssetOnTrack places a new clip from the library onto a track
	// (compaction placement).
	DropAssetOnTrack DropKind = iota
	// DropClipOnClip reorders within a track: the dragged clip takes the
	// target clip's position.
	DropClipOnClip
	// DropClipOnTrack moves an existing clip to another track (positional
	// placement).
	DropClipOnTrack
)

// DropEvent describes a completed drag-and-drop.
type DropEvent struct {
	Kind DropKind

	// For DropAssetOnTrack: the clip built from the library asset.
	Clip document.Clip

	// For clip drops: the dragged clip.
	ClipID string

	// Target track (DropAssetOnTrack, DropClipOnTrack); empty means first
	// compatible track.
	TrackID string

	// For DropClipOnClip: the clip whose position the drag lands on.
	TargetClipID string
}

// HandleDrop dispatches a drop to the arrangement operations. newTrackID is
// consumed only when a library drop needs a fresh track. Incompatible drops
// are silent no-ops, matching the placement rules.
func HandleDrop(doc *document.Document, ev DropEvent, newTrackID string) {
	switch ev.Kind {
	case DropAssetOnTrack:
		timeline.PlaceClip(doc, ev.Clip, ev.TrackID, newTrackID, timeline.PlacementCompact)

	case DropClipOnClip:
		track, from, ok := timeline.FindClip(doc, ev.ClipID)
		if !ok {
			return
		}
		targetTrack, to, ok := timeline.FindClip(doc, ev.TargetClipID)
		if !ok || targetTrack.ID != track.ID {
			return
		}
		timeline.ReorderWithinTrack(track, from, to)

	case DropClipOnTrack:
		timeline.MoveAcrossTracks(doc, ev.ClipID, ev.TrackID)
	}
}
