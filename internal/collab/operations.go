package collab

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/framecut/framecut/backend-go/internal/document"
	"github.com/framecut/framecut/backend-go/internal/timeline"
	"github.com/framecut/framecut/backend-go/internal/typeid"
)

// DocumentState holds the authoritative document state for a room.
type DocumentState struct {
	mu        sync.RWMutex
	doc       *document.Document
	serverSeq int64
	dirty     bool
	opLog     []Operation // Operation history for persistence
}

// NewDocumentState creates a new document state from an initial document.
func NewDocumentState(doc *document.Document) *DocumentState {
	return &DocumentState{
		doc:   doc,
		opLog: make([]Operation, 0),
	}
}

// GetDocument returns the current document (caller should not mutate).
func (ds *DocumentState) GetDocument() *document.Document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.doc
}

// Dirty reports whether the document changed since the last MarkSaved.
func (ds *DocumentState) Dirty() bool {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.dirty
}

// MarkSaved clears the dirty flag after a successful snapshot.
func (ds *DocumentState) MarkSaved() {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.dirty = false
}

// ApplyOperation applies an operation to the document and returns the
// server sequence.
func (ds *DocumentState) ApplyOperation(op Operation) (int64, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if err := ds.applyOperationLocked(op); err != nil {
		return 0, err
	}

	ds.serverSeq++
	ds.dirty = true
	ds.opLog = append(ds.opLog, op)

	return ds.serverSeq, nil
}

// applyOperationLocked applies the operation without locking (caller must
// hold lock). The arrangement operations themselves never fail — invalid
// placements are no-ops and out-of-range values clamp — so errors here only
// mean the operation record itself was malformed.
func (ds *DocumentState) applyOperationLocked(op Operation) error {
	switch op.Type {
	case "clip.place":
		return ds.applyPlace(op)
	case "clip.resize", "clip.transform":
		return ds.applyResize(op)
	case "clip.reorder":
		return ds.applyReorder(op)
	case "clip.move":
		return ds.applyMove(op)
	case "clip.delete":
		return ds.applyDelete(op)
	case "track.create":
		return ds.applyTrackCreate(op)
	case "project.rename":
		ds.doc.Project.Name = op.Name
		return nil
	default:
		return fmt.Errorf("unknown operation type: %s", op.Type)
	}
}

func (ds *DocumentState) applyPlace(op Operation) error {
	var clip document.Clip
	if err := json.Unmarshal(op.Clip, &clip); err != nil {
		return fmt.Errorf("invalid clip: %w", err)
	}
	if clip.ID == "" {
		return fmt.Errorf("clip id is required")
	}
	if clip.DurationInFrames < document.MinDurationInFrames {
		clip.DurationInFrames = document.MinDurationInFrames
	}
	timeline.PlaceClip(ds.doc, clip, op.TargetTrackID, typeid.NewTrackID(), timeline.PlacementCompact)
	return nil
}

func (ds *DocumentState) applyResize(op Operation) error {
	if op.ClipID == "" {
		return fmt.Errorf("clip id is required")
	}
	req := timeline.ResizeRequest{
		ClipID: op.ClipID,
		ScaleX: op.ScaleX,
		ScaleY: op.ScaleY,
		X:      op.X,
		Y:      op.Y,
	}
	if op.Duration != nil {
		req.Duration = *op.Duration
	}
	timeline.ResizeClip(ds.doc, req)
	return nil
}

func (ds *DocumentState) applyReorder(op Operation) error {
	if op.FromIndex == nil || op.ToIndex == nil {
		return fmt.Errorf("reorder needs fromIndex and toIndex")
	}
	for ti := range ds.doc.Tracks {
		if ds.doc.Tracks[ti].ID == op.TrackID {
			timeline.ReorderWithinTrack(&ds.doc.Tracks[ti], *op.FromIndex, *op.ToIndex)
			return nil
		}
	}
	return fmt.Errorf("track not found: %s", op.TrackID)
}

func (ds *DocumentState) applyMove(op Operation) error {
	if op.ClipID == "" || op.DestTrackID == "" {
		return fmt.Errorf("move needs clipId and destTrackId")
	}
	timeline.MoveAcrossTracks(ds.doc, op.ClipID, op.DestTrackID)
	return nil
}

func (ds *DocumentState) applyDelete(op Operation) error {
	if op.ClipID == "" {
		return fmt.Errorf("clip id is required")
	}
	timeline.DeleteClip(ds.doc, op.ClipID)
	return nil
}

func (ds *DocumentState) applyTrackCreate(op Operation) error {
	trackType := document.TrackType(op.TrackType)
	switch trackType {
	case document.TrackTypeVideo, document.TrackTypeAudio, document.TrackTypeText:
	default:
		return fmt.Errorf("invalid track type: %s", op.TrackType)
	}
	name := op.Name
	if name == "" {
		name = op.TrackType
	}
	id := op.TrackID
	if id == "" {
		id = typeid.NewTrackID()
	}
	ds.doc.Tracks = append(ds.doc.Tracks, document.Track{
		ID:    id,
		Type:  trackType,
		Name:  name,
		Clips: []document.Clip{},
	})
	return nil
}

// GetServerTimestamp returns the current server timestamp.
func GetServerTimestamp() int64 {
	return time.Now().UnixMilli()
}
