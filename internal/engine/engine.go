package engine

import (
	"encoding/json"

	"github.com/framecut/framecut/backend-go/internal/document"
	"github.com/framecut/framecut/backend-go/internal/geometry"
	"github.com/framecut/framecut/backend-go/internal/timeline"
)

// Engine is the editor facade that owns the document and playback state.
// It processes commands from the frontend and returns query results.
type Engine struct {
	doc *document.Document

	// Playback state
	frame   int
	playing bool
	fps     int

	// On-screen preview box; pointer coordinates arrive in this space.
	viewport geometry.Viewport

	// Selection state (backend owns this)
	selection []string
}

// NewEngine creates a new engine instance.
func NewEngine() *Engine {
	return &Engine{fps: 30}
}

// --- Commands (frontend → backend) ---

// LoadDocument loads a document from JSON.
func (e *Engine) LoadDocument(jsonData string) error {
	var doc document.Document
	if err := json.Unmarshal([]byte(jsonData), &doc); err != nil {
		return err
	}

	e.doc = &doc
	e.fps = doc.Project.FPS
	if e.fps <= 0 {
		e.fps = 30
	}

	e.frame = 0
	e.playing = false
	e.selection = nil

	return nil
}

// UpdateDocument reloads a document from JSON while preserving playback
// state. Used when the document changes mid-session (e.g. a collab op).
func (e *Engine) UpdateDocument(jsonData string) error {
	var doc document.Document
	if err := json.Unmarshal([]byte(jsonData), &doc); err != nil {
		return err
	}

	e.doc = &doc
	e.fps = doc.Project.FPS
	if e.fps <= 0 {
		e.fps = 30
	}

	// Clamp frame to valid range (but don't reset it)
	e.SetPlayhead(e.frame)

	return nil
}

// SetViewport records the preview element's on-screen size.
func (e *Engine) SetViewport(width, height float64) {
	e.viewport = geometry.Viewport{Width: width, Height: height}
}

// Viewport returns the current preview viewport.
func (e *Engine) Viewport() geometry.Viewport {
	return e.viewport
}

// SetPlayhead sets the current frame, clamped to the timeline.
func (e *Engine) SetPlayhead(frame int) {
	total := e.TotalFrames()
	if frame >= total {
		frame = total - 1
	}
	if frame < 0 {
		frame = 0
	}
	e.frame = frame
}

// Play starts playback.
func (e *Engine) Play() {
	e.playing = true
}

// Pause stops playback.
func (e *Engine) Pause() {
	e.playing = false
}

// TogglePlay toggles play/pause state.
func (e *Engine) TogglePlay() {
	e.playing = !e.playing
}

// SetSelection sets the selected clip IDs.
func (e *Engine) SetSelection(ids []string) {
	e.selection = ids
}

// Tick advances the frame if playing and returns the render commands for
// the new frame. Called once per animation frame from the frontend.
func (e *Engine) Tick() string {
	if e.playing {
		e.frame = (e.frame + 1) % e.TotalFrames()
	}
	return e.Render()
}

// PlaceClip places a clip with compaction placement (library insert).
func (e *Engine) PlaceClip(clip document.Clip, targetTrackID, newTrackID string) {
	if e.doc == nil {
		return
	}
	timeline.PlaceClip(e.doc, clip, targetTrackID, newTrackID, timeline.PlacementCompact)
}

// ResizeClip applies a resize request to the document.
func (e *Engine) ResizeClip(req timeline.ResizeRequest) {
	if e.doc == nil {
		return
	}
	timeline.ResizeClip(e.doc, req)
}

// MoveClip moves a clip to another track (positional placement).
func (e *Engine) MoveClip(clipID, destTrackID string) {
	if e.doc == nil {
		return
	}
	timeline.MoveAcrossTracks(e.doc, clipID, destTrackID)
}

// ReorderClips reorders a clip within its track.
func (e *Engine) ReorderClips(trackID string, from, to int) {
	if e.doc == nil {
		return
	}
	for ti := range e.doc.Tracks {
		if e.doc.Tracks[ti].ID == trackID {
			timeline.ReorderWithinTrack(&e.doc.Tracks[ti], from, to)
			return
		}
	}
}

// DeleteClip removes a clip and drops it from the selection.
func (e *Engine) DeleteClip(clipID string) {
	if e.doc == nil {
		return
	}
	if !timeline.DeleteClip(e.doc, clipID) {
		return
	}
	kept := e.selection[:0]
	for _, id := range e.selection {
		if id != clipID {
			kept = append(kept, id)
		}
	}
	e.selection = kept
	e.SetPlayhead(e.frame)
}

// --- Queries (frontend ← backend) ---

// HitTest maps a viewport pixel position to the topmost clip under it at
// the current frame. Returns the clip ID or empty string.
func (e *Engine) HitTest(px, py float64) string {
	if e.doc == nil {
		return ""
	}
	cx, cy := e.viewport.ToComposition(px, py)
	return geometry.HitTest(cx, cy, timeline.ClipsTopmostFirst(e.doc, e.frame))
}

// GetSelectionBounds returns the union bounding box of the selection as
// JSON, in composition space.
func (e *Engine) GetSelectionBounds() string {
	bounds := geometry.Rect{}
	if e.doc != nil {
		for _, id := range e.selection {
			track, idx, ok := timeline.FindClip(e.doc, id)
			if !ok {
				continue
			}
			bounds = bounds.Union(geometry.ClipBoundingBox(track.Clips[idx]))
		}
	}
	data, _ := json.Marshal(map[string]float64{
		"x":      bounds.X,
		"y":      bounds.Y,
		"width":  bounds.Width,
		"height": bounds.Height,
	})
	return string(data)
}

// GetPlaybackState returns the current playback state as JSON.
func (e *Engine) GetPlaybackState() string {
	data, _ := json.Marshal(map[string]interface{}{
		"frame":       e.frame,
		"playing":     e.playing,
		"fps":         e.fps,
		"totalFrames": e.TotalFrames(),
	})
	return string(data)
}

// GetDocument returns the full document as JSON (for debugging/sync).
func (e *Engine) GetDocument() string {
	if e.doc == nil {
		return "{}"
	}
	data, _ := json.Marshal(e.doc)
	return string(data)
}

// Document returns the engine's document for direct inspection.
func (e *Engine) Document() *document.Document {
	return e.doc
}

// GetSelection returns the current selection as JSON.
func (e *Engine) GetSelection() string {
	data, _ := json.Marshal(e.selection)
	return string(data)
}

// GetFrame returns the current frame number.
func (e *Engine) GetFrame() int {
	return e.frame
}

// IsPlaying returns whether playback is active.
func (e *Engine) IsPlaying() bool {
	return e.playing
}

// GetFPS returns the frames per second.
func (e *Engine) GetFPS() int {
	return e.fps
}

// TotalFrames returns the composition length in frames.
func (e *Engine) TotalFrames() int {
	if e.doc == nil {
		return timeline.MinTimelineFrames
	}
	return timeline.TotalFrames(e.doc)
}
