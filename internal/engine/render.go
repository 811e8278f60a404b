package engine

import (
	"encoding/json"

	"github.com/framecut/framecut/backend-go/internal/geometry"
	"github.com/framecut/framecut/backend-go/internal/timeline"
)

// RenderCommand describes one clip for the preview renderer to draw. The
// frontend receives the list in painter's order (ascending z, back to
// front) and composites each clip at the given composition-space box.
type RenderCommand struct {
	ClipID string  `json:"clipId"`
	Type   string  `json:"type"`
	Src    string  `json:"src,omitempty"`
	Text   string  `json:"text,omitempty"`
	Z      int     `json:"z"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CompileRenderCommands lists the clips visible at the current frame in
// painter's order, with their displayed bounding boxes resolved.
func (e *Engine) CompileRenderCommands() []RenderCommand {
	if e.doc == nil {
		return nil
	}

	visible := timeline.VisibleClips(e.doc, e.frame)
	commands := make([]RenderCommand, 0, len(visible))
	for _, s := range visible {
		box := geometry.ClipBoundingBox(s.Clip)
		commands = append(commands, RenderCommand{
			ClipID: s.Clip.ID,
			Type:   string(s.Clip.Type),
			Src:    s.Clip.Src,
			Text:   s.Clip.Text,
			Z:      s.Z,
			Left:   box.X,
			Top:    box.Y,
			Width:  box.Width,
			Height: box.Height,
		})
	}
	return commands
}

// Render evaluates the current frame and returns render commands as JSON.
func (e *Engine) Render() string {
	commands := e.CompileRenderCommands()
	if len(commands) == 0 {
		return "[]"
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]"
	}
	return string(data)
}
