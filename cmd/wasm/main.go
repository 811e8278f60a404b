//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/framecut/framecut/backend-go/internal/document"
	"github.com/framecut/framecut/backend-go/internal/engine"
	"github.com/framecut/framecut/backend-go/internal/gesture"
	"github.com/framecut/framecut/backend-go/internal/timeline"
	"github.com/framecut/framecut/backend-go/internal/typeid"
)

var (
	eng *engine.Engine

	// At most one of each gesture is active at a time; pointer capture on
	// the frontend guarantees events arrive for a single gesture only.
	drag   *gesture.DragController
	resize *gesture.ResizeController
	scrub  *gesture.ScrubController
)

func main() {
	eng = engine.NewEngine()

	// Create the engine API object
	fcEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	fcEngine.Set("loadDocument", js.FuncOf(loadDocument))
	fcEngine.Set("updateDocument", js.FuncOf(updateDocument))
	fcEngine.Set("setViewport", js.FuncOf(setViewport))
	fcEngine.Set("setPlayhead", js.FuncOf(setPlayhead))
	fcEngine.Set("play", js.FuncOf(play))
	fcEngine.Set("pause", js.FuncOf(pause))
	fcEngine.Set("togglePlay", js.FuncOf(togglePlay))
	fcEngine.Set("setSelection", js.FuncOf(setSelection))
	fcEngine.Set("deleteClip", js.FuncOf(deleteClip))
	fcEngine.Set("handleDrop", js.FuncOf(handleDrop))
	fcEngine.Set("tick", js.FuncOf(tick))

	// --- Gestures ---
	fcEngine.Set("beginDrag", js.FuncOf(beginDrag))
	fcEngine.Set("moveDrag", js.FuncOf(moveDrag))
	fcEngine.Set("endDrag", js.FuncOf(endDrag))
	fcEngine.Set("cancelDrag", js.FuncOf(cancelDrag))

	fcEngine.Set("beginResize", js.FuncOf(beginResize))
	fcEngine.Set("moveResize", js.FuncOf(moveResize))
	fcEngine.Set("endResize", js.FuncOf(endResize))
	fcEngine.Set("cancelResize", js.FuncOf(cancelResize))

	fcEngine.Set("beginScrub", js.FuncOf(beginScrub))
	fcEngine.Set("moveScrub", js.FuncOf(moveScrub))
	fcEngine.Set("endScrub", js.FuncOf(endScrub))
	fcEngine.Set("cancelScrub", js.FuncOf(cancelScrub))

	// --- Queries (frontend ← backend) ---
	fcEngine.Set("render", js.FuncOf(render))
	fcEngine.Set("hitTest", js.FuncOf(hitTest))
	fcEngine.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	fcEngine.Set("getPlaybackState", js.FuncOf(getPlaybackState))
	fcEngine.Set("getDocument", js.FuncOf(getDocument))
	fcEngine.Set("getSelection", js.FuncOf(getSelection))
	fcEngine.Set("getFrame", js.FuncOf(getFrame))
	fcEngine.Set("isPlaying", js.FuncOf(isPlaying))
	fcEngine.Set("getFPS", js.FuncOf(getFPS))
	fcEngine.Set("getTotalFrames", js.FuncOf(getTotalFrames))

	// Register on global scope
	js.Global().Set("framecutEngine", fcEngine)

	// Signal that WASM is ready
	js.Global().Set("framecutWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Command Handlers ---

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing document JSON"})
	}

	jsonData := args[0].String()
	if err := eng.LoadDocument(jsonData); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	return js.ValueOf(map[string]interface{}{"ok": true})
}

func updateDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing document JSON"})
	}

	jsonData := args[0].String()
	if err := eng.UpdateDocument(jsonData); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	return js.ValueOf(map[string]interface{}{"ok": true})
}

func setViewport(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.SetViewport(args[0].Float(), args[1].Float())
	return nil
}

func setPlayhead(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetPlayhead(args[0].Int())
	return nil
}

func play(this js.Value, args []js.Value) interface{} {
	eng.Play()
	return nil
}

func pause(this js.Value, args []js.Value) interface{} {
	eng.Pause()
	return nil
}

func togglePlay(this js.Value, args []js.Value) interface{} {
	eng.TogglePlay()
	return nil
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		eng.SetSelection(nil)
		return nil
	}

	arr := args[0]
	length := arr.Length()
	ids := make([]string, length)
	for i := 0; i < length; i++ {
		ids[i] = arr.Index(i).String()
	}
	eng.SetSelection(ids)
	return nil
}

func deleteClip(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.DeleteClip(args[0].String())
	return nil
}

// handleDrop takes a JSON drop event:
//
//	{"kind": 0, "clip": {...}, "clipId": "...", "trackId": "...", "targetClipId": "..."}
func handleDrop(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || eng.Document() == nil {
		return js.ValueOf(map[string]interface{}{"error": "no document"})
	}

	var raw struct {
		Kind         int             `json:"kind"`
		Clip         json.RawMessage `json:"clip"`
		ClipID       string          `json:"clipId"`
		TrackID      string          `json:"trackId"`
		TargetClipID string          `json:"targetClipId"`
	}
	if err := json.Unmarshal([]byte(args[0].String()), &raw); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	ev := gesture.DropEvent{
		Kind:         gesture.DropKind(raw.Kind),
		ClipID:       raw.ClipID,
		TrackID:      raw.TrackID,
		TargetClipID: raw.TargetClipID,
	}
	if len(raw.Clip) > 0 {
		var clip document.Clip
		if err := json.Unmarshal(raw.Clip, &clip); err != nil {
			return js.ValueOf(map[string]interface{}{"error": err.Error()})
		}
		ev.Clip = clip
	}

	gesture.HandleDrop(eng.Document(), ev, typeid.NewTrackID())
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func tick(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Tick())
}

// --- Gesture Handlers ---

func beginDrag(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 || eng.Document() == nil {
		return nil
	}
	track, idx, ok := timeline.FindClip(eng.Document(), args[0].String())
	if !ok {
		return nil
	}
	drag = gesture.NewDragController(track.Clips[idx], eng.Viewport(), args[1].Float(), args[2].Float())
	return nil
}

func moveDrag(this js.Value, args []js.Value) interface{} {
	if drag == nil || len(args) < 2 {
		return nil
	}
	x, y, commit := drag.Move(args[0].Float(), args[1].Float())
	if commit {
		eng.ResizeClip(drag.Request())
	}
	return js.ValueOf(map[string]interface{}{"x": x, "y": y, "committed": commit})
}

func endDrag(this js.Value, args []js.Value) interface{} {
	if drag == nil || len(args) < 2 {
		return nil
	}
	eng.ResizeClip(drag.Release(args[0].Float(), args[1].Float()))
	drag = nil
	return nil
}

func cancelDrag(this js.Value, args []js.Value) interface{} {
	if drag != nil {
		drag.Cancel()
		drag = nil
	}
	return nil
}

func beginResize(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 || eng.Document() == nil {
		return nil
	}
	track, idx, ok := timeline.FindClip(eng.Document(), args[0].String())
	if !ok {
		return nil
	}
	handle := gesture.Handle(args[1].Int())
	resize = gesture.NewResizeController(track.Clips[idx], handle, eng.Viewport(), args[2].Float(), args[3].Float())
	return nil
}

func moveResize(this js.Value, args []js.Value) interface{} {
	if resize == nil || len(args) < 2 {
		return nil
	}
	req, ok := resize.Move(args[0].Float(), args[1].Float())
	if ok {
		eng.ResizeClip(req)
	}
	return nil
}

func endResize(this js.Value, args []js.Value) interface{} {
	if resize != nil {
		resize.Release()
		resize = nil
	}
	return nil
}

func cancelResize(this js.Value, args []js.Value) interface{} {
	if resize != nil {
		resize.Cancel()
		resize = nil
	}
	return nil
}

func beginScrub(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	scrub = gesture.NewScrubController(args[0].Float(), eng.GetFPS(), eng.TotalFrames(), args[1].Float())
	return nil
}

func moveScrub(this js.Value, args []js.Value) interface{} {
	if scrub == nil || len(args) < 1 {
		return nil
	}
	frame, seek := scrub.Move(args[0].Float())
	if seek {
		eng.SetPlayhead(frame)
	}
	return js.ValueOf(frame)
}

func endScrub(this js.Value, args []js.Value) interface{} {
	if scrub == nil || len(args) < 1 {
		return nil
	}
	eng.SetPlayhead(scrub.Release(args[0].Float()))
	scrub = nil
	return nil
}

func cancelScrub(this js.Value, args []js.Value) interface{} {
	if scrub != nil {
		scrub.Cancel()
		scrub = nil
	}
	return nil
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Render())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(eng.HitTest(args[0].Float(), args[1].Float()))
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSelectionBounds())
}

func getPlaybackState(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetPlaybackState())
}

func getDocument(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetDocument())
}

func getSelection(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSelection())
}

func getFrame(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetFrame())
}

func isPlaying(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.IsPlaying())
}

func getFPS(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetFPS())
}

func getTotalFrames(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.TotalFrames())
}
