package timeline

import (
	"testing"

	"github.com/framecut/framecut/backend-go/internal/document"
)

func imageClip(id string, duration int) document.Clip {
	return document.Clip{
		ID: id, Type: document.ClipTypeImage, Name: id, Src: id + ".png",
		DurationInFrames: duration,
		ScaleX:           1, ScaleY: 1,
		NativeWidth: 1280, NativeHeight: 720,
	}
}

func audioClip(id string, duration int) document.Clip {
	return document.Clip{
		ID: id, Type: document.ClipTypeAudio, Name: id, Src: id + ".mp3",
		DurationInFrames: duration,
		ScaleX:           1, ScaleY: 1,
	}
}

func testDoc(tracks ...document.Track) *document.Document {
	return &document.Document{
		Project: document.Project{ID: "proj_test", FPS: 30, Width: 1280, Height: 720},
		Tracks:  tracks,
	}
}

func starts(t document.Track) []int {
	out := make([]int, len(t.Clips))
	for i, c := range t.Clips {
		out[i] = c.StartFrame
	}
	return out
}

func TestCompact(t *testing.T) {
	clips := []document.Clip{
		imageClip("a", 60),
		imageClip("b", 30),
		imageClip("c", 90),
	}
	// Scatter the starts to prove they get recomputed.
	clips[0].StartFrame = 500
	clips[1].StartFrame = 2
	clips[2].StartFrame = 77

	got := Compact(clips)
	wantStarts := []int{0, 60, 90}
	for i, c := range got {
		if c.StartFrame != wantStarts[i] {
			t.Errorf("clip %d StartFrame = %d, want %d", i, c.StartFrame, wantStarts[i])
		}
	}

	// Input slice is untouched.
	if clips[0].StartFrame != 500 {
		t.Errorf("Compact mutated its input")
	}
}

func TestTrackEndUsesTimeNotOrder(t *testing.T) {
	// Positional placement can leave clips out of sequence order.
	early := imageClip("early", 30)
	early.StartFrame = 100
	late := imageClip("late", 30)
	late.StartFrame = 0
	track := document.Track{ID: "track_1", Type: document.TrackTypeVideo, Clips: []document.Clip{early, late}}

	if got := TrackEnd(track); got != 130 {
		t.Errorf("TrackEnd = %d, want 130", got)
	}
}

func TestTotalFrames(t *testing.T) {
	t.Run("empty document floors at minimum", func(t *testing.T) {
		doc := testDoc(document.Track{ID: "track_v", Type: document.TrackTypeVideo})
		if got := TotalFrames(doc); got != MinTimelineFrames {
			t.Errorf("TotalFrames = %d, want %d", got, MinTimelineFrames)
		}
	})

	t.Run("longest track wins", func(t *testing.T) {
		doc := testDoc(
			document.Track{ID: "track_v", Type: document.TrackTypeVideo,
				Clips: Compact([]document.Clip{imageClip("a", 60), imageClip("b", 30)})},
			document.Track{ID: "track_a", Type: document.TrackTypeAudio,
				Clips: Compact([]document.Clip{audioClip("m", 250)})},
		)
		if got := TotalFrames(doc); got != 250 {
			t.Errorf("TotalFrames = %d, want 250", got)
		}
	})
}

func TestPlaceClip(t *testing.T) {
	t.Run("compaction derives start from siblings", func(t *testing.T) {
		doc := testDoc(document.Track{ID: "track_v", Type: document.TrackTypeVideo,
			Clips: Compact([]document.Clip{imageClip("a", 60), imageClip("b", 30)})})

		PlaceClip(doc, imageClip("c", 45), "track_v", "", PlacementCompact)

		got := starts(doc.Tracks[0])
		want := []int{0, 60, 90}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("starts = %v, want %v", got, want)
			}
		}
	})

	t.Run("incompatible target is a no-op", func(t *testing.T) {
		doc := testDoc(document.Track{ID: "track_v", Type: document.TrackTypeVideo})

		PlaceClip(doc, audioClip("m", 100), "track_v", "", PlacementCompact)

		if len(doc.Tracks[0].Clips) != 0 {
			t.Errorf("audio clip landed on a video track")
		}
	})

	t.Run("no target picks first compatible track", func(t *testing.T) {
		doc := testDoc(
			document.Track{ID: "track_a", Type: document.TrackTypeAudio},
			document.Track{ID: "track_v1", Type: document.TrackTypeVideo},
			document.Track{ID: "track_v2", Type: document.TrackTypeVideo},
		)

		PlaceClip(doc, imageClip("a", 60), "", "", PlacementCompact)

		if len(doc.Tracks[1].Clips) != 1 {
			t.Errorf("clip did not land on first video track")
		}
	})

	t.Run("creates a track when none is compatible", func(t *testing.T) {
		doc := testDoc(document.Track{ID: "track_v", Type: document.TrackTypeVideo})

		PlaceClip(doc, audioClip("m", 100), "", "track_new", PlacementCompact)

		if len(doc.Tracks) != 2 {
			t.Fatalf("track count = %d, want 2", len(doc.Tracks))
		}
		created := doc.Tracks[1]
		if created.ID != "track_new" || created.Type != document.TrackTypeAudio {
			t.Errorf("created track = %+v", created)
		}
		if len(created.Clips) != 1 || created.Clips[0].StartFrame != 0 {
			t.Errorf("clip on created track = %+v", created.Clips)
		}
	})

	t.Run("positional placement appends at track end", func(t *testing.T) {
		existing := imageClip("a", 60)
		existing.StartFrame = 40 // gap before it
		doc := testDoc(document.Track{ID: "track_v", Type: document.TrackTypeVideo,
			Clips: []document.Clip{existing}})

		PlaceClip(doc, imageClip("b", 30), "track_v", "", PlacementPositional)

		placed := doc.Tracks[0].Clips[1]
		if placed.StartFrame != 100 {
			t.Errorf("StartFrame = %d, want 100", placed.StartFrame)
		}
		// The existing clip's gap is preserved.
		if doc.Tracks[0].Clips[0].StartFrame != 40 {
			t.Errorf("positional placement recompacted the track")
		}
	})
}

func TestReorderWithinTrack(t *testing.T) {
	newTrack := func() document.Track {
		return document.Track{ID: "track_v", Type: document.TrackTypeVideo,
			Clips: Compact([]document.Clip{imageClip("a", 60), imageClip("b", 30), imageClip("c", 45)})}
	}

	tests := []struct {
		name     string
		from, to int
		wantIDs  []string
	}{
		{"forward", 0, 2, []string{"b", "c", "a"}},
		{"backward", 2, 0, []string{"c", "a", "b"}},
		{"same index", 1, 1, []string{"a", "b", "c"}},
		{"out of range clamps", -5, 99, []string{"b", "c", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track := newTrack()
			ReorderWithinTrack(&track, tt.from, tt.to)

			start := 0
			for i, c := range track.Clips {
				if c.ID != tt.wantIDs[i] {
					t.Fatalf("order = %v, want %v", trackIDs(track), tt.wantIDs)
				}
				if c.StartFrame != start {
					t.Errorf("clip %s StartFrame = %d, want %d", c.ID, c.StartFrame, start)
				}
				start += c.DurationInFrames
			}
		})
	}
}

func trackIDs(t document.Track) []string {
	out := make([]string, len(t.Clips))
	for i, c := range t.Clips {
		out[i] = c.ID
	}
	return out
}

func TestMoveAcrossTracks(t *testing.T) {
	t.Run("moves with positional placement and recompacts source", func(t *testing.T) {
		doc := testDoc(
			document.Track{ID: "track_v1", Type: document.TrackTypeVideo,
				Clips: Compact([]document.Clip{imageClip("a", 60), imageClip("b", 30), imageClip("c", 45)})},
			document.Track{ID: "track_v2", Type: document.TrackTypeVideo,
				Clips: Compact([]document.Clip{imageClip("d", 100)})},
		)

		MoveAcrossTracks(doc, "b", "track_v2")

		// Source closed the gap.
		src := doc.Tracks[0]
		if len(src.Clips) != 2 || src.Clips[1].ID != "c" || src.Clips[1].StartFrame != 60 {
			t.Errorf("source after move = %+v", src.Clips)
		}

		// Moved clip starts at the destination's end.
		dst := doc.Tracks[1]
		if len(dst.Clips) != 2 || dst.Clips[1].ID != "b" || dst.Clips[1].StartFrame != 100 {
			t.Errorf("destination after move = %+v", dst.Clips)
		}
	})

	t.Run("incompatible destination is a no-op", func(t *testing.T) {
		doc := testDoc(
			document.Track{ID: "track_v", Type: document.TrackTypeVideo,
				Clips: Compact([]document.Clip{imageClip("a", 60)})},
			document.Track{ID: "track_a", Type: document.TrackTypeAudio},
		)

		MoveAcrossTracks(doc, "a", "track_a")

		if len(doc.Tracks[0].Clips) != 1 || len(doc.Tracks[1].Clips) != 0 {
			t.Errorf("incompatible move changed the document")
		}
	})

	t.Run("same track is a no-op", func(t *testing.T) {
		doc := testDoc(document.Track{ID: "track_v", Type: document.TrackTypeVideo,
			Clips: Compact([]document.Clip{imageClip("a", 60), imageClip("b", 30)})})

		MoveAcrossTracks(doc, "a", "track_v")

		if got := trackIDs(doc.Tracks[0]); got[0] != "a" || got[1] != "b" {
			t.Errorf("same-track move changed order: %v", got)
		}
	})
}

func TestResizeClip(t *testing.T) {
	t.Run("duration clamps to minimum and shifts siblings", func(t *testing.T) {
		doc := testDoc(document.Track{ID: "track_v", Type: document.TrackTypeVideo,
			Clips: Compact([]document.Clip{imageClip("a", 60), imageClip("b", 30)})})

		ResizeClip(doc, ResizeRequest{ClipID: "a", Duration: 10})
		if doc.Tracks[0].Clips[1].StartFrame != 10 {
			t.Errorf("sibling StartFrame = %d, want 10", doc.Tracks[0].Clips[1].StartFrame)
		}

		// Duration of 0 means "leave alone"; only explicit positives apply.
		ResizeClip(doc, ResizeRequest{ClipID: "a", Duration: 0})
		if doc.Tracks[0].Clips[0].DurationInFrames != 10 {
			t.Errorf("zero duration request changed duration")
		}
	})

	t.Run("scale clamps to range", func(t *testing.T) {
		doc := testDoc(document.Track{ID: "track_v", Type: document.TrackTypeVideo,
			Clips: Compact([]document.Clip{imageClip("a", 60)})})

		sx, sy := 10.0, 0.01
		ResizeClip(doc, ResizeRequest{ClipID: "a", ScaleX: &sx, ScaleY: &sy})

		c := doc.Tracks[0].Clips[0]
		if c.ScaleX != document.MaxScale || c.ScaleY != document.MinScale {
			t.Errorf("scales = (%v, %v), want (%v, %v)", c.ScaleX, c.ScaleY, document.MaxScale, document.MinScale)
		}
	})

	t.Run("position clamps against the scaled box", func(t *testing.T) {
		doc := testDoc(document.Track{ID: "track_v", Type: document.TrackTypeVideo,
			Clips: Compact([]document.Clip{imageClip("a", 60)})})

		// Shrink first so there is room to move: 1280x720 at 0.5 leaves ±320/±180.
		half := 0.5
		x, y := 9999.0, -9999.0
		ResizeClip(doc, ResizeRequest{ClipID: "a", ScaleX: &half, ScaleY: &half, X: &x, Y: &y})

		c := doc.Tracks[0].Clips[0]
		if c.X != 320 || c.Y != -180 {
			t.Errorf("position = (%v, %v), want (320, -180)", c.X, c.Y)
		}
	})

	t.Run("transform-only resize preserves positional gaps", func(t *testing.T) {
		// "b" sits at frame 200, well past "a"'s end: the kind of gap
		// positional placement leaves behind.
		gapped := imageClip("b", 30)
		gapped.StartFrame = 200
		doc := testDoc(document.Track{ID: "track_v", Type: document.TrackTypeVideo,
			Clips: append(Compact([]document.Clip{imageClip("a", 60)}), gapped)})

		x := 50.0
		ResizeClip(doc, ResizeRequest{ClipID: "a", X: &x})
		half := 0.5
		ResizeClip(doc, ResizeRequest{ClipID: "a", ScaleX: &half, ScaleY: &half})

		if got := doc.Tracks[0].Clips[1].StartFrame; got != 200 {
			t.Fatalf("positional sibling StartFrame = %d, want 200", got)
		}

		// A duration change is the one resize that shifts siblings.
		ResizeClip(doc, ResizeRequest{ClipID: "a", Duration: 45})
		if got := doc.Tracks[0].Clips[1].StartFrame; got != 45 {
			t.Errorf("sibling StartFrame after duration change = %d, want 45", got)
		}
	})

	t.Run("unchanged duration does not recompact", func(t *testing.T) {
		gapped := imageClip("b", 30)
		gapped.StartFrame = 200
		doc := testDoc(document.Track{ID: "track_v", Type: document.TrackTypeVideo,
			Clips: append(Compact([]document.Clip{imageClip("a", 60)}), gapped)})

		// Resubmitting the current duration is not a change.
		ResizeClip(doc, ResizeRequest{ClipID: "a", Duration: 60})
		if got := doc.Tracks[0].Clips[1].StartFrame; got != 200 {
			t.Errorf("positional sibling StartFrame = %d, want 200", got)
		}
	})

	t.Run("unknown clip is a no-op", func(t *testing.T) {
		doc := testDoc(document.Track{ID: "track_v", Type: document.TrackTypeVideo})
		ResizeClip(doc, ResizeRequest{ClipID: "nope", Duration: 10})
	})
}

func TestDeleteClip(t *testing.T) {
	doc := testDoc(document.Track{ID: "track_v", Type: document.TrackTypeVideo,
		Clips: Compact([]document.Clip{imageClip("a", 60), imageClip("b", 30), imageClip("c", 45)})})

	if !DeleteClip(doc, "b") {
		t.Fatal("DeleteClip returned false for an existing clip")
	}

	track := doc.Tracks[0]
	if len(track.Clips) != 2 {
		t.Fatalf("clip count = %d, want 2", len(track.Clips))
	}
	// Remaining clips close the gap.
	if track.Clips[1].ID != "c" || track.Clips[1].StartFrame != 60 {
		t.Errorf("after delete = %+v", track.Clips)
	}

	if DeleteClip(doc, "b") {
		t.Error("DeleteClip returned true for a missing clip")
	}
}

func TestZIndex(t *testing.T) {
	// Track 0 stacks above track 1; later clips stack above earlier.
	tests := []struct {
		name                            string
		numTracks, trackIndex, clipIndex int
		want                            int
	}{
		{"top track first clip", 2, 0, 0, 1000},
		{"top track second clip", 2, 0, 1, 1001},
		{"bottom track first clip", 2, 1, 0, 0},
		{"single track", 1, 0, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ZIndex(tt.numTracks, tt.trackIndex, tt.clipIndex); got != tt.want {
				t.Errorf("ZIndex = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestVisibleClips(t *testing.T) {
	broken := imageClip("broken", 60)
	broken.Src = ""

	doc := testDoc(
		document.Track{ID: "track_top", Type: document.TrackTypeVideo,
			Clips: Compact([]document.Clip{imageClip("top_a", 60), broken})},
		document.Track{ID: "track_bottom", Type: document.TrackTypeVideo,
			Clips: Compact([]document.Clip{imageClip("bot_a", 30)})},
	)

	t.Run("painter order back to front", func(t *testing.T) {
		got := VisibleClips(doc, 10)
		if len(got) != 2 {
			t.Fatalf("visible count = %d, want 2", len(got))
		}
		if got[0].Clip.ID != "bot_a" || got[1].Clip.ID != "top_a" {
			t.Errorf("order = [%s, %s], want [bot_a, top_a]", got[0].Clip.ID, got[1].Clip.ID)
		}
		if got[0].Z >= got[1].Z {
			t.Errorf("z not ascending: %d, %d", got[0].Z, got[1].Z)
		}
	})

	t.Run("frame window excludes finished clips", func(t *testing.T) {
		got := VisibleClips(doc, 40)
		if len(got) != 1 || got[0].Clip.ID != "top_a" {
			t.Errorf("visible at 40 = %+v", got)
		}
	})

	t.Run("unrenderable clips excluded", func(t *testing.T) {
		// Frames 60-119 are inside the broken clip's window only.
		if got := VisibleClips(doc, 70); len(got) != 0 {
			t.Errorf("broken clip rendered: %+v", got)
		}
	})

	t.Run("topmost first reverses", func(t *testing.T) {
		got := ClipsTopmostFirst(doc, 10)
		if len(got) != 2 || got[0].ID != "top_a" {
			t.Errorf("topmost first = %+v", got)
		}
	})
}
