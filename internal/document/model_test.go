package document

import "testing"

func TestTrackTypeAccepts(t *testing.T) {
	tests := []struct {
		track TrackType
		clip  ClipType
		want  bool
	}{
		{TrackTypeVideo, ClipTypeImage, true},
		{TrackTypeVideo, ClipTypeVideo, true},
		{TrackTypeVideo, ClipTypeAudio, false},
		{TrackTypeVideo, ClipTypeText, false},
		{TrackTypeAudio, ClipTypeAudio, true},
		{TrackTypeAudio, ClipTypeVideo, false},
		{TrackTypeText, ClipTypeText, true},
		{TrackTypeText, ClipTypeImage, false},
	}

	for _, tt := range tests {
		if got := tt.track.Accepts(tt.clip); got != tt.want {
			t.Errorf("%s.Accepts(%s) = %v, want %v", tt.track, tt.clip, got, tt.want)
		}
	}
}

func TestTrackTypeFor(t *testing.T) {
	if got := TrackTypeFor(ClipTypeImage); got != TrackTypeVideo {
		t.Errorf("image family = %s, want video", got)
	}
	if got := TrackTypeFor(ClipTypeAudio); got != TrackTypeAudio {
		t.Errorf("audio family = %s, want audio", got)
	}
	if got := TrackTypeFor(ClipTypeText); got != TrackTypeText {
		t.Errorf("text family = %s, want text", got)
	}
}

func TestRenderable(t *testing.T) {
	if (Clip{Type: ClipTypeImage}).Renderable() {
		t.Error("image without src should not be renderable")
	}
	if !(Clip{Type: ClipTypeImage, Src: "a.png"}).Renderable() {
		t.Error("image with src should be renderable")
	}
	if (Clip{Type: ClipTypeText}).Renderable() {
		t.Error("text without content should not be renderable")
	}
	if !(Clip{Type: ClipTypeText, Text: "hi"}).Renderable() {
		t.Error("text with content should be renderable")
	}
}

func TestVisibleAt(t *testing.T) {
	c := Clip{Type: ClipTypeImage, Src: "a.png", StartFrame: 30, DurationInFrames: 60}

	tests := []struct {
		name  string
		frame int
		want  bool
	}{
		{"before", 29, false},
		{"first frame", 30, true},
		{"last frame", 89, true},
		{"end is exclusive", 90, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.VisibleAt(tt.frame); got != tt.want {
				t.Errorf("VisibleAt(%d) = %v, want %v", tt.frame, got, tt.want)
			}
		})
	}
}

func TestClipConstructors(t *testing.T) {
	t.Run("image defaults", func(t *testing.T) {
		c := NewImageClip("clip_1", "pic", "pic.png", 800, 600)
		if c.DurationInFrames != DefaultStillDuration {
			t.Errorf("duration = %d, want %d", c.DurationInFrames, DefaultStillDuration)
		}
		if c.ScaleX != 1 || c.ScaleY != 1 || c.X != 0 || c.Y != 0 {
			t.Errorf("transform not identity: %+v", c)
		}
	})

	t.Run("video falls back without a probed duration", func(t *testing.T) {
		c := NewVideoClip("clip_2", "vid", "vid.mp4", 0, 1920, 1080)
		if c.DurationInFrames != DefaultMediaDuration {
			t.Errorf("duration = %d, want %d", c.DurationInFrames, DefaultMediaDuration)
		}
		c = NewVideoClip("clip_3", "vid", "vid.mp4", 142, 1920, 1080)
		if c.DurationInFrames != 142 {
			t.Errorf("probed duration = %d, want 142", c.DurationInFrames)
		}
	})

	t.Run("audio falls back without a probed duration", func(t *testing.T) {
		c := NewAudioClip("clip_4", "song", "song.mp3", -1)
		if c.DurationInFrames != DefaultMediaDuration {
			t.Errorf("duration = %d, want %d", c.DurationInFrames, DefaultMediaDuration)
		}
	})

	t.Run("text uses the still duration", func(t *testing.T) {
		c := NewTextClip("clip_5", "title", "Hello")
		if c.DurationInFrames != DefaultStillDuration {
			t.Errorf("duration = %d, want %d", c.DurationInFrames, DefaultStillDuration)
		}
		if c.Text != "Hello" || c.Src != "" {
			t.Errorf("text clip variant fields: %+v", c)
		}
	})
}
