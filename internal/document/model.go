package document

type ClipType string

const (
	ClipTypeImage ClipType = "image"
	ClipTypeVideo ClipType = "video"
	ClipTypeText  ClipType = "text"
	ClipTypeAudio ClipType = "audio"
)

type TrackType string

const (
	// TrackTypeVideo holds both image and video clips.
	TrackTypeVideo TrackType = "video"
	TrackTypeAudio TrackType = "audio"
	TrackTypeText  TrackType = "text"
)

const (
	// MinDurationInFrames is the floor every resize clamps to.
	MinDurationInFrames = 1

	// DefaultStillDuration is the provisional duration for images and text.
	DefaultStillDuration = 90

	// DefaultMediaDuration is the provisional duration for video and audio
	// while (or after a failed) metadata probe.
	DefaultMediaDuration = 300

	MinScale = 0.1
	MaxScale = 3.0
)

// Clip is a placed media or text element. Type is fixed at creation; the
// variant constructors below enforce which optional fields each type carries.
// StartFrame is derived — see the timeline package.
type Clip struct {
	ID   string   `json:"id"`
	Type ClipType `json:"type"`
	Name string   `json:"name"`

	// Src is set for image/video/audio clips, Text for text clips.
	Src  string `json:"src,omitempty"`
	Text string `json:"text,omitempty"`

	StartFrame       int `json:"startFrame"`
	DurationInFrames int `json:"durationInFrames"`

	ScaleX float64 `json:"scaleX"`
	ScaleY float64 `json:"scaleY"`

	// X/Y are the offset of the clip's visual center from the composition
	// center, in composition-space pixels. 0,0 is centered.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// Native media dimensions from the import probe; zero when unknown.
	NativeWidth  float64 `json:"nativeWidth,omitempty"`
	NativeHeight float64 `json:"nativeHeight,omitempty"`
}

type Track struct {
	ID   string    `json:"id"`
	Type TrackType `json:"type"`
	Name string    `json:"name"`

	// Clips is an ordered sequence. Under compaction the order fully
	// determines every clip's StartFrame; under positional placement order is
	// by StartFrame and gaps are preserved.
	Clips []Clip `json:"clips"`
}

type Project struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Version   int    `json:"version"`
	FPS       int    `json:"fps"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type Asset struct {
	ID               string  `json:"id"`
	Type             ClipType `json:"type"`
	Name             string  `json:"name"`
	URL              string  `json:"url"`
	DurationInFrames int     `json:"durationInFrames,omitempty"`
	NativeWidth      float64 `json:"nativeWidth,omitempty"`
	NativeHeight     float64 `json:"nativeHeight,omitempty"`
}

type Document struct {
	Project Project          `json:"project"`
	Tracks  []Track          `json:"tracks"`
	Assets  map[string]Asset `json:"assets"`
}

// Accepts reports whether a clip of the given type may be placed on this
// track type. Image and video clips share the video track family.
func (t TrackType) Accepts(c ClipType) bool {
	switch t {
	case TrackTypeVideo:
		return c == ClipTypeImage || c == ClipTypeVideo
	case TrackTypeAudio:
		return c == ClipTypeAudio
	case TrackTypeText:
		return c == ClipTypeText
	}
	return false
}

// TrackTypeFor returns the track family a clip type belongs to.
func TrackTypeFor(c ClipType) TrackType {
	switch c {
	case ClipTypeAudio:
		return TrackTypeAudio
	case ClipTypeText:
		return TrackTypeText
	default:
		return TrackTypeVideo
	}
}

// Renderable reports whether the clip has the fields it needs to render.
// A clip that fails this check stays in the document (so the user can fix
// it) but is skipped by rendering, visibility and hit testing.
func (c Clip) Renderable() bool {
	switch c.Type {
	case ClipTypeText:
		return c.Text != ""
	default:
		return c.Src != ""
	}
}

// VisibleAt reports whether the clip renders at the given frame.
func (c Clip) VisibleAt(frame int) bool {
	return c.Renderable() && frame >= c.StartFrame && frame < c.StartFrame+c.DurationInFrames
}

// EndFrame is the first frame after the clip.
func (c Clip) EndFrame() int {
	return c.StartFrame + c.DurationInFrames
}

func newClip(id string, clipType ClipType, name string, duration int) Clip {
	if duration < MinDurationInFrames {
		duration = MinDurationInFrames
	}
	return Clip{
		ID:               id,
		Type:             clipType,
		Name:             name,
		DurationInFrames: duration,
		ScaleX:           1,
		ScaleY:           1,
	}
}

// NewImageClip creates an image clip. nativeW/nativeH may be zero when the
// dimensions are not yet known.
func NewImageClip(id, name, src string, nativeW, nativeH float64) Clip {
	c := newClip(id, ClipTypeImage, name, DefaultStillDuration)
	c.Src = src
	c.NativeWidth = nativeW
	c.NativeHeight = nativeH
	return c
}

// NewVideoClip creates a video clip. duration <= 0 means the metadata probe
// has not resolved; the media fallback is used until it does.
func NewVideoClip(id, name, src string, duration int, nativeW, nativeH float64) Clip {
	if duration <= 0 {
		duration = DefaultMediaDuration
	}
	c := newClip(id, ClipTypeVideo, name, duration)
	c.Src = src
	c.NativeWidth = nativeW
	c.NativeHeight = nativeH
	return c
}

// NewAudioClip creates an audio clip, falling back to the media default
// duration when the probe has not resolved.
func NewAudioClip(id, name, src string, duration int) Clip {
	if duration <= 0 {
		duration = DefaultMediaDuration
	}
	c := newClip(id, ClipTypeAudio, name, duration)
	c.Src = src
	return c
}

// NewTextClip creates a text clip.
func NewTextClip(id, name, text string) Clip {
	c := newClip(id, ClipTypeText, name, DefaultStillDuration)
	c.Text = text
	return c
}
