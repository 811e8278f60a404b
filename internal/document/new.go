package document

// NewEmptyDocument creates the document a fresh project starts from: one
// video track, one audio track and one text track, no clips, a 1280x720
// composition at 30fps.
func NewEmptyDocument(projectID, projectName, videoTrackID, audioTrackID, textTrackID string) *Document {
	return &Document{
		Project: Project{
			ID:      projectID,
			Name:    projectName,
			Version: 1,
			FPS:     30,
			Width:   1280,
			Height:  720,
		},
		Tracks: []Track{
			{ID: videoTrackID, Type: TrackTypeVideo, Name: "Video 1", Clips: []Clip{}},
			{ID: audioTrackID, Type: TrackTypeAudio, Name: "Audio 1", Clips: []Clip{}},
			{ID: textTrackID, Type: TrackTypeText, Name: "Text 1", Clips: []Clip{}},
		},
		Assets: map[string]Asset{},
	}
}
