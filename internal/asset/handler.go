package asset

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"github.com/framecut/framecut/backend-go/internal/document"
	"github.com/framecut/framecut/backend-go/internal/typeid"
)

const maxUploadSize = 200 << 20 // 200MB

// UploadResponse is returned from the upload endpoint. It is the shape the
// editor builds library clips from: type, src, native dimensions for
// image/video, duration in frames for video/audio. Probed=false means the
// duration is the provisional fallback.
type UploadResponse struct {
	ID               string  `json:"id"`
	URL              string  `json:"url"`
	Type             string  `json:"type"`
	Name             string  `json:"name"`
	NativeWidth      float64 `json:"nativeWidth,omitempty"`
	NativeHeight     float64 `json:"nativeHeight,omitempty"`
	DurationInFrames int     `json:"durationInFrames"`
	Probed           bool    `json:"probed"`
}

// Handler serves asset upload and retrieval endpoints.
type Handler struct {
	dir         string // directory to store asset files
	ffprobePath string
	fps         int
}

// NewHandler creates a new asset handler that stores files in dir.
func NewHandler(dir, ffprobePath string, fps int) *Handler {
	// Ensure directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		slog.Error("create asset dir", "error", err, "dir", dir)
	}
	if fps <= 0 {
		fps = 30
	}
	return &Handler{dir: dir, ffprobePath: ffprobePath, fps: fps}
}

// Upload handles POST /assets/upload (multipart form with "file" field).
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "file too large (max 200MB)", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	mediaType, ok := mediaTypeFor(contentType)
	if !ok {
		http.Error(w, "unsupported media type: "+contentType, http.StatusBadRequest)
		return
	}

	assetID := typeid.NewAssetID()
	filename := assetID + extensionFor(contentType, header.Filename)
	filePath := filepath.Join(h.dir, filename)

	out, err := os.Create(filePath)
	if err != nil {
		slog.Error("create asset file", "error", err)
		http.Error(w, "failed to save file", http.StatusInternalServerError)
		return
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		os.Remove(filePath)
		slog.Error("write asset file", "error", err)
		http.Error(w, "failed to save file", http.StatusInternalServerError)
		return
	}
	out.Close()

	resp := UploadResponse{
		ID:   assetID,
		URL:  fmt.Sprintf("/assets/%s", filename),
		Type: string(mediaType),
		Name: header.Filename,
	}

	switch mediaType {
	case document.ClipTypeImage:
		resp.DurationInFrames = document.DefaultStillDuration
		resp.Probed = true
		if w, hpx, err := imageDimensions(filePath); err == nil {
			resp.NativeWidth = float64(w)
			resp.NativeHeight = float64(hpx)
		} else {
			slog.Warn("probe image dimensions", "error", err, "asset", assetID)
		}

	case document.ClipTypeVideo, document.ClipTypeAudio:
		// Degrade to the fallback duration when the probe fails; the clip
		// stays usable and keeps the fallback permanently.
		resp.DurationInFrames = document.DefaultMediaDuration
		frames, err := ProbeDuration(r.Context(), h.ffprobePath, filePath, h.fps)
		if err != nil {
			slog.Warn("probe media duration", "error", err, "asset", assetID)
		} else {
			resp.DurationInFrames = frames
			resp.Probed = true
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// Serve returns an http.Handler that serves stored asset files with caching
// headers.
func (h *Handler) Serve() http.Handler {
	fs := http.FileServer(http.Dir(h.dir))
	return http.StripPrefix("/assets/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Asset IDs are unique, so files are immutable
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		fs.ServeHTTP(w, r)
	}))
}

// Delete handles DELETE /assets/{assetId}, removing the stored file. The
// lookup is by ID prefix since the extension was chosen at upload time.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	assetID := mux.Vars(r)["assetId"]
	if assetID == "" || assetID != filepath.Base(assetID) {
		http.Error(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	matches, err := filepath.Glob(filepath.Join(h.dir, assetID+".*"))
	if err != nil || len(matches) == 0 {
		http.Error(w, "asset not found", http.StatusNotFound)
		return
	}

	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			slog.Error("remove asset file", "error", err, "asset", assetID)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}

	slog.Info("asset deleted", "asset", assetID)
	w.WriteHeader(http.StatusNoContent)
}

func mediaTypeFor(contentType string) (document.ClipType, bool) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return document.ClipTypeImage, true
	case strings.HasPrefix(contentType, "video/"):
		return document.ClipTypeVideo, true
	case strings.HasPrefix(contentType, "audio/"):
		return document.ClipTypeAudio, true
	}
	return "", false
}

func extensionFor(contentType, filename string) string {
	if ext := filepath.Ext(filename); ext != "" {
		return ext
	}
	if idx := strings.Index(contentType, "/"); idx >= 0 && idx+1 < len(contentType) {
		return "." + contentType[idx+1:]
	}
	return ".bin"
}

func imageDimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
