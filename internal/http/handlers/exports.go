package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"lumina/internal/middleware"
	"lumina/internal/storage"
	"lumina/pkg/zip"
)

type exportRequest struct {
	Format string `json:"format"`
}

type exportResponse struct {
	Path string `json:"path"`
}

// ExportImage scales the result image to the session's framing ratio and
// writes it to the export store in the requested encoding.
func (a *App) ExportImage(w http.ResponseWriter, r *http.Request) {
	session, ok := a.session(w, r)
	if !ok {
		return
	}
	image := session.ImageArtifact()
	if image == nil {
		a.error(w, http.StatusConflict, "no_result", "no image to export")
		return
	}
	var req exportRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	format := storage.NormalizeExportFormat(req.Format)
	path, err := a.Exporter.Export(r.Context(), image.Data, session.Settings().Framing, format)
	if err != nil {
		locale := middleware.LocaleFromContext(r.Context())
		a.Logger.Warn().Str("session_id", session.ID).Err(err).Msg("export: image export failed")
		a.error(w, http.StatusInternalServerError, "download_error", message(locale, "download_error"))
		return
	}
	a.json(w, http.StatusOK, exportResponse{Path: path})
}

// ExportVideo streams the result video bytes for download.
func (a *App) ExportVideo(w http.ResponseWriter, r *http.Request) {
	session, ok := a.session(w, r)
	if !ok {
		return
	}
	video := session.VideoArtifact()
	if video == nil {
		a.error(w, http.StatusConflict, "no_result", "no video to export")
		return
	}
	filename := fmt.Sprintf("lumina-jewelry-video-%d.mp4", time.Now().UnixMilli())
	w.Header().Set("Content-Type", video.MIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(video.Data)
}

// ExportBundle streams a zip of the session's source assets plus the
// produced artifacts.
func (a *App) ExportBundle(w http.ResponseWriter, r *http.Request) {
	session, ok := a.session(w, r)
	if !ok {
		return
	}
	entries := make([]zip.Asset, 0, 6)
	for _, asset := range session.Assets.Items() {
		name := asset.Filename
		if name == "" {
			name = asset.ID + ".png"
		}
		entries = append(entries, zip.Asset{Filename: "sources/" + name, MIME: asset.MIME, Data: asset.Data})
	}
	if image := session.ImageArtifact(); image != nil {
		entries = append(entries, zip.Asset{Filename: "result/editorial.png", MIME: image.MIME, Data: image.Data})
	}
	if video := session.VideoArtifact(); video != nil {
		entries = append(entries, zip.Asset{Filename: "result/editorial.mp4", MIME: video.MIME, Data: video.Data})
	}
	if len(entries) == 0 {
		a.error(w, http.StatusConflict, "no_result", "nothing to bundle")
		return
	}
	archive, err := zip.ArchiveAssets(entries)
	if err != nil {
		locale := middleware.LocaleFromContext(r.Context())
		a.error(w, http.StatusInternalServerError, "download_error", message(locale, "download_error"))
		return
	}
	filename := fmt.Sprintf("lumina-jewelry-%d.zip", time.Now().UnixMilli())
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(archive)
}
