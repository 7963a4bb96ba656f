package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"lumina/internal/domain"
	"lumina/internal/middleware"
)

type assetUploadRequest struct {
	Filename string `json:"filename"`
	MIME     string `json:"mime"`
	Data     string `json:"data"`
}

type classifyRequest struct {
	Classification string `json:"classification"`
}

// AssetAdd registers an uploaded jewelry image with the session. The payload
// carries the image bytes base64 encoded.
func (a *App) AssetAdd(w http.ResponseWriter, r *http.Request) {
	session, ok := a.session(w, r)
	if !ok {
		return
	}
	if session.Busy() {
		a.busy(w, r)
		return
	}
	var req assetUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil || len(data) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "data must be non-empty base64")
		return
	}
	if req.MIME == "" {
		req.MIME = "image/png"
	}
	asset, err := session.Assets.Add(req.Filename, req.MIME, data)
	if err != nil {
		locale := middleware.LocaleFromContext(r.Context())
		a.error(w, http.StatusUnprocessableEntity, "asset_limit", message(locale, "asset_limit"))
		return
	}
	a.json(w, http.StatusCreated, assetView{
		ID:             asset.ID,
		Filename:       asset.Filename,
		MIME:           asset.MIME,
		Classification: string(asset.Classification),
	})
}

// AssetRemove drops one uploaded image from the session.
func (a *App) AssetRemove(w http.ResponseWriter, r *http.Request) {
	session, ok := a.session(w, r)
	if !ok {
		return
	}
	if session.Busy() {
		a.busy(w, r)
		return
	}
	assetID := chi.URLParam(r, "assetID")
	if err := session.Assets.Remove(assetID); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "asset not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AssetClassify tags an uploaded image with its jewelry type.
func (a *App) AssetClassify(w http.ResponseWriter, r *http.Request) {
	session, ok := a.session(w, r)
	if !ok {
		return
	}
	if session.Busy() {
		a.busy(w, r)
		return
	}
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	assetID := chi.URLParam(r, "assetID")
	err := session.Assets.SetClassification(assetID, domain.Classification(req.Classification))
	if err != nil {
		a.error(w, http.StatusUnprocessableEntity, "bad_classification", err.Error())
		return
	}
	a.json(w, http.StatusOK, sessionView(session.Snapshot()))
}
