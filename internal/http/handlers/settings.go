package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"lumina/internal/domain"
)

type settingsRequest struct {
	Mode           string              `json:"mode"`
	Gender         string              `json:"gender"`
	Ethnicity      string              `json:"ethnicity"`
	AgeRange       string              `json:"age_range"`
	EditorialStyle string              `json:"editorial_style"`
	ExtraContext   string              `json:"extra_context"`
	Framing        string              `json:"framing"`
	Reference      *assetUploadRequest `json:"reference"`
	ClearReference bool                `json:"clear_reference"`
}

// SettingsUpdate replaces the session's output configuration. The reference
// subject image, when present, rides along base64 encoded; omitting it keeps
// the one already stored.
func (a *App) SettingsUpdate(w http.ResponseWriter, r *http.Request) {
	session, ok := a.session(w, r)
	if !ok {
		return
	}
	if session.Busy() {
		a.busy(w, r)
		return
	}
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	current := session.Settings()
	next := domain.OutputSettings{
		Mode:           domain.NormalizeModelMode(req.Mode),
		Gender:         req.Gender,
		Ethnicity:      req.Ethnicity,
		AgeRange:       req.AgeRange,
		EditorialStyle: req.EditorialStyle,
		ExtraContext:   req.ExtraContext,
		Framing:        domain.NormalizeFramingRatio(req.Framing),
		Reference:      current.Reference,
	}
	if req.ClearReference {
		next.Reference = nil
	}
	if req.Reference != nil {
		data, err := base64.StdEncoding.DecodeString(req.Reference.Data)
		if err != nil || len(data) == 0 {
			a.error(w, http.StatusBadRequest, "bad_request", "reference data must be non-empty base64")
			return
		}
		mime := req.Reference.MIME
		if mime == "" {
			mime = "image/png"
		}
		next.Reference = &domain.SourceAsset{
			ID:        uuid.NewString(),
			Filename:  req.Reference.Filename,
			MIME:      mime,
			Data:      data,
			CreatedAt: time.Now(),
		}
	}
	if err := session.UpdateSettings(next); err != nil {
		a.busy(w, r)
		return
	}
	a.json(w, http.StatusOK, sessionView(session.Snapshot()))
}
