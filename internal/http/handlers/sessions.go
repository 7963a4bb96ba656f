package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"lumina/internal/middleware"
	"lumina/internal/studio"
)

type assetView struct {
	ID             string `json:"id"`
	Filename       string `json:"filename"`
	MIME           string `json:"mime"`
	Classification string `json:"classification"`
}

type settingsView struct {
	Mode           string `json:"mode"`
	Gender         string `json:"gender"`
	Ethnicity      string `json:"ethnicity"`
	AgeRange       string `json:"age_range"`
	EditorialStyle string `json:"editorial_style"`
	ExtraContext   string `json:"extra_context,omitempty"`
	Framing        string `json:"framing"`
	HasReference   bool   `json:"has_reference"`
}

type sessionResponse struct {
	ID                   string       `json:"id"`
	State                string       `json:"state"`
	Prompt               string       `json:"prompt,omitempty"`
	Image                string       `json:"image,omitempty"`
	Video                string       `json:"video,omitempty"`
	Error                string       `json:"error,omitempty"`
	ErrorKind            string       `json:"error_kind,omitempty"`
	Notice               string       `json:"notice,omitempty"`
	CredentialPromptOpen bool         `json:"credential_prompt_open"`
	Assets               []assetView  `json:"assets"`
	Settings             settingsView `json:"settings"`
	Locale               string       `json:"locale"`
}

func sessionView(snap studio.Snapshot) sessionResponse {
	assets := make([]assetView, 0, len(snap.Assets))
	for _, asset := range snap.Assets {
		assets = append(assets, assetView{
			ID:             asset.ID,
			Filename:       asset.Filename,
			MIME:           asset.MIME,
			Classification: string(asset.Classification),
		})
	}
	resp := sessionResponse{
		ID:                   snap.ID,
		State:                string(snap.State),
		Prompt:               snap.Prompt,
		Image:                snap.ImageDataURI,
		Video:                snap.VideoDataURI,
		Error:                snap.Error,
		ErrorKind:            snap.ErrorKind,
		CredentialPromptOpen: snap.CredentialPromptOpen,
		Assets:               assets,
		Settings: settingsView{
			Mode:           string(snap.Settings.Mode),
			Gender:         snap.Settings.Gender,
			Ethnicity:      snap.Settings.Ethnicity,
			AgeRange:       snap.Settings.AgeRange,
			EditorialStyle: snap.Settings.EditorialStyle,
			ExtraContext:   snap.Settings.ExtraContext,
			Framing:        string(snap.Settings.Framing),
			HasReference:   snap.Settings.Reference != nil,
		},
		Locale: snap.Locale,
	}
	if snap.ErrorKey != "" {
		resp.Notice = message(snap.Locale, snap.ErrorKey)
	}
	return resp
}

// SessionCreate opens a fresh work session bound to the request locale.
func (a *App) SessionCreate(w http.ResponseWriter, r *http.Request) {
	locale := middleware.LocaleFromContext(r.Context())
	session := a.Sessions.Create(locale)
	a.json(w, http.StatusCreated, sessionView(session.Snapshot()))
}

// SessionGet serves the current snapshot. Clients poll this while a
// generation call is in flight.
func (a *App) SessionGet(w http.ResponseWriter, r *http.Request) {
	session, ok := a.session(w, r)
	if !ok {
		return
	}
	a.json(w, http.StatusOK, sessionView(session.Snapshot()))
}

// SessionReset returns the session to its initial state, dropping the
// prompt, the artifacts, and the uploaded assets.
func (a *App) SessionReset(w http.ResponseWriter, r *http.Request) {
	session, ok := a.session(w, r)
	if !ok {
		return
	}
	if session.Busy() {
		a.busy(w, r)
		return
	}
	session.Reset()
	a.json(w, http.StatusOK, sessionView(session.Snapshot()))
}

// SessionDelete removes the session from the store.
func (a *App) SessionDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "session id required")
		return
	}
	a.Sessions.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

// session resolves the path session and refreshes its locale from the
// request so notices follow the caller's language.
func (a *App) session(w http.ResponseWriter, r *http.Request) (*studio.Session, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "session id required")
		return nil, false
	}
	session, err := a.Sessions.Get(id)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "session not found")
		return nil, false
	}
	session.SetLocale(middleware.LocaleFromContext(r.Context()))
	return session, true
}

func (a *App) busy(w http.ResponseWriter, r *http.Request) {
	locale := middleware.LocaleFromContext(r.Context())
	a.error(w, http.StatusConflict, "busy", message(locale, "session_busy"))
}
