package handlers

import (
	"encoding/json"
	"net/http"

	"lumina/internal/middleware"
)

type credentialRequest struct {
	APIKey    string `json:"api_key"`
	SessionID string `json:"session_id"`
}

type credentialStatusResponse struct {
	Configured bool `json:"configured"`
}

// CredentialStatus reports whether a usable API key is configured. The key
// itself is never echoed back.
func (a *App) CredentialStatus(w http.ResponseWriter, r *http.Request) {
	present, err := a.Credentials.Present(r.Context())
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to read credential")
		return
	}
	a.json(w, http.StatusOK, credentialStatusResponse{Configured: present})
}

// CredentialSet validates the submitted key against the generation service
// and persists it on success. When a session id rides along, that session's
// credential prompt is dismissed so a retried generation can proceed.
func (a *App) CredentialSet(w http.ResponseWriter, r *http.Request) {
	var req credentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	locale := middleware.LocaleFromContext(r.Context())
	if req.APIKey == "" {
		a.error(w, http.StatusBadRequest, "bad_request", message(locale, "invalid_credential"))
		return
	}
	if !a.Validator.ValidateKey(r.Context(), req.APIKey) {
		a.error(w, http.StatusUnprocessableEntity, "invalid_credential", message(locale, "invalid_credential"))
		return
	}
	if err := a.Credentials.SetAPIKey(r.Context(), req.APIKey); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to store credential")
		return
	}
	if req.SessionID != "" {
		if session, err := a.Sessions.Get(req.SessionID); err == nil {
			session.CloseCredentialPrompt()
		}
	}
	a.json(w, http.StatusOK, credentialStatusResponse{Configured: true})
}

// CredentialClear removes the stored key. An environment bootstrap value,
// when configured, stays in effect.
func (a *App) CredentialClear(w http.ResponseWriter, r *http.Request) {
	if err := a.Credentials.Clear(r.Context()); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to clear credential")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
