package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"lumina/internal/domain"
	"lumina/internal/middleware"
	"lumina/internal/studio"
)

type promptRequest struct {
	Prompt string `json:"prompt"`
}

type quickActionRequest struct {
	ActionID string `json:"action_id"`
	Modifier string `json:"modifier"`
}

type acceptedResponse struct {
	Status string `json:"status"`
	State  string `json:"state"`
}

// Generate kicks off the full pipeline. Validation failures surface
// immediately; the generation itself runs in the background and lands in
// the snapshot that clients poll.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	session, ok := a.session(w, r)
	if !ok {
		return
	}
	a.trigger(w, r, session, session.Generate)
}

// Regenerate re-runs image synthesis from the stored prompt.
func (a *App) Regenerate(w http.ResponseWriter, r *http.Request) {
	session, ok := a.session(w, r)
	if !ok {
		return
	}
	a.trigger(w, r, session, func(ctx context.Context) error {
		return session.Regenerate(ctx, "")
	})
}

// QuickActionsList serves the predefined prompt modifier catalog.
func (a *App) QuickActionsList(w http.ResponseWriter, r *http.Request) {
	actions := studio.QuickActions()
	out := make([]map[string]string, 0, len(actions))
	for _, action := range actions {
		out = append(out, map[string]string{"id": action.ID, "modifier": action.Modifier})
	}
	a.json(w, http.StatusOK, out)
}

// QuickActionApply appends a modifier to the prompt and regenerates. The
// modifier comes from the catalog by id, or as free text.
func (a *App) QuickActionApply(w http.ResponseWriter, r *http.Request) {
	session, ok := a.session(w, r)
	if !ok {
		return
	}
	var req quickActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	modifier := req.Modifier
	if req.ActionID != "" {
		catalogued, found := studio.LookupQuickAction(req.ActionID)
		if !found {
			a.error(w, http.StatusBadRequest, "bad_request", "unknown quick action")
			return
		}
		modifier = catalogued
	}
	if modifier == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "modifier or action_id required")
		return
	}
	a.trigger(w, r, session, func(ctx context.Context) error {
		return session.QuickAction(ctx, modifier)
	})
}

// VideoGenerate launches video synthesis from the current result image.
func (a *App) VideoGenerate(w http.ResponseWriter, r *http.Request) {
	session, ok := a.session(w, r)
	if !ok {
		return
	}
	a.trigger(w, r, session, session.GenerateVideo)
}

// PromptUpdate overwrites the editable prompt text.
func (a *App) PromptUpdate(w http.ResponseWriter, r *http.Request) {
	session, ok := a.session(w, r)
	if !ok {
		return
	}
	var req promptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := session.EditPrompt(req.Prompt); err != nil {
		a.busy(w, r)
		return
	}
	a.json(w, http.StatusOK, sessionView(session.Snapshot()))
}

// trigger starts a session transition in the background and answers 202.
// The busy guard is checked up front so overlapping triggers get a direct
// conflict instead of a silently dropped call.
func (a *App) trigger(w http.ResponseWriter, r *http.Request, session *studio.Session, fn func(ctx context.Context) error) {
	if session.Busy() {
		a.busy(w, r)
		return
	}
	requestID := middleware.RequestIDFromContext(r.Context())
	a.run(func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && !errors.Is(err, studio.ErrBusy) && !errors.Is(err, domain.ErrValidation) {
			a.Logger.Warn().
				Str("session_id", session.ID).
				Str("request_id", requestID).
				Err(err).
				Msg("studio: generation failed")
		}
		return err
	})
	a.json(w, http.StatusAccepted, acceptedResponse{Status: "accepted", State: string(session.Snapshot().State)})
}
