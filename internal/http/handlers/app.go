package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"lumina/internal/infra"
	"lumina/internal/infra/credentials"
	"lumina/internal/storage"
	"lumina/internal/studio"
)

// KeyValidator checks a candidate credential against the generation service.
type KeyValidator interface {
	ValidateKey(ctx context.Context, key string) bool
}

// App bundles the dependencies shared by every handler.
type App struct {
	Logger            infra.Logger
	Credentials       *credentials.Store
	Validator         KeyValidator
	Sessions          *studio.Store
	Exporter          *storage.Exporter
	GenerationTimeout time.Duration
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]string{"error": code, "message": message})
}

// run executes a session transition on its own goroutine, bounded by the
// generation timeout. The transition's outcome lands in the session snapshot
// which clients poll.
func (a *App) run(fn func(ctx context.Context) error) {
	timeout := a.GenerationTimeout
	if timeout <= 0 {
		timeout = 15 * time.Minute
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_ = fn(ctx)
	}()
}
