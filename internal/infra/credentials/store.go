package credentials

import (
	"context"
	"errors"
	"strings"

	"lumina/internal/infra"
	"lumina/internal/sqlinline"
)

const ProviderGemini = "gemini"

// Store persists the single Gemini API key with process-wide lifetime. When
// no key has been stored yet, the environment bootstrap value (if any) is
// served so a preconfigured deployment works without the credential surface.
type Store struct {
	sql         infra.SQLExecutor
	envFallback string
}

func NewStore(sql infra.SQLExecutor, envFallback string) *Store {
	return &Store{sql: sql, envFallback: strings.TrimSpace(envFallback)}
}

// APIKey returns the current credential, or the empty string when absent.
func (s *Store) APIKey(ctx context.Context) (string, error) {
	row := s.sql.QueryRow(ctx, sqlinline.QSelectCredential, ProviderGemini)
	var token string
	if err := row.Scan(&token); err != nil {
		if infra.IsNoRows(err) {
			return s.envFallback, nil
		}
		return "", err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return s.envFallback, nil
	}
	return token, nil
}

// Present reports whether a usable credential exists.
func (s *Store) Present(ctx context.Context) (bool, error) {
	key, err := s.APIKey(ctx)
	if err != nil {
		return false, err
	}
	return key != "", nil
}

// SetAPIKey persists the credential. Callers validate the key against the
// generation service before persisting; the store itself never does.
func (s *Store) SetAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("api key is required")
	}
	_, err := s.sql.Exec(ctx, sqlinline.QUpsertCredential, ProviderGemini, key)
	return err
}

// Clear removes the stored credential. The environment bootstrap value, if
// set, remains in effect afterwards.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.sql.Exec(ctx, sqlinline.QDeleteCredential, ProviderGemini)
	return err
}
